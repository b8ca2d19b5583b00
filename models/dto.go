package models

type CreateArticleRequest struct {
	Slug       string   `json:"slug" validate:"required,max=255"`
	Image      string   `json:"image" validate:"required"`
	Categories []uint   `json:"categories"`
	Title      string   `json:"title" validate:"required,max=255"`
	SubTitle   string   `json:"sub_title" validate:"required,max=255"`
	Body       string   `json:"body" validate:"required"`
	Keywords   []string `json:"keywords" validate:"required,min=1,dive,required"`
	Published  *bool    `json:"published" validate:"required"`
	LanguageID uint     `json:"language_id" validate:"required"`
}

func (r CreateArticleRequest) ContentFields() ContentFields {
	return ContentFields{
		Title:     r.Title,
		SubTitle:  r.SubTitle,
		Body:      r.Body,
		Keywords:  Keywords(r.Keywords),
		Published: r.Published != nil && *r.Published,
	}
}

type UpdateArticleRequest struct {
	Slug       string `json:"slug" validate:"required,max=255"`
	Image      string `json:"image" validate:"required"`
	Categories []uint `json:"categories"`
}

type ContentRequest struct {
	Title     string   `json:"title" validate:"required,max=255"`
	SubTitle  string   `json:"sub_title" validate:"required,max=255"`
	Body      string   `json:"body" validate:"required"`
	Keywords  []string `json:"keywords" validate:"required,min=1,dive,required"`
	Published *bool    `json:"published" validate:"required"`
}

func (r ContentRequest) ContentFields() ContentFields {
	return ContentFields{
		Title:     r.Title,
		SubTitle:  r.SubTitle,
		Body:      r.Body,
		Keywords:  Keywords(r.Keywords),
		Published: r.Published != nil && *r.Published,
	}
}

type PermissionRequest struct {
	Permissions []uint `json:"permissions"`
}

type ArticleListParams struct {
	Page    int `form:"page,default=1"`
	PerPage int `form:"per-page"`
}

// PermissionRoster is the response of the permission screen: every eligible
// user flagged with their grant status, plus the granted users.
type PermissionRoster struct {
	Users       []UserSummary `json:"users"`
	Permissions []UserSummary `json:"permissions"`
}
