package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"gorm.io/gorm"
)

// Keywords is an ordered list of terms persisted as a JSON array.
type Keywords []string

func (k Keywords) Value() (driver.Value, error) {
	if k == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(k))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (k *Keywords) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*k = Keywords{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("keywords: unsupported type %T", value)
	}
	var terms []string
	if err := json.Unmarshal(raw, &terms); err != nil {
		return fmt.Errorf("keywords: %w", err)
	}
	*k = terms
	return nil
}

func (Keywords) GormDataType() string {
	return "text"
}

func (k Keywords) Equal(other Keywords) bool {
	return slices.Equal(k, other)
}

// ArticleContent is the live, language specific rendition of an article.
// Only one row exists per (article, language) pair.
type ArticleContent struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	ArticleID  uint           `json:"article_id" gorm:"not null;uniqueIndex:idx_article_content_pair"`
	LanguageID uint           `json:"language_id" gorm:"not null;uniqueIndex:idx_article_content_pair"`
	Language   *Language      `json:"language,omitempty" gorm:"foreignKey:LanguageID"`
	Title      string         `json:"title" gorm:"not null"`
	SubTitle   string         `json:"sub_title" gorm:"not null"`
	Body       string         `json:"body" gorm:"type:text"`
	Keywords   Keywords       `json:"keywords"`
	Published  bool           `json:"published"`
	Version    int            `json:"version" gorm:"not null;default:1"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// DiffersFrom reports whether title, sub title, body or keywords differ.
// Published is not compared.
func (c *ArticleContent) DiffersFrom(f ContentFields) bool {
	return c.Title != f.Title ||
		c.SubTitle != f.SubTitle ||
		c.Body != f.Body ||
		!c.Keywords.Equal(f.Keywords)
}

// Snapshot captures the row as an archive entry.
func (c *ArticleContent) Snapshot() *ArticleArchive {
	return &ArticleArchive{
		ArticleID:  c.ArticleID,
		LanguageID: c.LanguageID,
		Title:      c.Title,
		SubTitle:   c.SubTitle,
		Body:       c.Body,
		Keywords:   slices.Clone(c.Keywords),
		Published:  c.Published,
		Version:    c.Version,
	}
}

// ArticleArchive is an append-only snapshot of a content row taken before a
// substantive edit.
type ArticleArchive struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	ArticleID  uint      `json:"article_id" gorm:"not null;index"`
	LanguageID uint      `json:"language_id" gorm:"not null"`
	Title      string    `json:"title"`
	SubTitle   string    `json:"sub_title"`
	Body       string    `json:"body" gorm:"type:text"`
	Keywords   Keywords  `json:"keywords"`
	Published  bool      `json:"published"`
	Version    int       `json:"version" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// ContentFields are the editable fields of a content row.
type ContentFields struct {
	Title     string
	SubTitle  string
	Body      string
	Keywords  Keywords
	Published bool
}
