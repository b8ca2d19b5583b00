package models

import (
	"time"

	"gorm.io/gorm"
)

type Article struct {
	ID          uint                `json:"id" gorm:"primarykey"`
	Slug        string              `json:"slug" gorm:"uniqueIndex;not null"`
	AuthorID    uint                `json:"author_id" gorm:"not null;index"`
	Author      *User               `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Image       string              `json:"image"`
	Contents    []ArticleContent    `json:"contents,omitempty" gorm:"foreignKey:ArticleID"`
	Categories  []ArticleCategory   `json:"categories,omitempty" gorm:"foreignKey:ArticleID"`
	Permissions []ArticlePermission `json:"-" gorm:"foreignKey:ArticleID"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `json:"deleted_at" gorm:"index"`
}

// ArticleCategory links an article to a category. The whole set is replaced on
// every update.
type ArticleCategory struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	ArticleID  uint           `json:"article_id" gorm:"not null;index"`
	CategoryID uint           `json:"category_id" gorm:"not null"`
	Category   *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// ArticlePermission grants a non-author user access to an article.
type ArticlePermission struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ArticleID uint      `json:"article_id" gorm:"not null;uniqueIndex:idx_article_permission_pair"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_article_permission_pair"`
	CreatedAt time.Time `json:"created_at"`
}

// ArticleRoom is the collaboration room provisioned alongside every article.
type ArticleRoom struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ArticleID uint      `json:"article_id" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

type Category struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Language struct {
	ID   uint   `json:"id" gorm:"primarykey"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`
	Name string `json:"name"`
}
