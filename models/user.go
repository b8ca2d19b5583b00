package models

import (
	"time"

	"gorm.io/gorm"
)

// RoleSuper is the top of the role hierarchy. Holders may manage permissions on
// any article. Roles with a higher id are eligible to receive article grants.
const RoleSuper uint = 1

const CapabilityArticleOwnership = "ownership.article"

type User struct {
	ID        uint           `json:"user_id" gorm:"primarykey"`
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email,omitempty" gorm:"uniqueIndex;not null"`
	Roles     []Role         `json:"roles,omitempty" gorm:"many2many:user_roles;"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type Role struct {
	ID          uint         `json:"id" gorm:"primarykey"`
	Name        string       `json:"name" gorm:"uniqueIndex;not null"`
	Permissions []Permission `json:"permissions,omitempty" gorm:"many2many:role_permissions;"`
}

// Permission is a role capability such as "ownership.article". Per-article
// grants live in ArticlePermission.
type Permission struct {
	ID   uint   `json:"id" gorm:"primarykey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

// UserSummary is the author/roster projection of a user.
type UserSummary struct {
	UserID     uint   `json:"user_id"`
	Name       string `json:"name"`
	Permission bool   `json:"permission"`
}
