package models

import "github.com/google/uuid"

// Category is the informal item taxonomy. Quick-set grouping matches on the
// name by keyword, not by identity.
type Category struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name     string    `gorm:"column:name;not null"`
	Slug     string    `gorm:"column:slug;uniqueIndex;not null"`
	IsActive bool      `gorm:"column:is_active;not null;default:true"`
}
