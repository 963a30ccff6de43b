package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mirafzalswe/foodsave/pkg/enums"
)

// Item represents the canonical vendor listing at a branch.
type Item struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID    uuid.UUID      `gorm:"column:vendor_id;type:uuid;not null"`
	BranchID    uuid.UUID      `gorm:"column:branch_id;type:uuid;not null"`
	CategoryID  *uuid.UUID     `gorm:"column:category_id;type:uuid"`
	Title       string         `gorm:"column:title;not null"`
	Description *string        `gorm:"column:description"`
	Unit        enums.ItemUnit `gorm:"column:unit;type:item_unit;not null;default:'pcs'"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true"`
	Category    *Category      `gorm:"foreignKey:CategoryID"`
	Branch      *Branch        `gorm:"foreignKey:BranchID"`
	Vendor      *Vendor        `gorm:"foreignKey:VendorID"`
	Offers      []Offer        `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
