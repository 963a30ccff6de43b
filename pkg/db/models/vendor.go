package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mirafzalswe/foodsave/pkg/enums"
)

// Vendor represents a selling business (restaurant, store or cafe).
type Vendor struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID     uuid.UUID        `gorm:"column:owner_id;type:uuid;not null"`
	Type        enums.VendorType `gorm:"column:type;type:vendor_type;not null"`
	Name        string           `gorm:"column:name;not null"`
	Description *string          `gorm:"column:description"`
	Rating      float64          `gorm:"column:rating;not null;default:0"`
	IsActive    bool             `gorm:"column:is_active;not null;default:true"`
	Branches    []Branch         `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
