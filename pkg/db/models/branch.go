package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Branch is a physical vendor location. Latitude/longitude are nullable so a
// branch can exist before it has been geocoded; the map ranker skips branches
// missing either coordinate.
type Branch struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID     uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null"`
	Name         string          `gorm:"column:name;not null"`
	Address      string          `gorm:"column:address;not null"`
	Latitude     *float64        `gorm:"column:latitude;type:numeric(9,6)"`
	Longitude    *float64        `gorm:"column:longitude;type:numeric(9,6)"`
	Phone        *string         `gorm:"column:phone"`
	OpeningHours json.RawMessage `gorm:"column:opening_hours;type:jsonb"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true"`
	Vendor       *Vendor         `gorm:"foreignKey:VendorID"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}
