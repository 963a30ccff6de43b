package vendors

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mirafzalswe/foodsave/pkg/db/models"
)

// VendorDTO is the vendor payload returned to clients.
type VendorDTO struct {
	ID          uuid.UUID   `json:"id"`
	Type        string      `json:"type"`
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Rating      float64     `json:"rating"`
	Branches    []BranchDTO `json:"branches"`
	CreatedAt   time.Time   `json:"created_at"`
}

// BranchDTO is a vendor location payload.
type BranchDTO struct {
	ID           uuid.UUID       `json:"id"`
	VendorID     uuid.UUID       `json:"vendor_id"`
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	Latitude     *float64        `json:"latitude,omitempty"`
	Longitude    *float64        `json:"longitude,omitempty"`
	Phone        *string         `json:"phone,omitempty"`
	OpeningHours json.RawMessage `json:"opening_hours,omitempty"`
}

// VendorPageDTO wraps a vendor page with its pagination echo.
type VendorPageDTO struct {
	Vendors  []VendorDTO `json:"vendors"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// NewVendorDTO maps a vendor row with its preloaded branches.
func NewVendorDTO(vendor models.Vendor) VendorDTO {
	branches := make([]BranchDTO, 0, len(vendor.Branches))
	for _, b := range vendor.Branches {
		branches = append(branches, NewBranchDTO(b))
	}
	return VendorDTO{
		ID:          vendor.ID,
		Type:        vendor.Type.String(),
		Name:        vendor.Name,
		Description: vendor.Description,
		Rating:      vendor.Rating,
		Branches:    branches,
		CreatedAt:   vendor.CreatedAt,
	}
}

// NewBranchDTO maps a branch row.
func NewBranchDTO(branch models.Branch) BranchDTO {
	return BranchDTO{
		ID:           branch.ID,
		VendorID:     branch.VendorID,
		Name:         branch.Name,
		Address:      branch.Address,
		Latitude:     branch.Latitude,
		Longitude:    branch.Longitude,
		Phone:        branch.Phone,
		OpeningHours: branch.OpeningHours,
	}
}
