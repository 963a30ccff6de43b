package discovery

import (
	"time"

	"github.com/google/uuid"

	"github.com/mirafzalswe/foodsave/internal/catalog"
	"github.com/mirafzalswe/foodsave/internal/quickset"
)

// QuickSetDTO is a curated bundle payload for the quick-sets screen.
type QuickSetDTO struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Items       []catalog.OfferDTO `json:"items"`
}

// CustomSetDTO is a session-saved bundle payload.
type CustomSetDTO struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	OfferIDs  []uuid.UUID `json:"offer_ids"`
	CreatedAt time.Time   `json:"created_at"`
}

// NearbyBranchDTO is a ranked map entry.
type NearbyBranchDTO struct {
	BranchID   uuid.UUID `json:"branch_id"`
	VendorID   uuid.UUID `json:"vendor_id"`
	VendorName string    `json:"vendor_name"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	DistanceKM float64   `json:"distance_km"`
}

func newCustomSetDTO(set quickset.CustomSet) CustomSetDTO {
	return CustomSetDTO{
		ID:        set.ID,
		Name:      set.Name,
		OfferIDs:  set.OfferIDs,
		CreatedAt: set.CreatedAt,
	}
}
