package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mirafzalswe/foodsave/internal/pricing"
	"github.com/mirafzalswe/foodsave/internal/recommend"
	"github.com/mirafzalswe/foodsave/pkg/db/models"
)

// CategoryDTO is the category payload returned to clients.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ItemDTO is the listing summary shown in catalog pages and search results.
type ItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Unit        string    `json:"unit"`
	Tags        []string  `json:"tags"`
	Category    *string   `json:"category,omitempty"`
	VendorName  string    `json:"vendor_name"`
	BranchName  string    `json:"branch_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// OfferDTO is the discounted listing payload. CurrentPrice is derived on the
// way out, it is never read from storage.
type OfferDTO struct {
	ID              uuid.UUID       `json:"id"`
	ItemID          uuid.UUID       `json:"item_id"`
	Title           string          `json:"title"`
	VendorName      string          `json:"vendor_name"`
	CategoryName    *string         `json:"category,omitempty"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	DiscountPercent float64         `json:"discount_percent"`
	Quantity        int             `json:"quantity"`
	Unit            string          `json:"unit"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	Status          string          `json:"status"`
	BadgeType       string          `json:"badge_type"`
	BadgeText       string          `json:"badge_text"`
}

// ItemDetailDTO extends the summary with the item's offers.
type ItemDetailDTO struct {
	ItemDTO
	Offers []OfferDTO `json:"offers"`
}

// NewCategoryDTO maps a category row.
func NewCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{ID: category.ID, Name: category.Name, Slug: category.Slug}
}

// NewItemDTO maps an item row with its preloaded relations.
func NewItemDTO(item models.Item) ItemDTO {
	dto := ItemDTO{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Unit:        item.Unit.String(),
		Tags:        item.Tags,
		CreatedAt:   item.CreatedAt,
	}
	if item.Category != nil {
		name := item.Category.Name
		dto.Category = &name
	}
	if item.Vendor != nil {
		dto.VendorName = item.Vendor.Name
	}
	if item.Branch != nil {
		dto.BranchName = item.Branch.Name
	}
	return dto
}

// NewOfferDTO maps an offer row with its preloaded item, deriving the
// current price and the promotional badge.
func NewOfferDTO(offer models.Offer) (OfferDTO, error) {
	current, err := pricing.CurrentPrice(offer.OriginalPrice, offer.DiscountPercent)
	if err != nil {
		return OfferDTO{}, err
	}
	badge := recommend.BadgeFor(offer.DiscountPercent)

	dto := OfferDTO{
		ID:              offer.ID,
		ItemID:          offer.ItemID,
		OriginalPrice:   pricing.Display(offer.OriginalPrice),
		CurrentPrice:    pricing.Display(current),
		DiscountPercent: offer.DiscountPercent,
		Quantity:        offer.Quantity,
		StartDate:       offer.StartDate,
		EndDate:         offer.EndDate,
		Status:          offer.Status.String(),
		BadgeType:       badge.Type.String(),
		BadgeText:       badge.Label,
	}
	if offer.Item != nil {
		dto.Title = offer.Item.Title
		dto.Unit = offer.Item.Unit.String()
		if offer.Item.Vendor != nil {
			dto.VendorName = offer.Item.Vendor.Name
		}
		if offer.Item.Category != nil {
			name := offer.Item.Category.Name
			dto.CategoryName = &name
		}
	}
	return dto, nil
}

// NewOfferDTOs maps a slice of offers, dropping rows whose stored numbers no
// longer pass validation instead of failing the whole listing.
func NewOfferDTOs(offers []models.Offer) []OfferDTO {
	out := make([]OfferDTO, 0, len(offers))
	for _, offer := range offers {
		dto, err := NewOfferDTO(offer)
		if err != nil {
			continue
		}
		out = append(out, dto)
	}
	return out
}
