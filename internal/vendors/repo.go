package vendors

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirafzalswe/foodsave/pkg/db/models"
	"github.com/mirafzalswe/foodsave/pkg/pagination"
)

// Repository encapsulates vendor and branch persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a vendor repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListVendors returns a page of active vendors with their branches, best
// rated first, plus the unpaginated total.
func (r *Repository) ListVendors(ctx context.Context, page pagination.Params) ([]models.Vendor, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vendors []models.Vendor
	err := query.
		Preload("Branches", "is_active = ?", true).
		Order("rating DESC, name ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&vendors).
		Error
	return vendors, total, err
}

// FindVendorByID loads an active vendor with its active branches.
func (r *Repository) FindVendorByID(ctx context.Context, id uuid.UUID) (models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).
		Preload("Branches", "is_active = ?", true).
		Where("id = ? AND is_active = ?", id, true).
		First(&vendor).
		Error
	return vendor, err
}

// CreateBranch inserts a branch for a vendor.
func (r *Repository) CreateBranch(ctx context.Context, branch *models.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

// ListActiveBranches returns every active branch of an active vendor with
// the vendor preloaded. The map ranker consumes this snapshot.
func (r *Repository) ListActiveBranches(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	err := r.db.WithContext(ctx).
		Joins("JOIN vendors v ON v.id = branches.vendor_id").
		Where("branches.is_active = ? AND v.is_active = ?", true, true).
		Preload("Vendor").
		Order("branches.created_at ASC").
		Find(&branches).
		Error
	return branches, err
}
