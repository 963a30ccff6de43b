package vendors

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirafzalswe/foodsave/pkg/db/models"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
	"github.com/mirafzalswe/foodsave/pkg/pagination"
)

// CreateBranchInput holds the validated payload to open a branch. Coordinates
// are required up front so new branches are rankable on the map immediately.
type CreateBranchInput struct {
	VendorID     uuid.UUID
	Name         string
	Address      string
	Latitude     float64
	Longitude    float64
	Phone        *string
	OpeningHours json.RawMessage
}

// Service exposes vendor directory operations.
type Service interface {
	ListVendors(ctx context.Context, page pagination.Params) (*VendorPageDTO, error)
	GetVendor(ctx context.Context, id uuid.UUID) (*VendorDTO, error)
	CreateBranch(ctx context.Context, input CreateBranchInput) (*BranchDTO, error)
}

type repository interface {
	ListVendors(ctx context.Context, page pagination.Params) ([]models.Vendor, int64, error)
	FindVendorByID(ctx context.Context, id uuid.UUID) (models.Vendor, error)
	CreateBranch(ctx context.Context, branch *models.Branch) error
}

type service struct {
	repo repository
}

// NewService wires vendor dependencies.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "vendor repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListVendors(ctx context.Context, page pagination.Params) (*VendorPageDTO, error) {
	normalized := page.Normalize()
	vendors, total, err := s.repo.ListVendors(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}

	dtos := make([]VendorDTO, 0, len(vendors))
	for _, v := range vendors {
		dtos = append(dtos, NewVendorDTO(v))
	}
	return &VendorPageDTO{
		Vendors:  dtos,
		Total:    total,
		Page:     normalized.Page,
		PageSize: normalized.PageSize,
	}, nil
}

func (s *service) GetVendor(ctx context.Context, id uuid.UUID) (*VendorDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id is required")
	}

	vendor, err := s.repo.FindVendorByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	dto := NewVendorDTO(vendor)
	return &dto, nil
}

func (s *service) CreateBranch(ctx context.Context, input CreateBranchInput) (*BranchDTO, error) {
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch name is required")
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch address is required")
	}
	if input.Latitude < -90 || input.Latitude > 90 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "latitude outside [-90,90]")
	}
	if input.Longitude < -180 || input.Longitude > 180 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "longitude outside [-180,180]")
	}

	if _, err := s.repo.FindVendorByID(ctx, input.VendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}

	lat := input.Latitude
	lng := input.Longitude
	branch := &models.Branch{
		ID:           uuid.New(),
		VendorID:     input.VendorID,
		Name:         strings.TrimSpace(input.Name),
		Address:      strings.TrimSpace(input.Address),
		Latitude:     &lat,
		Longitude:    &lng,
		Phone:        input.Phone,
		OpeningHours: input.OpeningHours,
		IsActive:     true,
	}
	if err := s.repo.CreateBranch(ctx, branch); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create branch")
	}

	dto := NewBranchDTO(*branch)
	return &dto, nil
}
