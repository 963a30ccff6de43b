package vendors

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirafzalswe/foodsave/pkg/db/models"
	"github.com/mirafzalswe/foodsave/pkg/enums"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
	"github.com/mirafzalswe/foodsave/pkg/pagination"
)

type fakeRepo struct {
	vendors    map[uuid.UUID]models.Vendor
	created    []*models.Branch
	listResult []models.Vendor
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{vendors: map[uuid.UUID]models.Vendor{}}
}

func (f *fakeRepo) ListVendors(context.Context, pagination.Params) ([]models.Vendor, int64, error) {
	return f.listResult, int64(len(f.listResult)), nil
}

func (f *fakeRepo) FindVendorByID(_ context.Context, id uuid.UUID) (models.Vendor, error) {
	vendor, ok := f.vendors[id]
	if !ok {
		return models.Vendor{}, gorm.ErrRecordNotFound
	}
	return vendor, nil
}

func (f *fakeRepo) CreateBranch(_ context.Context, branch *models.Branch) error {
	f.created = append(f.created, branch)
	return nil
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

func TestGetVendor_NotFound(t *testing.T) {
	svc, err := NewService(newFakeRepo())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.GetVendor(context.Background(), uuid.New())
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateBranch_Validation(t *testing.T) {
	repo := newFakeRepo()
	vendorID := uuid.New()
	repo.vendors[vendorID] = models.Vendor{ID: vendorID, Type: enums.VendorTypeStore, Name: "GreenMart"}

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	_, err = svc.CreateBranch(ctx, CreateBranchInput{Name: "Main", Address: "Street 1", Latitude: 41, Longitude: 69})
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateBranch(ctx, CreateBranchInput{VendorID: vendorID, Address: "Street 1", Latitude: 41, Longitude: 69})
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateBranch(ctx, CreateBranchInput{VendorID: vendorID, Name: "Main", Address: "Street 1", Latitude: 91, Longitude: 69})
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateBranch(ctx, CreateBranchInput{VendorID: vendorID, Name: "Main", Address: "Street 1", Latitude: 41, Longitude: -200})
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateBranch(ctx, CreateBranchInput{VendorID: uuid.New(), Name: "Main", Address: "Street 1", Latitude: 41, Longitude: 69})
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateBranch_PersistsCoordinates(t *testing.T) {
	repo := newFakeRepo()
	vendorID := uuid.New()
	repo.vendors[vendorID] = models.Vendor{ID: vendorID, Type: enums.VendorTypeCafe, Name: "Bakehouse"}

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.CreateBranch(context.Background(), CreateBranchInput{
		VendorID:  vendorID,
		Name:      "  Main  ",
		Address:   "Amir Temur 12",
		Latitude:  41.3111,
		Longitude: 69.2797,
	})
	if err != nil {
		t.Fatalf("create branch: %v", err)
	}
	if dto.Name != "Main" {
		t.Fatalf("name should be trimmed, got %q", dto.Name)
	}
	if dto.Latitude == nil || *dto.Latitude != 41.3111 {
		t.Fatalf("latitude not persisted: %+v", dto)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one branch insert, got %d", len(repo.created))
	}
	if !repo.created[0].IsActive {
		t.Fatalf("new branches should start active")
	}
}
