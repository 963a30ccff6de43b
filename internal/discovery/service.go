package discovery

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mirafzalswe/foodsave/internal/catalog"
	"github.com/mirafzalswe/foodsave/internal/geo"
	"github.com/mirafzalswe/foodsave/internal/quickset"
	"github.com/mirafzalswe/foodsave/internal/recommend"
	"github.com/mirafzalswe/foodsave/pkg/config"
	"github.com/mirafzalswe/foodsave/pkg/db/models"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
)

// Service exposes the discovery surface: recommendations, quick sets,
// session custom sets and the nearby map.
type Service interface {
	Recommendations(ctx context.Context, excludedItemIDs []uuid.UUID) ([]catalog.OfferDTO, error)
	QuickSets(ctx context.Context) ([]QuickSetDTO, error)
	SaveCustomSet(ctx context.Context, sessionID, name string, offerIDs []uuid.UUID) (*CustomSetDTO, error)
	ListCustomSets(ctx context.Context, sessionID string) ([]CustomSetDTO, error)
	Nearby(ctx context.Context, user *geo.Point) ([]NearbyBranchDTO, error)
}

type offerSource interface {
	ListAvailableOffers(ctx context.Context, asOf time.Time) ([]models.Offer, error)
}

type branchSource interface {
	ListActiveBranches(ctx context.Context) ([]models.Branch, error)
}

type customSetStore interface {
	Save(ctx context.Context, sessionID, name string, offerIDs []uuid.UUID) (quickset.CustomSet, error)
	List(ctx context.Context, sessionID string) ([]quickset.CustomSet, error)
}

// ServiceParams groups dependencies for the discovery service.
type ServiceParams struct {
	Offers     offerSource
	Branches   branchSource
	CustomSets customSetStore
	Rand       *rand.Rand
	Map        config.MapConfig
	Recommend  config.RecommendConfig
}

type service struct {
	offers     offerSource
	branches   branchSource
	customSets customSetStore
	mapCfg     config.MapConfig
	recCfg     config.RecommendConfig
	now        func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService wires discovery dependencies. A nil Rand falls back to a
// time-seeded source.
func NewService(params ServiceParams) (Service, error) {
	if params.Offers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "offer source required")
	}
	if params.Branches == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "branch source required")
	}
	if params.CustomSets == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "custom set store required")
	}
	rng := params.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &service{
		offers:     params.Offers,
		branches:   params.Branches,
		customSets: params.CustomSets,
		mapCfg:     params.Map,
		recCfg:     params.Recommend,
		now:        time.Now,
		rng:        rng,
	}, nil
}

func (s *service) Recommendations(ctx context.Context, excludedItemIDs []uuid.UUID) ([]catalog.OfferDTO, error) {
	snapshot, err := s.offers.ListAvailableOffers(ctx, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load available offers")
	}

	byID := make(map[uuid.UUID]models.Offer, len(snapshot))
	candidates := make([]recommend.Offer, 0, len(snapshot))
	for _, offer := range snapshot {
		byID[offer.ID] = offer
		candidates = append(candidates, recommend.Offer{
			ID:              offer.ID,
			ItemID:          offer.ItemID,
			DiscountPercent: offer.DiscountPercent,
		})
	}

	s.mu.Lock()
	selected := recommend.Select(s.rng, candidates, excludedItemIDs, s.recCfg.MaxCount)
	s.mu.Unlock()

	picked := make([]models.Offer, 0, len(selected))
	for _, sel := range selected {
		picked = append(picked, byID[sel.ID])
	}
	return catalog.NewOfferDTOs(picked), nil
}

func (s *service) QuickSets(ctx context.Context) ([]QuickSetDTO, error) {
	snapshot, err := s.offers.ListAvailableOffers(ctx, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load available offers")
	}

	byID := make(map[uuid.UUID]models.Offer, len(snapshot))
	candidates := make([]quickset.Offer, 0, len(snapshot))
	for _, offer := range snapshot {
		byID[offer.ID] = offer
		category := ""
		if offer.Item != nil && offer.Item.Category != nil {
			category = offer.Item.Category.Name
		}
		candidates = append(candidates, quickset.Offer{
			ID:              offer.ID,
			ItemID:          offer.ItemID,
			CategoryName:    category,
			DiscountPercent: offer.DiscountPercent,
		})
	}

	sets := quickset.Compose(candidates)
	out := make([]QuickSetDTO, 0, len(sets))
	for _, set := range sets {
		picked := make([]models.Offer, 0, len(set.Offers))
		for _, o := range set.Offers {
			picked = append(picked, byID[o.ID])
		}
		out = append(out, QuickSetDTO{
			ID:          set.ID,
			Name:        set.Name,
			Description: set.Description,
			Items:       catalog.NewOfferDTOs(picked),
		})
	}
	return out, nil
}

// SaveCustomSet persists a session bundle after checking every referenced
// offer is currently purchasable.
func (s *service) SaveCustomSet(ctx context.Context, sessionID, name string, offerIDs []uuid.UUID) (*CustomSetDTO, error) {
	snapshot, err := s.offers.ListAvailableOffers(ctx, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load available offers")
	}
	available := make(map[uuid.UUID]struct{}, len(snapshot))
	for _, offer := range snapshot {
		available[offer.ID] = struct{}{}
	}
	for _, id := range offerIDs {
		if _, ok := available[id]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "set references an unavailable offer")
		}
	}

	set, err := s.customSets.Save(ctx, sessionID, name, offerIDs)
	if err != nil {
		return nil, err
	}
	dto := newCustomSetDTO(set)
	return &dto, nil
}

func (s *service) ListCustomSets(ctx context.Context, sessionID string) ([]CustomSetDTO, error) {
	sets, err := s.customSets.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]CustomSetDTO, 0, len(sets))
	for _, set := range sets {
		out = append(out, newCustomSetDTO(set))
	}
	return out, nil
}

func (s *service) Nearby(ctx context.Context, user *geo.Point) ([]NearbyBranchDTO, error) {
	branches, err := s.branches.ListActiveBranches(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load branches")
	}

	byID := make(map[uuid.UUID]models.Branch, len(branches))
	candidates := make([]geo.Candidate, 0, len(branches))
	for _, branch := range branches {
		byID[branch.ID] = branch
		candidates = append(candidates, geo.Candidate{
			ID:  branch.ID,
			Lat: branch.Latitude,
			Lng: branch.Longitude,
		})
	}

	ranked := geo.RankByDistance(user, candidates, s.mapCfg.MaxResults)
	out := make([]NearbyBranchDTO, 0, len(ranked))
	for _, r := range ranked {
		branch := byID[r.ID]
		dto := NearbyBranchDTO{
			BranchID:   branch.ID,
			VendorID:   branch.VendorID,
			Name:       branch.Name,
			Address:    branch.Address,
			Latitude:   *branch.Latitude,
			Longitude:  *branch.Longitude,
			DistanceKM: math.Round(r.DistanceKM*100) / 100,
		}
		if branch.Vendor != nil {
			dto.VendorName = branch.Vendor.Name
		}
		out = append(out, dto)
	}
	return out, nil
}
