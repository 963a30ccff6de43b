package quickset

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
	"github.com/mirafzalswe/foodsave/pkg/redis"
)

// customSetTTL bounds how long a session's saved sets live without activity.
const customSetTTL = 30 * 24 * time.Hour

const maxCustomSetItems = 20

// CustomSet is a user-assembled bundle saved under an anonymous session.
type CustomSet struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	OfferIDs  []uuid.UUID `json:"offer_ids"`
	CreatedAt time.Time   `json:"created_at"`
}

type keyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	QuickSetKey(sessionID string) string
}

// Store persists custom sets per session id in redis. Sets are anonymous and
// expire with the session, they never touch the relational schema.
type Store struct {
	kv keyValue
}

// NewStore builds a Store over the shared redis client.
func NewStore(kv keyValue) *Store {
	return &Store{kv: kv}
}

// Save validates and appends a custom set for the session, then rewrites the
// session's full list under the same TTL.
func (s *Store) Save(ctx context.Context, sessionID, name string, offerIDs []uuid.UUID) (CustomSet, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CustomSet{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if strings.TrimSpace(name) == "" {
		return CustomSet{}, pkgerrors.New(pkgerrors.CodeValidation, "set name is required")
	}
	if len(offerIDs) == 0 {
		return CustomSet{}, pkgerrors.New(pkgerrors.CodeValidation, "set must contain at least one offer")
	}
	if len(offerIDs) > maxCustomSetItems {
		return CustomSet{}, pkgerrors.New(pkgerrors.CodeValidation, "set exceeds the item limit")
	}

	existing, err := s.List(ctx, sessionID)
	if err != nil {
		return CustomSet{}, err
	}

	set := CustomSet{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		OfferIDs:  offerIDs,
		CreatedAt: time.Now().UTC(),
	}
	existing = append(existing, set)

	payload, err := json.Marshal(existing)
	if err != nil {
		return CustomSet{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding custom sets")
	}
	if err := s.kv.Set(ctx, s.kv.QuickSetKey(sessionID), string(payload), customSetTTL); err != nil {
		return CustomSet{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving custom sets")
	}
	return set, nil
}

// List returns the session's saved sets, oldest first. A session with no
// saved sets yields an empty list.
func (s *Store) List(ctx context.Context, sessionID string) ([]CustomSet, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	raw, err := s.kv.Get(ctx, s.kv.QuickSetKey(sessionID))
	if err != nil {
		if redis.IsNil(err) {
			return []CustomSet{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading custom sets")
	}

	var sets []CustomSet
	if err := json.Unmarshal([]byte(raw), &sets); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding custom sets")
	}
	return sets, nil
}
