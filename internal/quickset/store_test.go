package quickset

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
)

type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeKV) QuickSetKey(sessionID string) string {
	return "fs:quickset:" + sessionID
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected app error, got %v", err)
	}
	if appErr.Code() != code {
		t.Fatalf("got code %s, want %s", appErr.Code(), code)
	}
}

func TestStore_SaveAndList(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeKV())
	offers := []uuid.UUID{uuid.New(), uuid.New()}

	saved, err := store.Save(ctx, "sess-1", "  Weekend breakfast ", offers)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.Name != "Weekend breakfast" {
		t.Fatalf("name should be trimmed, got %q", saved.Name)
	}
	if saved.ID == uuid.Nil {
		t.Fatalf("saved set should get an id")
	}

	sets, err := store.List(ctx, "sess-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(sets) != 1 {
		t.Fatalf("got %d sets, want 1", len(sets))
	}
	if sets[0].ID != saved.ID || len(sets[0].OfferIDs) != 2 {
		t.Fatalf("listed set does not match saved set: %+v", sets[0])
	}
}

func TestStore_SaveAppends(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeKV())

	first, err := store.Save(ctx, "sess-1", "First", []uuid.UUID{uuid.New()})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := store.Save(ctx, "sess-1", "Second", []uuid.UUID{uuid.New()}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	sets, err := store.List(ctx, "sess-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("got %d sets, want 2", len(sets))
	}
	if sets[0].ID != first.ID {
		t.Fatalf("oldest set should come first")
	}
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeKV())

	if _, err := store.Save(ctx, "sess-a", "Mine", []uuid.UUID{uuid.New()}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	sets, err := store.List(ctx, "sess-b")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(sets) != 0 {
		t.Fatalf("other session should see no sets, got %d", len(sets))
	}
}

func TestStore_SaveValidation(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeKV())
	one := []uuid.UUID{uuid.New()}

	_, err := store.Save(ctx, "", "Name", one)
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = store.Save(ctx, "sess-1", "   ", one)
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = store.Save(ctx, "sess-1", "Name", nil)
	assertCode(t, err, pkgerrors.CodeValidation)

	tooMany := make([]uuid.UUID, maxCustomSetItems+1)
	for i := range tooMany {
		tooMany[i] = uuid.New()
	}
	_, err = store.Save(ctx, "sess-1", "Name", tooMany)
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestStore_ListRejectsCorruptPayload(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.data[kv.QuickSetKey("sess-1")] = "{not json"
	store := NewStore(kv)

	_, err := store.List(ctx, "sess-1")
	if err == nil || !strings.Contains(err.Error(), "decoding custom sets") {
		t.Fatalf("expected decode error, got %v", err)
	}
}
