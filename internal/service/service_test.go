package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/product_catalog/internal/config"
	"github.com/Skotchmaster/product_catalog/internal/db"
	"github.com/Skotchmaster/product_catalog/internal/events"
	"github.com/Skotchmaster/product_catalog/internal/hash"
	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/tokens"
)

type recordedEvent struct {
	topic string
	key   string
	event events.Event
}

type recorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recorder) Publish(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{topic: topic, key: key, event: event.(events.Event)})
	return nil
}

func (r *recorder) Close() error { return nil }

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.event.Type)
	}
	return out
}

type fakeIndex struct {
	indexed map[uint]models.Product
	removed []uint
}

func newFakeIndex() *fakeIndex { return &fakeIndex{indexed: map[uint]models.Product{}} }

func (f *fakeIndex) Index(_ context.Context, p models.Product) error {
	f.indexed[p.ID] = p
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id uint) error {
	delete(f.indexed, id)
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, _ string, limit int) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.indexed {
		if len(out) == limit {
			break
		}
		out = append(out, p)
	}
	return out, nil
}

type testEnv struct {
	repo    *repo.GormRepo
	tokens  *tokens.Service
	events  *recorder
	index   *fakeIndex
	auth    *AuthService
	catalog *CatalogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := db.Open(context.Background(), config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	env := &testEnv{
		repo:   &repo.GormRepo{DB: gdb},
		tokens: tokens.NewService([]byte("test-secret")),
		events: &recorder{},
		index:  newFakeIndex(),
	}
	env.auth = &AuthService{
		Repo:   env.repo,
		Hasher: hash.New(bcrypt.MinCost),
		Tokens: env.tokens,
		Events: env.events,
	}
	env.catalog = &CatalogService{
		Repo:   env.repo,
		Search: env.index,
		Events: env.events,
	}
	return env
}

func (env *testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := env.auth.Register(context.Background(), username, "pw-"+username)
	require.NoError(t, err)
	return u
}
