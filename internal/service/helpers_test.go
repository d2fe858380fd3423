package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Skotchmaster/ecommerce/internal/db"
	"github.com/Skotchmaster/ecommerce/internal/identity"
	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/service"
	"github.com/Skotchmaster/ecommerce/internal/tokens"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenSQLite("")
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(gdb))
	require.NoError(t, models.Seed(context.Background(), gdb))
	return gdb
}

func newAuthService(t *testing.T, gdb *gorm.DB) *service.AuthenticationService {
	t.Helper()
	roles := &identity.RoleManager{DB: gdb}
	return &service.AuthenticationService{
		Users: &identity.UserManager{DB: gdb, Roles: roles},
		Roles: roles,
		Tokens: &tokens.Manager{
			DB:         gdb,
			Secret:     []byte("test-secret"),
			Issuer:     "ecommerce",
			Audience:   "ecommerce",
			TTL:        2 * time.Hour,
			RefreshTTL: time.Hour,
		},
		Validator: transport.NewValidator(),
	}
}

type published struct {
	topic, key, eventType string
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
}

func (f *fakePublisher) Publish(_ context.Context, topic, key, eventType string, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, published{topic, key, eventType})
	return nil
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.eventType)
	}
	return out
}

type payCall struct {
	total    decimal.Decimal
	products []models.Product
	lines    []transport.ProcessCart
	key      string
	deadline bool
}

type fakeGateway struct {
	resp  transport.ServiceResponse
	calls []payCall
}

func (f *fakeGateway) Pay(ctx context.Context, total decimal.Decimal, products []models.Product, lines []transport.ProcessCart, key string) transport.ServiceResponse {
	_, hasDeadline := ctx.Deadline()
	f.calls = append(f.calls, payCall{total, products, lines, key, hasDeadline})
	return f.resp
}

type memoryStore struct {
	values map[string]string
}

func (m *memoryStore) Remember(_ context.Context, scope, key, value string) error {
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[scope+"|"+key] = value
	return nil
}

func (m *memoryStore) Recall(_ context.Context, scope, key string) (string, bool, error) {
	v, ok := m.values[scope+"|"+key]
	return v, ok, nil
}

func seedProducts(t *testing.T, gdb *gorm.DB, prices ...string) []models.Product {
	t.Helper()
	cat := models.Category{Name: "General"}
	require.NoError(t, gdb.Create(&cat).Error)
	out := make([]models.Product, 0, len(prices))
	for i, price := range prices {
		p := models.Product{
			ID:          uuid.New(),
			Name:        "Product " + string(rune('A'+i)),
			Description: "desc",
			Image:       "img.png",
			Price:       decimal.RequireFromString(price),
			Quantity:    10,
			CategoryID:  cat.ID,
		}
		require.NoError(t, gdb.Create(&p).Error)
		out = append(out, p)
	}
	return out
}
