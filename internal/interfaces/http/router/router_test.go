package router

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/application/activity"
	catalogapp "github.com/posalpro/backend/internal/application/catalog"
	partnerapp "github.com/posalpro/backend/internal/application/partner"
	proposalapp "github.com/posalpro/backend/internal/application/proposal"
	"github.com/posalpro/backend/internal/bridge"
	"github.com/posalpro/backend/internal/domain/audit"
	"github.com/posalpro/backend/internal/domain/catalog"
	"github.com/posalpro/backend/internal/domain/partner"
	"github.com/posalpro/backend/internal/domain/proposal"
	"github.com/posalpro/backend/internal/infrastructure/auth"
	"github.com/posalpro/backend/internal/infrastructure/config"
	"github.com/posalpro/backend/internal/infrastructure/persistence"
	"github.com/posalpro/backend/internal/interfaces/http/handler"
	"github.com/posalpro/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testBackend runs the real engine (router, handlers, services, SQLite
// repositories) behind an httptest server so the bridge client talks to
// the same wire surface a browser client would.
type testBackend struct {
	server    *httptest.Server
	token     string
	tenantID  uuid.UUID
	userID    uuid.UUID
	customers *partnerapp.CustomerService
	products  *catalogapp.ProductService
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&partner.Customer{},
		&catalog.Product{},
		&proposal.Proposal{},
		&proposal.LineItem{},
		&proposal.Version{},
		&audit.AccessLog{},
		&audit.ChangeLog{},
	))

	customerRepo := persistence.NewGormCustomerRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	proposalRepo := persistence.NewGormProposalRepository(db)
	versionRepo := persistence.NewGormVersionRepository(db)
	recorder := activity.NewRecorder(persistence.NewGormChangeLogRepository(db), zap.NewNop())

	customerService := partnerapp.NewCustomerService(customerRepo, proposalRepo, recorder)
	productService := catalogapp.NewProductService(productRepo, recorder)
	proposalService := proposalapp.NewProposalService(proposalRepo, versionRepo, customerRepo, productRepo, recorder, zap.NewNop())
	versionService := proposalapp.NewVersionService(versionRepo, proposalRepo)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "round-trip-signing-secret-0123456789abcdef",
		AccessTokenExpiration: time.Hour,
		Issuer:                "posalpro",
	})
	gate := middleware.NewPermissionGate(persistence.NewGormAccessLogRepository(db), zap.NewNop())

	engine := New(Config{
		JWTService: jwtService,
		Gate:       gate,
		Logger:     zap.NewNop(),
	}, Handlers{
		Customer: handler.NewCustomerHandler(customerService),
		Product:  handler.NewProductHandler(productService),
		Proposal: handler.NewProposalHandler(proposalService, versionService),
	})

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	tenantID := uuid.New()
	userID := uuid.New()
	token, _, err := jwtService.GenerateToken(auth.GenerateTokenInput{
		TenantID: tenantID,
		UserID:   userID,
		Email:    "owner@example.com",
		Permissions: []string{
			"proposals:*:ALL",
			"customers:*:ALL",
			"products:*:ALL",
		},
	})
	require.NoError(t, err)

	return &testBackend{
		server:    server,
		token:     token,
		tenantID:  tenantID,
		userID:    userID,
		customers: customerService,
		products:  productService,
	}
}

func (b *testBackend) client() *bridge.HTTPClient {
	return bridge.NewHTTPClient(b.server.URL+"/api/v1", bridge.WithToken(b.token))
}

func (b *testBackend) seedCustomer(t *testing.T) uuid.UUID {
	t.Helper()
	resp, err := b.customers.Create(context.Background(), b.tenantID, &b.userID, partnerapp.CreateCustomerRequest{
		Name:  "Globex Corporation",
		Email: "it@globex.example",
	})
	require.NoError(t, err)
	return resp.ID
}

func (b *testBackend) seedProduct(t *testing.T) uuid.UUID {
	t.Helper()
	resp, err := b.products.Create(context.Background(), b.tenantID, &b.userID, catalogapp.CreateProductRequest{
		SKU:       "SUP-GOLD",
		Name:      "Gold Support Plan",
		UnitPrice: decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	return resp.ID
}

// The proposal bridge exercises every operation class against the real
// server: create, read, patch, nested sub-resources, list, and delete.
func TestProposalBridgeAgainstServer(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()
	customerID := backend.seedCustomer(t)
	productID := backend.seedProduct(t)

	client := backend.client()
	proposals := bridge.NewProposalBridge(client)

	created := proposals.Create(ctx, bridge.CreateProposalInput{
		Title:      "Q3 renewal",
		CustomerID: customerID.String(),
	})
	require.True(t, created.Success, "create failed: %+v", created.Error)
	require.NotEmpty(t, created.Data.ID)
	assert.Equal(t, "DRAFT", created.Data.Status)
	assert.Equal(t, 1, created.Data.Version)
	id := created.Data.ID

	got := proposals.Get(ctx, id)
	require.True(t, got.Success, "get failed: %+v", got.Error)
	assert.Equal(t, "Q3 renewal", got.Data.Title)

	newTitle := "Q3 renewal, revised"
	updated := proposals.Update(ctx, id, bridge.UpdateProposalInput{Title: &newTitle})
	require.True(t, updated.Success, "update failed: %+v", updated.Error)
	assert.Equal(t, newTitle, updated.Data.Title)

	var withItem bridge.Proposal
	require.NoError(t, client.Post(ctx, "/proposals/"+id+"/items", map[string]any{
		"product_id": productID,
		"quantity":   2,
	}, &withItem))
	assert.Equal(t, "2400", withItem.TotalValue.String())

	versions := proposals.Versions(ctx, id)
	require.True(t, versions.Success, "versions failed: %+v", versions.Error)
	require.Len(t, versions.Data, 3)
	assert.Equal(t, 1, versions.Data[0].Number)
	assert.Equal(t, 2, versions.Data[1].Number)
	assert.Equal(t, 3, versions.Data[2].Number)

	diff := proposals.Diff(ctx, id, 1, 3)
	require.True(t, diff.Success, "diff failed: %+v", diff.Error)
	assert.Equal(t, 1, diff.Data.FromVersion)
	assert.Equal(t, 3, diff.Data.ToVersion)
	assert.Contains(t, diff.Data.Added, productID.String())

	list := proposals.List(ctx, bridge.ListProposalsQuery{Page: 1, PageSize: 20})
	require.True(t, list.Success, "list failed: %+v", list.Error)
	require.Len(t, list.Data.Items, 1)
	assert.Equal(t, int64(1), list.Data.Total)
	assert.Equal(t, id, list.Data.Items[0].ID)

	inReview := proposals.Transition(ctx, id, "IN_REVIEW")
	require.True(t, inReview.Success, "transition failed: %+v", inReview.Error)
	assert.Equal(t, "IN_REVIEW", inReview.Data.Status)

	backToDraft := proposals.Transition(ctx, id, "DRAFT")
	require.True(t, backToDraft.Success, "transition failed: %+v", backToDraft.Error)
	assert.Equal(t, "DRAFT", backToDraft.Data.Status)

	deleted := proposals.Delete(ctx, id)
	require.True(t, deleted.Success, "delete failed: %+v", deleted.Error)
	assert.True(t, deleted.Data)

	missing := proposals.Get(ctx, id)
	require.False(t, missing.Success)
	require.NotNil(t, missing.Error)
	assert.Equal(t, bridge.CodeNotFound, missing.Error.Code)
}

func TestCustomerBridgeAgainstServer(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	customers := bridge.NewCustomerBridge(backend.client())

	created := customers.Create(ctx, bridge.CustomerInput{
		Name:  "Initech",
		Email: "ops@initech.example",
	})
	require.True(t, created.Success, "create failed: %+v", created.Error)
	id := created.Data.ID

	updated := customers.Update(ctx, id, bridge.CustomerInput{
		Name:  "Initech Holdings",
		Email: "ops@initech.example",
	})
	require.True(t, updated.Success, "update failed: %+v", updated.Error)
	assert.Equal(t, "Initech Holdings", updated.Data.Name)

	list := customers.List(ctx, bridge.ListCustomersQuery{Page: 1, PageSize: 20})
	require.True(t, list.Success, "list failed: %+v", list.Error)
	require.Len(t, list.Data.Items, 1)
	assert.Equal(t, int64(1), list.Data.Total)

	deleted := customers.Delete(ctx, id)
	require.True(t, deleted.Success, "delete failed: %+v", deleted.Error)

	missing := customers.Get(ctx, id)
	require.False(t, missing.Success)
	assert.Equal(t, bridge.CodeNotFound, missing.Error.Code)
}

func TestProductBridgeAgainstServer(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	products := bridge.NewProductBridge(backend.client())

	created := products.Create(ctx, bridge.ProductInput{
		SKU:       "SUP-SILVER",
		Name:      "Silver Support Plan",
		UnitPrice: decimal.NewFromInt(600),
	})
	require.True(t, created.Success, "create failed: %+v", created.Error)
	id := created.Data.ID

	updated := products.Update(ctx, id, bridge.ProductInput{
		SKU:       "SUP-SILVER",
		Name:      "Silver Support Plan Plus",
		UnitPrice: decimal.NewFromInt(750),
	})
	require.True(t, updated.Success, "update failed: %+v", updated.Error)
	assert.Equal(t, "Silver Support Plan Plus", updated.Data.Name)
	assert.Equal(t, "750", updated.Data.UnitPrice.String())

	list := products.List(ctx, bridge.ListProductsQuery{Page: 1, PageSize: 20})
	require.True(t, list.Success, "list failed: %+v", list.Error)
	assert.Equal(t, int64(1), list.Data.Total)
}

// Requests without a bearer token never reach the handlers.
func TestBridgeRejectedWithoutToken(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	client := bridge.NewHTTPClient(backend.server.URL + "/api/v1")
	proposals := bridge.NewProposalBridge(client)

	res := proposals.Get(ctx, uuid.NewString())
	require.False(t, res.Success)
	require.NotNil(t, res.Error)
}
