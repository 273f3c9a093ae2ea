package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/persistence/model"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/usecase"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires the real services against an in-memory database.
type testEnv struct {
	db           *gorm.DB
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	sellerRepo   repository.SellerRepository
	productRepo  repository.ProductRepository
	reviewRepo   repository.ReviewRepository
	orderRepo    repository.OrderRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	imageStore   *stubImageStore
	gateway      *stubGateway
	logger       *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.UserModel{},
		&model.SellerModel{},
		&model.CategoryModel{},
		&model.ProductModel{},
		&model.OrderModel{},
		&model.OrderDetailModel{},
		&model.ReviewModel{},
		&model.PurchaseRecordModel{},
	))

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret"
	cfg.SecretKey.Refresh = "test_refresh_secret"
	cfg.Auth = &config.AuthConfig{BcryptCost: 4} // fast in tests

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return &testEnv{
		db:           db,
		txManager:    postgres.NewTransactionManager(db),
		userRepo:     postgres.NewUserRepository(db),
		sellerRepo:   postgres.NewSellerRepository(db),
		productRepo:  postgres.NewProductRepository(db),
		reviewRepo:   postgres.NewReviewRepository(db),
		orderRepo:    postgres.NewOrderRepository(db),
		hasher:       auth.NewBcryptHasher(cfg),
		tokenService: tokenService,
		imageStore:   &stubImageStore{},
		gateway:      &stubGateway{},
		logger:       slog.New(slog.DiscardHandler),
	}
}

func (env *testEnv) newUserService() usecase.UserUsecase {
	return NewUserService(UserServiceParams{
		TxManager:    env.txManager,
		UserRepo:     env.userRepo,
		Hasher:       env.hasher,
		TokenService: env.tokenService,
		Logger:       env.logger,
	})
}

func (env *testEnv) newSellerService() usecase.SellerUsecase {
	return NewSellerService(SellerServiceParams{
		TxManager:    env.txManager,
		SellerRepo:   env.sellerRepo,
		Hasher:       env.hasher,
		TokenService: env.tokenService,
		Logger:       env.logger,
	})
}

func (env *testEnv) newCatalogService() usecase.CatalogUsecase {
	return NewCatalogService(CatalogServiceParams{
		TxManager:   env.txManager,
		ProductRepo: env.productRepo,
		ReviewRepo:  env.reviewRepo,
		ImageStore:  env.imageStore,
		Logger:      env.logger,
	})
}

func (env *testEnv) newOrderService() usecase.OrderUsecase {
	return NewOrderService(OrderServiceParams{
		TxManager: env.txManager,
		UserRepo:  env.userRepo,
		Gateway:   env.gateway,
		Logger:    env.logger,
	})
}

// stubImageStore records saves and hands back deterministic URLs.
type stubImageStore struct {
	saved []string
	fail  bool
}

func (s *stubImageStore) Save(_ context.Context, filename, _ string, _ io.Reader) (string, error) {
	if s.fail {
		return "", fmt.Errorf("stub image store failure")
	}
	s.saved = append(s.saved, filename)
	return "http://images.local/" + filename, nil
}

// stubGateway records charges and can be told to decline.
type stubGateway struct {
	charges []service.ChargeInput
	decline bool
}

func (g *stubGateway) Charge(_ context.Context, input service.ChargeInput) (*service.Charge, error) {
	g.charges = append(g.charges, input)
	if g.decline {
		return nil, fmt.Errorf("card declined")
	}
	return &service.Charge{ProviderID: "pi_stub_" + input.OrderID.String(), Status: "succeeded"}, nil
}
