package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/config"
	deliverymw "storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/delivery/http/validator"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/persistence/model"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/usecase/impl"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testServer hosts the full HTTP stack against an in-memory database
// with stubbed external services.
type testServer struct {
	echo       *echo.Echo
	imageStore *stubImageStore
	gateway    *stubGateway
}

func newTestServer(t *testing.T) *testServer {
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
	cfg.Auth = &config.AuthConfig{BcryptCost: 4}

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	txManager := postgres.NewTransactionManager(db)
	userRepo := postgres.NewUserRepository(db)
	imageStore := &stubImageStore{}
	gateway := &stubGateway{}

	userUC := impl.NewUserService(impl.UserServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokenService,
		Logger:       logger,
	})
	sellerUC := impl.NewSellerService(impl.SellerServiceParams{
		TxManager:    txManager,
		SellerRepo:   postgres.NewSellerRepository(db),
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokenService,
		Logger:       logger,
	})
	catalogUC := impl.NewCatalogService(impl.CatalogServiceParams{
		TxManager:   txManager,
		ProductRepo: postgres.NewProductRepository(db),
		ReviewRepo:  postgres.NewReviewRepository(db),
		ImageStore:  imageStore,
		Logger:      logger,
	})
	orderUC := impl.NewOrderService(impl.OrderServiceParams{
		TxManager: txManager,
		UserRepo:  userRepo,
		Gateway:   gateway,
		Logger:    logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = deliverymw.NewErrorMiddleware(logger).HandleHTTPError

	r := router.NewRouter(router.RouterParams{
		UserHandler:         handler.NewUserHandler(userUC, orderUC, tokenService),
		SellerHandler:       handler.NewSellerHandler(sellerUC, catalogUC, tokenService),
		ProductHandler:      handler.NewProductHandler(catalogUC),
		AuthMiddleware:      deliverymw.NewAuthMiddleware(tokenService, userUC, sellerUC),
		RequestIDMiddleware: deliverymw.NewRequestIDMiddleware(logger),
	})
	r.RegisterRoutes(e)

	return &testServer{
		echo:       e,
		imageStore: imageStore,
		gateway:    gateway,
	}
}

// request performs a JSON request and decodes the envelope.
func (s *testServer) request(t *testing.T, method, path string, body any, opts ...func(*http.Request)) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return rec, envelope
}

// withBearer sets the Authorization header.
func withBearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
}

// withCookies attaches the given cookies to the request.
func withCookies(cookies []*http.Cookie) func(*http.Request) {
	return func(req *http.Request) {
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}
	}
}

// signupAndLoginUser registers a user and returns its access token.
func (s *testServer) signupAndLoginUser(t *testing.T, name, email, password string) (accessToken string, cookies []*http.Cookie) {
	t.Helper()

	rec, _ := s.request(t, http.MethodPost, "/api/v1/users/signup", map[string]any{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, envelope := s.request(t, http.MethodPost, "/api/v1/users/login", map[string]any{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data := envelope["data"].(map[string]any)

	return data["accessToken"].(string), rec.Result().Cookies()
}

// signupAndLoginSeller registers a seller and returns its access token.
func (s *testServer) signupAndLoginSeller(t *testing.T, name, email, password string) string {
	t.Helper()

	rec, _ := s.request(t, http.MethodPost, "/api/v1/sellers/signup", map[string]any{
		"name": name, "email": email, "password": password,
		"phone": "555-0100", "address": "1 Market St", "city": "Springfield",
		"state": "IL", "zip": "62701", "country": "US",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, envelope := s.request(t, http.MethodPost, "/api/v1/sellers/login", map[string]any{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data := envelope["data"].(map[string]any)

	return data["accessToken"].(string)
}

// addProduct publishes a product through the multipart endpoint and
// returns its id.
func (s *testServer) addProduct(t *testing.T, sellerToken, name, price, quantity, category string) string {
	t.Helper()

	rec, envelope := s.multipartRequest(t, http.MethodPost, "/api/v1/products/add-product", map[string]string{
		"name":        name,
		"description": "A " + name,
		"price":       price,
		"quantity":    quantity,
		"category":    category,
	}, "photo.png", withBearer(sellerToken))
	require.Equal(t, http.StatusCreated, rec.Code)

	data := envelope["data"].(map[string]any)

	return data["id"].(string)
}

// multipartRequest performs a multipart form request with an optional
// image file and decodes the envelope.
func (s *testServer) multipartRequest(t *testing.T, method, path string, fields map[string]string, imageFilename string, opts ...func(*http.Request)) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if imageFilename != "" {
		part, err := writer.CreateFormFile("image", imageFilename)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return rec, envelope
}

// cookieValue returns the named cookie's value, or "".
func cookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}

	return ""
}

// stubImageStore hands back deterministic URLs.
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
		return nil, domainerrors.ErrPaymentFailed.WrapMessage("card declined")
	}

	return &service.Charge{ProviderID: "pi_stub_" + input.OrderID.String(), Status: "succeeded"}, nil
}
