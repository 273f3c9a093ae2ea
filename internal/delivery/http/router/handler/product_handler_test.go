package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddProduct(t *testing.T) {
	server := newTestServer(t)
	sellerToken := server.signupAndLoginSeller(t, "Shop", "shop@example.com", "secret123")

	rec, envelope := server.multipartRequest(t, http.MethodPost, "/api/v1/products/add-product", map[string]string{
		"name":        "Mechanical Keyboard",
		"description": "Clicky switches",
		"price":       "129.90",
		"quantity":    "25",
		"category":    "electronics",
	}, "keyboard.png", withBearer(sellerToken))

	require.Equal(t, http.StatusCreated, rec.Code)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "Mechanical Keyboard", data["name"])
	assert.Equal(t, 129.90, data["price"])
	assert.Equal(t, "http://images.local/keyboard.png", data["imageUrl"])
	assert.Equal(t, []string{"keyboard.png"}, server.imageStore.saved)
}

func TestAddProduct_Failures(t *testing.T) {
	server := newTestServer(t)
	sellerToken := server.signupAndLoginSeller(t, "Shop", "shop@example.com", "secret123")

	fields := map[string]string{
		"name":        "Mechanical Keyboard",
		"description": "Clicky switches",
		"price":       "129.90",
		"quantity":    "25",
		"category":    "electronics",
	}

	t.Run("requires seller auth", func(t *testing.T) {
		rec, _ := server.multipartRequest(t, http.MethodPost, "/api/v1/products/add-product", fields, "keyboard.png")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing image", func(t *testing.T) {
		rec, envelope := server.multipartRequest(t, http.MethodPost, "/api/v1/products/add-product", fields, "", withBearer(sellerToken))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, envelope["success"])
	})

	t.Run("bad price", func(t *testing.T) {
		bad := map[string]string{}
		for k, v := range fields {
			bad[k] = v
		}
		bad["price"] = "free"

		rec, _ := server.multipartRequest(t, http.MethodPost, "/api/v1/products/add-product", bad, "keyboard.png", withBearer(sellerToken))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate name", func(t *testing.T) {
		rec, _ := server.multipartRequest(t, http.MethodPost, "/api/v1/products/add-product", fields, "keyboard.png", withBearer(sellerToken))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec, _ = server.multipartRequest(t, http.MethodPost, "/api/v1/products/add-product", fields, "keyboard.png", withBearer(sellerToken))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAllProducts(t *testing.T) {
	server := newTestServer(t)
	sellerToken := server.signupAndLoginSeller(t, "Shop", "shop@example.com", "secret123")
	server.addProduct(t, sellerToken, "Keyboard", "129.90", "25", "electronics")
	server.addProduct(t, sellerToken, "Mouse", "49.90", "100", "electronics")
	server.addProduct(t, sellerToken, "Desk Lamp", "19.90", "40", "home")

	t.Run("lists everything", func(t *testing.T) {
		rec, envelope := server.request(t, http.MethodGet, "/api/v1/products/all-products", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, envelope["data"].([]any), 3)
	})

	t.Run("name search", func(t *testing.T) {
		rec, envelope := server.request(t, http.MethodGet, "/api/v1/products/all-products?query=key", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		data := envelope["data"].([]any)
		require.Len(t, data, 1)
		assert.Equal(t, "Keyboard", data[0].(map[string]any)["name"])
	})

	t.Run("paging", func(t *testing.T) {
		rec, envelope := server.request(t, http.MethodGet, "/api/v1/products/all-products?page=2&limit=2", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, envelope["data"].([]any), 1)
	})

	t.Run("no matches is a 404", func(t *testing.T) {
		rec, envelope := server.request(t, http.MethodGet, "/api/v1/products/all-products?query=nonexistent", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, false, envelope["success"])
	})
}

func TestGetProduct(t *testing.T) {
	server := newTestServer(t)
	sellerToken := server.signupAndLoginSeller(t, "Shop", "shop@example.com", "secret123")
	productID := server.addProduct(t, sellerToken, "Keyboard", "129.90", "25", "electronics")

	rec, envelope := server.request(t, http.MethodGet, "/api/v1/products/"+productID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, productID, envelope["data"].(map[string]any)["id"])

	rec, _ = server.request(t, http.MethodGet, "/api/v1/products/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = server.request(t, http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	server := newTestServer(t)
	sellerToken := server.signupAndLoginSeller(t, "Shop", "shop@example.com", "secret123")
	otherToken := server.signupAndLoginSeller(t, "Rival", "rival@example.com", "secret123")
	productID := server.addProduct(t, sellerToken, "Keyboard", "129.90", "25", "electronics")

	fields := map[string]string{
		"name":        "Keyboard v2",
		"description": "Quieter switches",
		"price":       "139.90",
		"quantity":    "30",
		"category":    "electronics",
	}

	t.Run("owner updates", func(t *testing.T) {
		rec, envelope := server.multipartRequest(t, http.MethodPut, "/api/v1/products/"+productID, fields, "v2.png", withBearer(sellerToken))

		require.Equal(t, http.StatusOK, rec.Code)
		data := envelope["data"].(map[string]any)
		assert.Equal(t, "Keyboard v2", data["name"])
		assert.Equal(t, 139.90, data["price"])
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		rec, _ := server.multipartRequest(t, http.MethodPut, "/api/v1/products/"+productID, fields, "v2.png", withBearer(otherToken))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("owner deletes", func(t *testing.T) {
		rec, _ := server.request(t, http.MethodDelete, "/api/v1/products/"+productID, nil, withBearer(sellerToken))
		require.Equal(t, http.StatusOK, rec.Code)

		rec, _ = server.request(t, http.MethodGet, "/api/v1/products/"+productID, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("deleting again is a 404", func(t *testing.T) {
		rec, _ := server.request(t, http.MethodDelete, "/api/v1/products/"+productID, nil, withBearer(sellerToken))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSellerProducts(t *testing.T) {
	server := newTestServer(t)
	sellerToken := server.signupAndLoginSeller(t, "Shop", "shop@example.com", "secret123")
	otherToken := server.signupAndLoginSeller(t, "Rival", "rival@example.com", "secret123")
	server.addProduct(t, sellerToken, "Keyboard", "129.90", "25", "electronics")
	server.addProduct(t, otherToken, "Mouse", "49.90", "100", "electronics")

	rec, envelope := server.request(t, http.MethodGet, "/api/v1/sellers/products", nil, withBearer(sellerToken))

	require.Equal(t, http.StatusOK, rec.Code)
	data := envelope["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Keyboard", data[0].(map[string]any)["name"])
}

func TestReviews(t *testing.T) {
	server := newTestServer(t)
	sellerToken := server.signupAndLoginSeller(t, "Shop", "shop@example.com", "secret123")
	userToken, _ := server.signupAndLoginUser(t, "Alice", "alice@example.com", "secret123")
	productID := server.addProduct(t, sellerToken, "Keyboard", "129.90", "25", "electronics")

	t.Run("requires user auth", func(t *testing.T) {
		rec, _ := server.request(t, http.MethodPost, "/api/v1/products/"+productID+"/reviews", map[string]any{
			"rating": 5, "comment": "Great",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rating out of range", func(t *testing.T) {
		rec, _ := server.request(t, http.MethodPost, "/api/v1/products/"+productID+"/reviews", map[string]any{
			"rating": 6, "comment": "Too great",
		}, withBearer(userToken))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		rec, _ := server.request(t, http.MethodPost, "/api/v1/products/"+uuid.New().String()+"/reviews", map[string]any{
			"rating": 4, "comment": "Fine",
		}, withBearer(userToken))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("add and list", func(t *testing.T) {
		rec, envelope := server.request(t, http.MethodPost, "/api/v1/products/"+productID+"/reviews", map[string]any{
			"rating": 4, "comment": "Solid build",
		}, withBearer(userToken))
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, float64(4), envelope["data"].(map[string]any)["rating"])

		rec, envelope = server.request(t, http.MethodGet, "/api/v1/products/"+productID+"/reviews", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		data := envelope["data"].([]any)
		require.Len(t, data, 1)
		assert.Equal(t, "Solid build", data[0].(map[string]any)["comment"])
	})
}

func TestBuyProduct(t *testing.T) {
	server := newTestServer(t)
	sellerToken := server.signupAndLoginSeller(t, "Shop", "shop@example.com", "secret123")
	userToken, _ := server.signupAndLoginUser(t, "Alice", "alice@example.com", "secret123")
	productID := server.addProduct(t, sellerToken, "Keyboard", "100.00", "25", "electronics")

	rec, envelope := server.request(t, http.MethodPost, "/api/v1/users/buy-product", map[string]any{
		"productId": productID, "quantity": 2, "paymentMethod": "pm_card_visa",
	}, withBearer(userToken))

	require.Equal(t, http.StatusCreated, rec.Code)
	data := envelope["data"].(map[string]any)

	order := data["order"].(map[string]any)
	assert.Equal(t, "processing", order["status"])
	assert.Equal(t, 200.0, order["totalAmount"])

	detail := data["orderDetail"].(map[string]any)
	assert.Equal(t, float64(2), detail["quantity"])
	assert.Equal(t, 100.0, detail["unitPrice"])

	payment := data["payment"].(map[string]any)
	assert.Equal(t, "succeeded", payment["status"])

	require.Len(t, server.gateway.charges, 1)
	assert.Equal(t, 200.0, server.gateway.charges[0].Amount)

	// The purchase shows up in the history.
	rec, envelope = server.request(t, http.MethodGet, "/api/v1/users/purchase-history", nil, withBearer(userToken))
	require.Equal(t, http.StatusOK, rec.Code)
	records := envelope["data"].([]any)
	require.Len(t, records, 1)
	assert.Equal(t, productID, records[0].(map[string]any)["productId"])
}

func TestBuyProduct_Failures(t *testing.T) {
	server := newTestServer(t)
	sellerToken := server.signupAndLoginSeller(t, "Shop", "shop@example.com", "secret123")
	userToken, _ := server.signupAndLoginUser(t, "Alice", "alice@example.com", "secret123")
	productID := server.addProduct(t, sellerToken, "Keyboard", "100.00", "25", "electronics")

	t.Run("declined charge", func(t *testing.T) {
		server.gateway.decline = true
		defer func() { server.gateway.decline = false }()

		rec, envelope := server.request(t, http.MethodPost, "/api/v1/users/buy-product", map[string]any{
			"productId": productID, "quantity": 1, "paymentMethod": "pm_card_visa",
		}, withBearer(userToken))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, false, envelope["success"])

		// No purchase record was written for the failed charge.
		rec, envelope = server.request(t, http.MethodGet, "/api/v1/users/purchase-history", nil, withBearer(userToken))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, envelope["data"])
	})

	t.Run("unknown product", func(t *testing.T) {
		rec, _ := server.request(t, http.MethodPost, "/api/v1/users/buy-product", map[string]any{
			"productId": uuid.New().String(), "quantity": 1, "paymentMethod": "pm_card_visa",
		}, withBearer(userToken))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("zero quantity", func(t *testing.T) {
		rec, _ := server.request(t, http.MethodPost, "/api/v1/users/buy-product", map[string]any{
			"productId": productID, "quantity": 0, "paymentMethod": "pm_card_visa",
		}, withBearer(userToken))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
