package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	uc usecase.CatalogUsecase
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.CatalogUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// AllProducts lists the catalog with optional paging, name search and
// sorting. Out-of-range paging values are clamped by the use case.
func (h *ProductHandler) AllProducts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	products, err := h.uc.ListProducts(c.Request().Context(), &usecase.ListProductsInput{
		Page:     page,
		Limit:    limit,
		Query:    c.QueryParam("query"),
		SortBy:   c.QueryParam("sortBy"),
		SortType: c.QueryParam("sortType"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.NewProducts(products), "Products retrieved successfully")
}

// GetProduct returns a single product by id.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}

	product, err := h.uc.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.NewProduct(product), "Product retrieved successfully")
}

// AddProduct publishes a new product for the authenticated seller. The
// request is multipart: text fields plus an image file.
func (h *ProductHandler) AddProduct(c echo.Context) error {
	sellerID, err := currentAccountID(c)
	if err != nil {
		return err
	}

	input := &usecase.CreateProductInput{SellerID: sellerID}
	if err := bindProductForm(c, &input.Name, &input.Description, &input.Price, &input.Quantity, &input.CategoryName); err != nil {
		return err
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return err
	}
	defer closeImage()
	input.Image = image

	product, err := h.uc.CreateProduct(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, response.NewProduct(product), "Product added successfully")
}

// UpdateProduct replaces all fields of a product owned by the
// authenticated seller, including its image.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	sellerID, err := currentAccountID(c)
	if err != nil {
		return err
	}

	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}

	input := &usecase.UpdateProductInput{SellerID: sellerID, ProductID: productID}
	if err := bindProductForm(c, &input.Name, &input.Description, &input.Price, &input.Quantity, &input.CategoryName); err != nil {
		return err
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return err
	}
	defer closeImage()
	input.Image = image

	product, err := h.uc.UpdateProduct(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.NewProduct(product), "Product updated successfully")
}

// DeleteProduct removes a product owned by the authenticated seller.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	sellerID, err := currentAccountID(c)
	if err != nil {
		return err
	}

	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), sellerID, productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

type addReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// AddReview records the authenticated user's review of a product.
func (h *ProductHandler) AddReview(c echo.Context) error {
	userID, err := currentAccountID(c)
	if err != nil {
		return err
	}

	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}

	var req addReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid review input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	review, err := h.uc.AddReview(c.Request().Context(), &usecase.AddReviewInput{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, response.NewReview(review), "Review added successfully")
}

// ListReviews returns all reviews of a product.
func (h *ProductHandler) ListReviews(c echo.Context) error {
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}

	reviews, err := h.uc.ListReviews(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.NewReviews(reviews), "Reviews retrieved successfully")
}

// bindProductForm reads the shared multipart text fields of the add and
// update product endpoints.
func bindProductForm(c echo.Context, name, description *string, price *float64, quantity *int, categoryName *string) error {
	*name = c.FormValue("name")
	*description = c.FormValue("description")
	*categoryName = c.FormValue("category")

	if *name == "" || *description == "" || c.FormValue("price") == "" || c.FormValue("quantity") == "" {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}

	parsedPrice, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || parsedPrice <= 0 {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("price must be a positive number"))
	}
	*price = parsedPrice

	parsedQuantity, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil || parsedQuantity < 0 {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("quantity must be a non-negative integer"))
	}
	*quantity = parsedQuantity

	return nil
}

// formImage opens the uploaded image file. The returned close function
// is a no-op when no file was sent so callers can always defer it.
func formImage(c echo.Context) (*usecase.ImageUpload, func(), error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, func() {}, errors.WithStack(domainerrors.ErrImageRequired)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, func() {}, errors.WithStack(domainerrors.ErrImageUploadFailed.WrapMessage("open uploaded image"))
	}

	return &usecase.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Body:        src,
	}, func() { _ = src.Close() }, nil
}
