package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	imageStore  service.ImageStore
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	ReviewRepo  repository.ReviewRepository
	ImageStore  service.ImageStore
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		reviewRepo:  params.ReviewRepo,
		imageStore:  params.ImageStore,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns the page of products matching the query.
func (srv *catalogService) ListProducts(ctx context.Context, input *usecase.ListProductsInput) ([]*entity.Product, error) {
	// Clamp paging values so hostile input can never produce a negative
	// offset or an unbounded result set.
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	direction := repository.SortAsc
	if input.SortType == "desc" {
		direction = repository.SortDesc
	}

	products, err := srv.productRepo.List(ctx, &repository.ProductFilter{
		NameQuery:     input.Query,
		SortBy:        input.SortBy,
		SortDirection: direction,
		Offset:        (page - 1) * limit,
		Limit:         limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	if len(products) == 0 {
		return nil, domainerrors.ErrProductNotFound
	}

	return products, nil
}

// GetProduct loads a product by id.
func (srv *catalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return product, nil
}

// CreateProduct publishes a new product for the seller. The name is
// checked and the image uploaded first; the product and its category
// are then written in one transaction.
func (srv *catalogService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Creating product", slog.String("name", input.Name), slog.Any("sellerID", input.SellerID))

	if input.Image == nil {
		return nil, domainerrors.ErrImageRequired
	}
	if input.CategoryName == "" {
		return nil, domainerrors.ErrCategoryNotFound
	}

	// Reject duplicate names before touching the blob store so a
	// conflict does not leave an orphaned object in the bucket.
	if _, err := srv.productRepo.FindByName(ctx, input.Name); err == nil {
		return nil, domainerrors.ErrProductAlreadyExists
	} else if !errors.Is(err, repository.ErrProductNotFound) {
		return nil, errors.Wrap(err, "failed to check existing product name")
	}

	imageURL, err := srv.imageStore.Save(ctx, input.Image.Filename, input.Image.ContentType, input.Image.Body)
	if err != nil {
		srv.log(ctx).Error("Image upload failed", slog.Any("error", err))

		return nil, domainerrors.ErrImageUploadFailed.WrapMessage(err.Error())
	}

	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		ImageURL:    imageURL,
		SellerID:    input.SellerID,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		_, findErr := productRepo.FindByName(ctx, input.Name)
		if findErr == nil {
			return domainerrors.ErrProductAlreadyExists
		}
		if !errors.Is(findErr, repository.ErrProductNotFound) {
			return errors.Wrap(findErr, "failed to check existing product name")
		}

		category, err := srv.resolveCategory(ctx, repoFactory.CategoryRepo(), input.CategoryName)
		if err != nil {
			return err
		}
		product.CategoryID = category.ID

		return productRepo.Create(ctx, product)
	})
	if err != nil {
		srv.log(ctx).Warn("Product creation failed", slog.String("name", input.Name), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Product created", slog.Any("productID", product.ID))

	return product, nil
}

// resolveCategory finds a category by name, creating it on first use.
func (srv *catalogService) resolveCategory(ctx context.Context, categoryRepo repository.CategoryRepository, name string) (*entity.Category, error) {
	category, err := categoryRepo.FindByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, errors.Wrap(err, "failed to find category by name")
	}

	category = &entity.Category{Name: name}
	if err := categoryRepo.Create(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	return category, nil
}

// UpdateProduct replaces a product's fields with new values. Only the
// owning seller may update it.
func (srv *catalogService) UpdateProduct(ctx context.Context, input *usecase.UpdateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Updating product", slog.Any("productID", input.ProductID), slog.Any("sellerID", input.SellerID))

	if input.Image == nil {
		return nil, domainerrors.ErrImageRequired
	}

	imageURL, err := srv.imageStore.Save(ctx, input.Image.Filename, input.Image.ContentType, input.Image.Body)
	if err != nil {
		return nil, domainerrors.ErrImageUploadFailed.WrapMessage(err.Error())
	}

	var updated *entity.Product
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product by id")
		}

		if product.SellerID != input.SellerID {
			return domainerrors.ErrForbidden
		}

		product.Name = input.Name
		product.Description = input.Description
		product.Price = input.Price
		product.Quantity = input.Quantity
		product.ImageURL = imageURL

		if input.CategoryName != "" {
			category, err := srv.resolveCategory(ctx, repoFactory.CategoryRepo(), input.CategoryName)
			if err != nil {
				return err
			}
			product.CategoryID = category.ID
		}

		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}

		updated = product

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteProduct removes a product. Only the owning seller may delete it.
func (srv *catalogService) DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error {
	srv.log(ctx).Info("Deleting product", slog.Any("productID", productID), slog.Any("sellerID", sellerID))

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product by id")
		}

		if product.SellerID != sellerID {
			return domainerrors.ErrForbidden
		}

		return productRepo.Delete(ctx, productID)
	})
}

// ListSellerProducts returns all products published by the seller.
func (srv *catalogService) ListSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx, &repository.ProductFilter{
		SellerID: &sellerID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller products")
	}

	return products, nil
}

// AddReview attaches a user review to an existing product.
func (srv *catalogService) AddReview(ctx context.Context, input *usecase.AddReviewInput) (*entity.Review, error) {
	review := &entity.Review{
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	if !review.RatingValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("rating must be between 1 and 5")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.ProductRepo().FindByID(ctx, input.ProductID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product by id")
		}

		return repoFactory.ReviewRepo().Create(ctx, review)
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// ListReviews returns all reviews for an existing product.
func (srv *catalogService) ListReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	reviews, err := srv.reviewRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}
