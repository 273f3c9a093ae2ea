package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sellerRepository implements the domain.SellerRepository interface using GORM.
type sellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository is the constructor for sellerRepository.
func NewSellerRepository(db *gorm.DB) repository.SellerRepository {
	return &sellerRepository{db: db}
}

// FindByID retrieves a single seller by their unique ID.
func (repo *sellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seller, error) {
	var sellerM model.SellerModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sellerM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSellerNotFound
		}
		return nil, errors.Wrap(err, "failed to find seller by id")
	}

	return toSellerDomain(&sellerM), nil
}

// FindByEmail retrieves a single seller by their email address.
func (repo *sellerRepository) FindByEmail(ctx context.Context, email string) (*entity.Seller, error) {
	var sellerM model.SellerModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&sellerM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSellerNotFound
		}
		return nil, errors.Wrap(err, "failed to find seller by email")
	}

	return toSellerDomain(&sellerM), nil
}

// Create persists a new seller entity to the database.
func (repo *sellerRepository) Create(ctx context.Context, seller *entity.Seller) error {
	sellerM := fromSellerDomain(seller)
	if sellerM.ID == uuid.Nil {
		sellerM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(sellerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyExists
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required seller information")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create seller")
	}

	seller.ID = sellerM.ID
	seller.CreatedAt = sellerM.CreatedAt
	seller.UpdatedAt = sellerM.UpdatedAt

	return nil
}

// Update modifies an existing seller entity in the database.
func (repo *sellerRepository) Update(ctx context.Context, seller *entity.Seller) error {
	sellerM := fromSellerDomain(seller)

	if err := repo.db.WithContext(ctx).Save(sellerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyExists
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to update seller")
	}

	seller.UpdatedAt = sellerM.UpdatedAt

	return nil
}

// UpdateRefreshTokenHash stores the hash of the single active refresh token.
// An empty tokenHash clears the stored hash, revoking the session.
func (repo *sellerRepository) UpdateRefreshTokenHash(ctx context.Context, id uuid.UUID, tokenHash string) error {
	var value *string
	if tokenHash != "" {
		value = &tokenHash
	}

	result := repo.db.WithContext(ctx).
		Model(&model.SellerModel{}).
		Where("id = ?", id).
		Update("refresh_token_hash", value)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update refresh token hash")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSellerNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toSellerDomain(data *model.SellerModel) *entity.Seller {
	if data == nil {
		return nil
	}

	var refreshHash string
	if data.RefreshTokenHash != nil {
		refreshHash = *data.RefreshTokenHash
	}

	return &entity.Seller{
		ID:               data.ID,
		Name:             data.Name,
		Email:            data.Email,
		PasswordHash:     data.PasswordHash,
		Phone:            data.Phone,
		Address:          data.Address,
		City:             data.City,
		State:            data.State,
		Zip:              data.Zip,
		Country:          data.Country,
		RefreshTokenHash: refreshHash,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func fromSellerDomain(data *entity.Seller) *model.SellerModel {
	if data == nil {
		return nil
	}

	var refreshHash *string
	if data.RefreshTokenHash != "" {
		hash := data.RefreshTokenHash
		refreshHash = &hash
	}

	return &model.SellerModel{
		ID:               data.ID,
		Name:             data.Name,
		Email:            data.Email,
		PasswordHash:     data.PasswordHash,
		Phone:            data.Phone,
		Address:          data.Address,
		City:             data.City,
		State:            data.State,
		Zip:              data.Zip,
		Country:          data.Country,
		RefreshTokenHash: refreshHash,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}
