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

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		// Otherwise, return the original database error.
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	if userM.ID == uuid.Nil {
		userM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert driver errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyExists
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user entity in the database.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Save(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyExists
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// UpdateRefreshTokenHash stores the hash of the single active refresh token.
// An empty tokenHash clears the stored hash, revoking the session.
func (repo *userRepository) UpdateRefreshTokenHash(ctx context.Context, id uuid.UUID, tokenHash string) error {
	var value *string
	if tokenHash != "" {
		value = &tokenHash
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("refresh_token_hash", value)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update refresh token hash")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// CreatePurchaseRecord appends one row to the user's purchase history.
func (repo *userRepository) CreatePurchaseRecord(ctx context.Context, record *entity.PurchaseRecord) error {
	recordM := fromPurchaseRecordDomain(record)
	if recordM.ID == uuid.Nil {
		recordM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(recordM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create purchase record")
	}

	record.ID = recordM.ID
	record.CreatedAt = recordM.CreatedAt

	return nil
}

// FindPurchaseRecordsByUserID returns the user's purchase history, newest first.
func (repo *userRepository) FindPurchaseRecordsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.PurchaseRecord, error) {
	var records []model.PurchaseRecordModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find purchase records")
	}

	result := make([]*entity.PurchaseRecord, 0, len(records))
	for i := range records {
		result = append(result, toPurchaseRecordDomain(&records[i]))
	}

	return result, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	var refreshHash string
	if data.RefreshTokenHash != nil {
		refreshHash = *data.RefreshTokenHash
	}

	return &entity.User{
		ID:               data.ID,
		Name:             data.Name,
		Email:            data.Email,
		PasswordHash:     data.PasswordHash,
		RefreshTokenHash: refreshHash,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	var refreshHash *string
	if data.RefreshTokenHash != "" {
		hash := data.RefreshTokenHash
		refreshHash = &hash
	}

	return &model.UserModel{
		ID:               data.ID,
		Name:             data.Name,
		Email:            data.Email,
		PasswordHash:     data.PasswordHash,
		RefreshTokenHash: refreshHash,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func toPurchaseRecordDomain(data *model.PurchaseRecordModel) *entity.PurchaseRecord {
	if data == nil {
		return nil
	}

	return &entity.PurchaseRecord{
		ID:          data.ID,
		UserID:      data.UserID,
		OrderID:     data.OrderID,
		ProductID:   data.ProductID,
		Quantity:    data.Quantity,
		TotalAmount: data.TotalAmount,
		CreatedAt:   data.CreatedAt,
	}
}

func fromPurchaseRecordDomain(data *entity.PurchaseRecord) *model.PurchaseRecordModel {
	if data == nil {
		return nil
	}

	return &model.PurchaseRecordModel{
		ID:          data.ID,
		UserID:      data.UserID,
		OrderID:     data.OrderID,
		ProductID:   data.ProductID,
		Quantity:    data.Quantity,
		TotalAmount: data.TotalAmount,
		CreatedAt:   data.CreatedAt,
	}
}
