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

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// FindByID retrieves a single order by its unique ID.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// Create persists a new order.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)
	if orderM.ID == uuid.Nil {
		orderM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// Update modifies an existing order (status transitions).
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Save(orderM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update order")
	}

	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// CreateDetail persists the purchase line of an order.
func (repo *orderRepository) CreateDetail(ctx context.Context, detail *entity.OrderDetail) error {
	detailM := fromOrderDetailDomain(detail)
	if detailM.ID == uuid.Nil {
		detailM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(detailM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order detail")
	}

	detail.ID = detailM.ID
	detail.CreatedAt = detailM.CreatedAt

	return nil
}

// FindDetailsByOrderID returns the purchase lines of an order.
func (repo *orderRepository) FindDetailsByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderDetail, error) {
	var details []model.OrderDetailModel
	err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&details).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order details")
	}

	result := make([]*entity.OrderDetail, 0, len(details))
	for i := range details {
		result = append(result, toOrderDetailDomain(&details[i]))
	}

	return result, nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	return &entity.Order{
		ID:          data.ID,
		UserID:      data.UserID,
		OrderDate:   data.OrderDate,
		Status:      entity.OrderStatus(data.Status),
		TotalAmount: data.TotalAmount,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	return &model.OrderModel{
		ID:          data.ID,
		UserID:      data.UserID,
		OrderDate:   data.OrderDate,
		Status:      data.Status.String(),
		TotalAmount: data.TotalAmount,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toOrderDetailDomain(data *model.OrderDetailModel) *entity.OrderDetail {
	if data == nil {
		return nil
	}

	return &entity.OrderDetail{
		ID:        data.ID,
		OrderID:   data.OrderID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		UnitPrice: data.UnitPrice,
		SubTotal:  data.SubTotal,
		CreatedAt: data.CreatedAt,
	}
}

func fromOrderDetailDomain(data *entity.OrderDetail) *model.OrderDetailModel {
	if data == nil {
		return nil
	}

	return &model.OrderDetailModel{
		ID:        data.ID,
		OrderID:   data.OrderID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		UnitPrice: data.UnitPrice,
		SubTotal:  data.SubTotal,
		CreatedAt: data.CreatedAt,
	}
}
