package impl

import (
	"context"
	"log/slog"
	"time"

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

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	gateway   service.PaymentGateway
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Gateway   service.PaymentGateway
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		gateway:   params.Gateway,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// BuyProduct runs the purchase workflow. The pending order is committed
// before the gateway call so a crashed or declined charge leaves an
// auditable row; the processing transition and its OrderDetail and
// PurchaseRecord rows are only written after a successful charge, in a
// second transaction.
func (srv *orderService) BuyProduct(ctx context.Context, input *usecase.BuyProductInput) (*usecase.BuyProductOutput, error) {
	srv.log(ctx).Info("Starting purchase",
		slog.Any("userID", input.UserID),
		slog.Any("productID", input.ProductID),
		slog.Int("quantity", input.Quantity),
	)

	if input.Quantity < 1 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be at least 1")
	}

	// Phase 1: load the product and create the pending order.
	var product *entity.Product
	order := &entity.Order{}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product by id")
		}
		product = found

		order.UserID = input.UserID
		order.OrderDate = time.Now()
		order.Status = entity.OrderStatusPending
		order.TotalAmount = product.Price * float64(input.Quantity)

		return repoFactory.OrderRepo().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	// Phase 2: charge the gateway. The order id doubles as the
	// idempotency key, so a client retry cannot double-charge.
	charge, err := srv.gateway.Charge(ctx, service.ChargeInput{
		OrderID:       order.ID,
		Amount:        order.TotalAmount,
		PaymentMethod: input.PaymentMethod,
	})
	if err != nil {
		// The order stays pending; no detail or purchase rows exist yet.
		srv.log(ctx).Warn("Payment failed, order remains pending",
			slog.Any("orderID", order.ID),
			slog.Any("error", err),
		)

		return nil, err
	}

	// Phase 3: record the successful purchase atomically.
	detail := &entity.OrderDetail{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  input.Quantity,
		UnitPrice: product.Price,
		SubTotal:  order.TotalAmount,
	}
	record := &entity.PurchaseRecord{
		UserID:      input.UserID,
		OrderID:     order.ID,
		ProductID:   product.ID,
		Quantity:    input.Quantity,
		TotalAmount: order.TotalAmount,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order.Status = entity.OrderStatusProcessing
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}
		if err := orderRepo.CreateDetail(ctx, detail); err != nil {
			return err
		}

		return repoFactory.UserRepo().CreatePurchaseRecord(ctx, record)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to record purchase after successful charge",
			slog.Any("orderID", order.ID),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to record purchase")
	}

	srv.log(ctx).Debug("Purchase completed",
		slog.Any("orderID", order.ID),
		slog.String("paymentID", charge.ProviderID),
	)

	return &usecase.BuyProductOutput{
		Order:          order,
		OrderDetail:    detail,
		PurchaseRecord: record,
		Payment:        charge,
	}, nil
}

// GetPurchaseHistory returns the user's purchase records, newest first.
func (srv *orderService) GetPurchaseHistory(ctx context.Context, userID uuid.UUID) ([]*entity.PurchaseRecord, error) {
	records, err := srv.userRepo.FindPurchaseRecordsByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load purchase history")
	}

	return records, nil
}
