package postgres

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_CreateUpdateFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := &entity.Order{
		UserID:      uuid.New(),
		OrderDate:   time.Now(),
		Status:      entity.OrderStatusPending,
		TotalAmount: 59.97,
	}
	require.NoError(t, repo.Create(ctx, order))
	assert.NotEqual(t, uuid.Nil, order.ID)

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, found.Status)
	assert.InDelta(t, 59.97, found.TotalAmount, 0.001)

	found.Status = entity.OrderStatusProcessing
	require.NoError(t, repo.Update(ctx, found))

	again, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, again.Status)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestOrderRepository_Details(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := &entity.Order{
		UserID:      uuid.New(),
		OrderDate:   time.Now(),
		Status:      entity.OrderStatusProcessing,
		TotalAmount: 100,
	}
	require.NoError(t, repo.Create(ctx, order))

	detail := &entity.OrderDetail{
		OrderID:   order.ID,
		ProductID: uuid.New(),
		Quantity:  4,
		UnitPrice: 25,
		SubTotal:  100,
	}
	require.NoError(t, repo.CreateDetail(ctx, detail))

	details, err := repo.FindDetailsByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, 4, details[0].Quantity)
	assert.InDelta(t, 100, details[0].SubTotal, 0.001)

	// No detail rows for other orders
	none, err := repo.FindDetailsByOrderID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReviewRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	productID := uuid.New()

	first := &entity.Review{
		ProductID: productID,
		UserID:    uuid.New(),
		Rating:    5,
		Comment:   "Great",
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &entity.Review{
		ProductID: productID,
		UserID:    uuid.New(),
		Rating:    3,
		Comment:   "Okay",
	}
	require.NoError(t, repo.Create(ctx, second))

	reviews, err := repo.FindByProductID(ctx, productID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	other, err := repo.FindByProductID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestTransactionManager_CommitAndRollback(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	ctx := context.Background()

	// Committed work is visible afterwards
	var createdID uuid.UUID
	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		user := &entity.User{Name: "Tx", Email: "tx@example.com", PasswordHash: "h"}
		if err := f.UserRepo().Create(ctx, user); err != nil {
			return err
		}
		createdID = user.ID
		return nil
	})
	require.NoError(t, err)

	_, err = NewUserRepository(db).FindByID(ctx, createdID)
	require.NoError(t, err)

	// A returned error rolls everything back
	sentinel := assert.AnError
	var rolledBackID uuid.UUID
	err = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		user := &entity.User{Name: "Gone", Email: "gone@example.com", PasswordHash: "h"}
		if err := f.UserRepo().Create(ctx, user); err != nil {
			return err
		}
		rolledBackID = user.ID
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	_, err = NewUserRepository(db).FindByID(ctx, rolledBackID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
