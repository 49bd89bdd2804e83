package postgres

import (
	"context"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/infra/persistence/model"

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

// FindByID retrieves a single order.
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

	return orderM.ToEntity(), nil
}

// Create persists a new order snapshot.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := model.OrderModelFromEntity(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid order party reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// UpdateStatus persists a status change for the given order.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Delete removes an order.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// List returns orders matching the filter, newest first.
func (repo *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{})

	if filter.BusinessUserID != nil {
		query = query.Where("business_user_id = ?", *filter.BusinessUserID)
	}
	if filter.CustomerUserID != nil {
		query = query.Where("customer_user_id = ?", *filter.CustomerUserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.PartyID != nil {
		query = query.Where("customer_user_id = ? OR business_user_id = ?", *filter.PartyID, *filter.PartyID)
	}

	var orderMs []*model.OrderModel
	if err := query.Order("created_at DESC").Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for _, orderM := range orderMs {
		orders = append(orders, orderM.ToEntity())
	}

	return orders, nil
}

// CountByBusinessAndStatus counts a business user's orders in one status.
func (repo *orderRepository) CountByBusinessAndStatus(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("business_user_id = ? AND status = ?", businessUserID, string(status)).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count orders by business and status")
	}

	return count, nil
}
