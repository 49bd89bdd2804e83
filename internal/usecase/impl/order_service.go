package impl

import (
	"context"
	"log/slog"
	"strings"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	offerRepo repository.OfferRepository
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	OfferRepo repository.OfferRepository
	UserRepo  repository.UserRepository
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		offerRepo: params.OfferRepo,
		userRepo:  params.UserRepo,
		logger:    params.Logger,
	}
}

// CreateOrder snapshots the referenced offer detail into a new order linking
// the customer to the offer's business user. Later edits to the source
// detail never touch the order.
func (srv *orderService) CreateOrder(ctx context.Context, callerID uuid.UUID, input *usecase.CreateOrderInput) (*usecase.OrderOutput, error) {
	srv.logger.Info("Creating order", "userID", callerID, "offerDetailID", input.OfferDetailID)

	var created *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		offerRepo := repoFactory.OfferRepo()
		orderRepo := repoFactory.OrderRepo()

		caller, err := userRepo.FindByID(ctx, callerID)
		if err != nil {
			return errors.Wrap(err, "failed to find caller")
		}
		if !caller.IsCustomer() {
			return errors.Wrap(domainerrors.ErrForbidden, "only customer users may create orders")
		}

		detail, err := offerRepo.FindDetailByID(ctx, input.OfferDetailID)
		if err != nil {
			if errors.Is(err, repository.ErrOfferDetailNotFound) {
				return errors.Wrap(domainerrors.ErrDetailNotFound, "order creation rejected")
			}

			return errors.Wrap(err, "failed to find offer detail")
		}

		offer, err := offerRepo.FindByID(ctx, detail.OfferID)
		if err != nil {
			return errors.Wrap(err, "failed to find offer for detail")
		}

		order := entity.NewOrderFromDetail(callerID, offer.UserID, detail)
		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}
		created = order

		return nil
	})

	if err != nil {
		srv.logger.Warn("Failed to create order", "userID", callerID, "error", err)

		return nil, errors.Wrap(err, "failed to execute order creation transaction")
	}

	srv.logger.Debug("Order created", "orderID", created.ID)

	return toOrderOutput(created), nil
}

// ListOrders returns orders visible to the caller, newest first. Staff see
// everything; everyone else only orders they are a party to.
func (srv *orderService) ListOrders(ctx context.Context, callerID uuid.UUID, input *usecase.ListOrdersInput) ([]*usecase.OrderOutput, error) {
	caller, err := srv.userRepo.FindByID(ctx, callerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find caller")
	}

	filter := repository.OrderFilter{
		BusinessUserID: input.BusinessUserID,
		CustomerUserID: input.CustomerUserID,
	}
	if input.Status != "" {
		status := entity.OrderStatus(input.Status)
		if !status.Valid() {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails(allowedStatusDetails()), "order listing rejected")
		}
		filter.Status = &status
	}
	if !caller.IsStaff {
		filter.PartyID = &callerID
	}

	orders, err := srv.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	outputs := make([]*usecase.OrderOutput, 0, len(orders))
	for _, order := range orders {
		outputs = append(outputs, toOrderOutput(order))
	}

	return outputs, nil
}

// GetOrder retrieves a single order. Orders outside the caller's visibility
// read as not found.
func (srv *orderService) GetOrder(ctx context.Context, callerID, orderID uuid.UUID) (*usecase.OrderOutput, error) {
	caller, err := srv.userRepo.FindByID(ctx, callerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find caller")
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "failed to get order")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	if !order.VisibleTo(caller) {
		return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "failed to get order")
	}

	return toOrderOutput(order), nil
}

// UpdateOrderStatus changes the order status. The payload contract is
// strict: exactly the status key, nothing else, and only the linked
// business user may call it.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, callerID, orderID uuid.UUID, input *usecase.UpdateOrderStatusInput) (*usecase.OrderOutput, error) {
	srv.logger.Info("Updating order status", "orderID", orderID, "userID", callerID)

	if len(input.ExtraFields) > 0 {
		return nil, errors.Wrap(domainerrors.ErrStatusOnly.WithDetails("unexpected fields: "+strings.Join(input.ExtraFields, ", ")), "order update rejected")
	}
	if !input.Status.Set() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("'status' is required"), "order update rejected")
	}

	status := entity.OrderStatus(input.Status.Value)
	if !status.Valid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails(allowedStatusDetails()), "order update rejected")
	}

	var updated *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		orderRepo := repoFactory.OrderRepo()

		caller, err := userRepo.FindByID(ctx, callerID)
		if err != nil {
			return errors.Wrap(err, "failed to find caller")
		}

		order, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "failed to update order")
			}

			return errors.Wrap(err, "failed to find order")
		}

		if !order.VisibleTo(caller) {
			return errors.Wrap(domainerrors.ErrOrderNotFound, "failed to update order")
		}
		if !order.CanUpdateStatus(caller) {
			return errors.Wrap(domainerrors.ErrForbidden, "only the linked business user may update the order status")
		}

		if err := orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
			return errors.Wrap(err, "failed to update order status")
		}
		order.Status = status
		updated = order

		return nil
	})

	if err != nil {
		srv.logger.Warn("Failed to update order status", "orderID", orderID, "error", err)

		return nil, errors.Wrap(err, "failed to execute order status transaction")
	}

	return toOrderOutput(updated), nil
}

// DeleteOrder removes an order. Staff only.
func (srv *orderService) DeleteOrder(ctx context.Context, callerID, orderID uuid.UUID) error {
	srv.logger.Info("Deleting order", "orderID", orderID, "userID", callerID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		orderRepo := repoFactory.OrderRepo()

		caller, err := userRepo.FindByID(ctx, callerID)
		if err != nil {
			return errors.Wrap(err, "failed to find caller")
		}

		order, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "failed to delete order")
			}

			return errors.Wrap(err, "failed to find order")
		}

		if !order.CanDelete(caller) {
			return errors.Wrap(domainerrors.ErrForbidden, "only staff may delete orders")
		}

		if err := orderRepo.Delete(ctx, orderID); err != nil {
			return errors.Wrap(err, "failed to delete order")
		}

		return nil
	})

	if err != nil {
		srv.logger.Warn("Failed to delete order", "orderID", orderID, "error", err)

		return errors.Wrap(err, "failed to execute order deletion transaction")
	}

	return nil
}

// OrderCount counts the in-progress orders of one business user.
func (srv *orderService) OrderCount(ctx context.Context, businessUserID uuid.UUID) (int64, error) {
	return srv.countForBusiness(ctx, businessUserID, entity.OrderStatusInProgress)
}

// CompletedOrderCount counts the completed orders of one business user.
func (srv *orderService) CompletedOrderCount(ctx context.Context, businessUserID uuid.UUID) (int64, error) {
	return srv.countForBusiness(ctx, businessUserID, entity.OrderStatusCompleted)
}

func (srv *orderService) countForBusiness(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error) {
	user, err := srv.userRepo.FindByID(ctx, businessUserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, errors.Wrap(domainerrors.ErrBusinessUserNotFound, "failed to count orders")
		}

		return 0, errors.Wrap(err, "failed to find business user")
	}
	if !user.IsBusiness() {
		return 0, errors.Wrap(domainerrors.ErrBusinessUserNotFound, "failed to count orders")
	}

	count, err := srv.orderRepo.CountByBusinessAndStatus(ctx, businessUserID, status)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count orders")
	}

	return count, nil
}

// allowedStatusDetails renders the legal status values for error payloads.
func allowedStatusDetails() string {
	names := make([]string, 0, len(entity.OrderStatuses))
	for _, status := range entity.OrderStatuses {
		names = append(names, string(status))
	}

	return "status must be one of: " + strings.Join(names, ", ")
}

func toOrderOutput(order *entity.Order) *usecase.OrderOutput {
	features := order.Features
	if features == nil {
		features = []string{}
	}

	return &usecase.OrderOutput{
		ID:                 order.ID,
		CustomerUser:       order.CustomerUserID,
		BusinessUser:       order.BusinessUserID,
		Title:              order.Title,
		Revisions:          order.Revisions,
		DeliveryTimeInDays: order.DeliveryTime,
		Price:              decimalToFloat(order.Price),
		Features:           features,
		OfferType:          string(order.Tier),
		Status:             string(order.Status),
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}
