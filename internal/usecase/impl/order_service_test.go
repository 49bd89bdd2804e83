package impl

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	mockRepo "coderr/internal/mocks/repository"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceFixtures struct {
	txManager *mockRepo.MockTransactionManager
	orderRepo *mockRepo.MockOrderRepository
	offerRepo *mockRepo.MockOfferRepository
	userRepo  *mockRepo.MockUserRepository
}

func createTestOrderService(t *testing.T) (usecase.OrderUsecase, orderServiceFixtures) {
	t.Helper()

	fixtures := orderServiceFixtures{
		txManager: mockRepo.NewMockTransactionManager(t),
		orderRepo: mockRepo.NewMockOrderRepository(t),
		offerRepo: mockRepo.NewMockOfferRepository(t),
		userRepo:  mockRepo.NewMockUserRepository(t),
	}

	svc := NewOrderService(OrderServiceParams{
		TxManager: fixtures.txManager,
		OrderRepo: fixtures.orderRepo,
		OfferRepo: fixtures.offerRepo,
		UserRepo:  fixtures.userRepo,
		Logger:    newDiscardLogger(),
	})

	return svc, fixtures
}

func customerUser() *entity.User {
	userID := uuid.New()

	return &entity.User{
		ID:       userID,
		Username: "exampleCustomer",
		Profile:  &entity.Profile{UserID: userID, Type: entity.ProfileTypeCustomer},
	}
}

func staffUser() *entity.User {
	userID := uuid.New()

	return &entity.User{
		ID:      userID,
		IsStaff: true,
		Profile: &entity.Profile{UserID: userID, Type: entity.ProfileTypeCustomer},
	}
}

func storedOrder(customerID, businessID uuid.UUID) *entity.Order {
	return &entity.Order{
		ID:             uuid.New(),
		CustomerUserID: customerID,
		BusinessUserID: businessID,
		Title:          "Basic Design",
		Revisions:      1,
		DeliveryTime:   5,
		Price:          decimal.NewFromInt(100),
		Features:       []string{"Logo"},
		Tier:           entity.TierBasic,
		Status:         entity.OrderStatusInProgress,
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots the detail into a new in-progress order", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		customer := customerUser()
		owner := businessUser()
		offer := storedOffer(owner.ID)
		detail := offer.Details[0]

		txUserRepo := mockRepo.NewMockUserRepository(t)
		txOfferRepo := mockRepo.NewMockOfferRepository(t)
		txOrderRepo := mockRepo.NewMockOrderRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("UserRepo").Return(txUserRepo)
		factory.On("OfferRepo").Return(txOfferRepo)
		factory.On("OrderRepo").Return(txOrderRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txUserRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		txOfferRepo.On("FindDetailByID", ctx, detail.ID).Return(detail, nil)
		txOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)

		var created *entity.Order
		txOrderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*entity.Order)
				created.ID = uuid.New()
			}).
			Return(nil)

		output, err := svc.CreateOrder(ctx, customer.ID, &usecase.CreateOrderInput{OfferDetailID: detail.ID})

		require.NoError(t, err)
		assert.Equal(t, customer.ID, output.CustomerUser)
		assert.Equal(t, owner.ID, output.BusinessUser)
		assert.Equal(t, detail.Title, output.Title)
		assert.Equal(t, "in_progress", output.Status)

		// The snapshot must not share state with the source detail.
		detail.Features[0] = "mutated"
		assert.NotEqual(t, detail.Features[0], created.Features[0])
	})

	t.Run("rejects business callers", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		owner := businessUser()

		txUserRepo := mockRepo.NewMockUserRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("UserRepo").Return(txUserRepo)
		factory.On("OfferRepo").Return(mockRepo.NewMockOfferRepository(t))
		factory.On("OrderRepo").Return(mockRepo.NewMockOrderRepository(t))
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txUserRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)

		output, err := svc.CreateOrder(ctx, owner.ID, &usecase.CreateOrderInput{OfferDetailID: uuid.New()})

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	})

	t.Run("maps a missing detail to not found", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		customer := customerUser()
		unknownID := uuid.New()

		txUserRepo := mockRepo.NewMockUserRepository(t)
		txOfferRepo := mockRepo.NewMockOfferRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("UserRepo").Return(txUserRepo)
		factory.On("OfferRepo").Return(txOfferRepo)
		factory.On("OrderRepo").Return(mockRepo.NewMockOrderRepository(t))
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txUserRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		txOfferRepo.On("FindDetailByID", ctx, unknownID).Return(nil, repository.ErrOfferDetailNotFound)

		output, err := svc.CreateOrder(ctx, customer.ID, &usecase.CreateOrderInput{OfferDetailID: unknownID})

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrDetailNotFound))
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("restricts non-staff callers to their own orders", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		customer := customerUser()
		order := storedOrder(customer.ID, uuid.New())

		fixtures.userRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		fixtures.orderRepo.On("List", ctx, mock.MatchedBy(func(filter repository.OrderFilter) bool {
			return filter.PartyID != nil && *filter.PartyID == customer.ID
		})).Return([]*entity.Order{order}, nil)

		outputs, err := svc.ListOrders(ctx, customer.ID, &usecase.ListOrdersInput{})

		require.NoError(t, err)
		require.Len(t, outputs, 1)
		assert.Equal(t, order.ID, outputs[0].ID)
	})

	t.Run("lets staff see everything", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		staff := staffUser()

		fixtures.userRepo.On("FindByID", ctx, staff.ID).Return(staff, nil)
		fixtures.orderRepo.On("List", ctx, mock.MatchedBy(func(filter repository.OrderFilter) bool {
			return filter.PartyID == nil
		})).Return([]*entity.Order{}, nil)

		outputs, err := svc.ListOrders(ctx, staff.ID, &usecase.ListOrdersInput{})

		require.NoError(t, err)
		assert.Empty(t, outputs)
	})

	t.Run("rejects unknown status filters", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		customer := customerUser()

		fixtures.userRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)

		outputs, err := svc.ListOrders(ctx, customer.ID, &usecase.ListOrdersInput{Status: "paused"})

		require.Error(t, err)
		assert.Nil(t, outputs)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("hides orders outside the caller's visibility", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		bystander := customerUser()
		order := storedOrder(uuid.New(), uuid.New())

		fixtures.userRepo.On("FindByID", ctx, bystander.ID).Return(bystander, nil)
		fixtures.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		output, err := svc.GetOrder(ctx, bystander.ID, order.ID)

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
	})

	t.Run("returns the order to a linked party", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		customer := customerUser()
		order := storedOrder(customer.ID, uuid.New())

		fixtures.userRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		fixtures.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		output, err := svc.GetOrder(ctx, customer.ID, order.ID)

		require.NoError(t, err)
		assert.Equal(t, order.ID, output.ID)
		assert.InDelta(t, 100.0, output.Price, 0.001)
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	statusInput := func(status string) *usecase.UpdateOrderStatusInput {
		return &usecase.UpdateOrderStatusInput{
			Status: usecase.Field[string]{Present: true, Value: status},
		}
	}

	t.Run("lets the linked business user complete the order", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		owner := businessUser()
		order := storedOrder(uuid.New(), owner.ID)

		txUserRepo := mockRepo.NewMockUserRepository(t)
		txOrderRepo := mockRepo.NewMockOrderRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("UserRepo").Return(txUserRepo)
		factory.On("OrderRepo").Return(txOrderRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txUserRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
		txOrderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		txOrderRepo.On("UpdateStatus", ctx, order.ID, entity.OrderStatusCompleted).Return(nil)

		output, err := svc.UpdateOrderStatus(ctx, owner.ID, order.ID, statusInput("completed"))

		require.NoError(t, err)
		assert.Equal(t, "completed", output.Status)
	})

	t.Run("rejects payloads carrying anything but status", func(t *testing.T) {
		svc, _ := createTestOrderService(t)

		input := statusInput("completed")
		input.ExtraFields = []string{"price"}

		output, err := svc.UpdateOrderStatus(ctx, uuid.New(), uuid.New(), input)

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrStatusOnly))
	})

	t.Run("requires the status key", func(t *testing.T) {
		svc, _ := createTestOrderService(t)

		output, err := svc.UpdateOrderStatus(ctx, uuid.New(), uuid.New(), &usecase.UpdateOrderStatusInput{})

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})

	t.Run("rejects the customer party", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		customer := customerUser()
		order := storedOrder(customer.ID, uuid.New())

		txUserRepo := mockRepo.NewMockUserRepository(t)
		txOrderRepo := mockRepo.NewMockOrderRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("UserRepo").Return(txUserRepo)
		factory.On("OrderRepo").Return(txOrderRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txUserRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		txOrderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		output, err := svc.UpdateOrderStatus(ctx, customer.ID, order.ID, statusInput("completed"))

		require.Error(t, err)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	})
}

func TestOrderService_DeleteOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("lets staff delete any order", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		staff := staffUser()
		order := storedOrder(uuid.New(), uuid.New())

		txUserRepo := mockRepo.NewMockUserRepository(t)
		txOrderRepo := mockRepo.NewMockOrderRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("UserRepo").Return(txUserRepo)
		factory.On("OrderRepo").Return(txOrderRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txUserRepo.On("FindByID", ctx, staff.ID).Return(staff, nil)
		txOrderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		txOrderRepo.On("Delete", ctx, order.ID).Return(nil)

		require.NoError(t, svc.DeleteOrder(ctx, staff.ID, order.ID))
	})

	t.Run("rejects the order parties themselves", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		customer := customerUser()
		order := storedOrder(customer.ID, uuid.New())

		txUserRepo := mockRepo.NewMockUserRepository(t)
		txOrderRepo := mockRepo.NewMockOrderRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.On("UserRepo").Return(txUserRepo)
		factory.On("OrderRepo").Return(txOrderRepo)
		fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
			Return(passthroughTx(factory))

		txUserRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		txOrderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		err := svc.DeleteOrder(ctx, customer.ID, order.ID)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	})
}

func TestOrderService_Counts(t *testing.T) {
	ctx := context.Background()

	t.Run("counts in-progress orders of a business user", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		owner := businessUser()

		fixtures.userRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
		fixtures.orderRepo.On("CountByBusinessAndStatus", ctx, owner.ID, entity.OrderStatusInProgress).Return(int64(4), nil)

		count, err := svc.OrderCount(ctx, owner.ID)

		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})

	t.Run("counts completed orders of a business user", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		owner := businessUser()

		fixtures.userRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
		fixtures.orderRepo.On("CountByBusinessAndStatus", ctx, owner.ID, entity.OrderStatusCompleted).Return(int64(2), nil)

		count, err := svc.CompletedOrderCount(ctx, owner.ID)

		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("maps an unknown business user to not found", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		unknownID := uuid.New()

		fixtures.userRepo.On("FindByID", ctx, unknownID).Return(nil, repository.ErrUserNotFound)

		_, err := svc.OrderCount(ctx, unknownID)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrBusinessUserNotFound))
	})

	t.Run("treats a customer target as not found", func(t *testing.T) {
		svc, fixtures := createTestOrderService(t)
		customer := customerUser()

		fixtures.userRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)

		_, err := svc.CompletedOrderCount(ctx, customer.ID)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrBusinessUserNotFound))
	})
}
