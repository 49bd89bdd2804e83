// Package mocks provides testify mocks for the domain repository interfaces.
package mocks

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTransactionManager mocks repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates the mock and registers expectation checks.
func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	ret := m.Called(ctx, fn)

	if rf, ok := ret.Get(0).(func(context.Context, func(repository.RepositoryFactory) error) error); ok {
		return rf(ctx, fn)
	}

	return ret.Error(0)
}

// MockRepositoryFactory mocks repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

func NewMockRepositoryFactory(t *testing.T) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) UserRepo() repository.UserRepository {
	ret := m.Called()

	return ret.Get(0).(repository.UserRepository)
}

func (m *MockRepositoryFactory) OfferRepo() repository.OfferRepository {
	ret := m.Called()

	return ret.Get(0).(repository.OfferRepository)
}

func (m *MockRepositoryFactory) OrderRepo() repository.OrderRepository {
	ret := m.Called()

	return ret.Get(0).(repository.OrderRepository)
}

func (m *MockRepositoryFactory) ReviewRepo() repository.ReviewRepository {
	ret := m.Called()

	return ret.Get(0).(repository.ReviewRepository)
}

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	ret := m.Called(ctx, id)

	var user *entity.User
	if v := ret.Get(0); v != nil {
		user = v.(*entity.User)
	}

	return user, ret.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	ret := m.Called(ctx, username)

	var user *entity.User
	if v := ret.Get(0); v != nil {
		user = v.(*entity.User)
	}

	return user, ret.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	ret := m.Called(ctx, username)

	return ret.Bool(0), ret.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string, excludeUserID uuid.UUID) (bool, error) {
	ret := m.Called(ctx, email, excludeUserID)

	return ret.Bool(0), ret.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	ret := m.Called(ctx, user)

	return ret.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	ret := m.Called(ctx, user)

	return ret.Error(0)
}

func (m *MockUserRepository) ListProfilesByType(ctx context.Context, profileType entity.ProfileType) ([]*entity.User, error) {
	ret := m.Called(ctx, profileType)

	var users []*entity.User
	if v := ret.Get(0); v != nil {
		users = v.([]*entity.User)
	}

	return users, ret.Error(1)
}

func (m *MockUserRepository) CountProfilesByType(ctx context.Context, profileType entity.ProfileType) (int64, error) {
	ret := m.Called(ctx, profileType)

	return ret.Get(0).(int64), ret.Error(1)
}

// MockOfferRepository mocks repository.OfferRepository.
type MockOfferRepository struct {
	mock.Mock
}

func NewMockOfferRepository(t *testing.T) *MockOfferRepository {
	m := &MockOfferRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	ret := m.Called(ctx, id)

	var offer *entity.Offer
	if v := ret.Get(0); v != nil {
		offer = v.(*entity.Offer)
	}

	return offer, ret.Error(1)
}

func (m *MockOfferRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error) {
	ret := m.Called(ctx, id)

	var detail *entity.OfferDetail
	if v := ret.Get(0); v != nil {
		detail = v.(*entity.OfferDetail)
	}

	return detail, ret.Error(1)
}

func (m *MockOfferRepository) Create(ctx context.Context, offer *entity.Offer) error {
	ret := m.Called(ctx, offer)

	return ret.Error(0)
}

func (m *MockOfferRepository) UpdateHeader(ctx context.Context, offer *entity.Offer) error {
	ret := m.Called(ctx, offer)

	return ret.Error(0)
}

func (m *MockOfferRepository) UpdateDetail(ctx context.Context, detail *entity.OfferDetail) error {
	ret := m.Called(ctx, detail)

	return ret.Error(0)
}

func (m *MockOfferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := m.Called(ctx, id)

	return ret.Error(0)
}

func (m *MockOfferRepository) List(ctx context.Context, filter repository.OfferFilter) ([]*entity.Offer, int64, error) {
	ret := m.Called(ctx, filter)

	var offers []*entity.Offer
	if v := ret.Get(0); v != nil {
		offers = v.([]*entity.Offer)
	}

	return offers, ret.Get(1).(int64), ret.Error(2)
}

func (m *MockOfferRepository) Count(ctx context.Context) (int64, error) {
	ret := m.Called(ctx)

	return ret.Get(0).(int64), ret.Error(1)
}

// MockOrderRepository mocks repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func NewMockOrderRepository(t *testing.T) *MockOrderRepository {
	m := &MockOrderRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	ret := m.Called(ctx, id)

	var order *entity.Order
	if v := ret.Get(0); v != nil {
		order = v.(*entity.Order)
	}

	return order, ret.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	ret := m.Called(ctx, order)

	return ret.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	ret := m.Called(ctx, id, status)

	return ret.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := m.Called(ctx, id)

	return ret.Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	ret := m.Called(ctx, filter)

	var orders []*entity.Order
	if v := ret.Get(0); v != nil {
		orders = v.([]*entity.Order)
	}

	return orders, ret.Error(1)
}

func (m *MockOrderRepository) CountByBusinessAndStatus(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error) {
	ret := m.Called(ctx, businessUserID, status)

	return ret.Get(0).(int64), ret.Error(1)
}

// MockReviewRepository mocks repository.ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func NewMockReviewRepository(t *testing.T) *MockReviewRepository {
	m := &MockReviewRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	ret := m.Called(ctx, id)

	var review *entity.Review
	if v := ret.Get(0); v != nil {
		review = v.(*entity.Review)
	}

	return review, ret.Error(1)
}

func (m *MockReviewRepository) ExistsForPair(ctx context.Context, businessUserID, reviewerID uuid.UUID) (bool, error) {
	ret := m.Called(ctx, businessUserID, reviewerID)

	return ret.Bool(0), ret.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	ret := m.Called(ctx, review)

	return ret.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	ret := m.Called(ctx, review)

	return ret.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := m.Called(ctx, id)

	return ret.Error(0)
}

func (m *MockReviewRepository) List(ctx context.Context, filter repository.ReviewFilter) ([]*entity.Review, error) {
	ret := m.Called(ctx, filter)

	var reviews []*entity.Review
	if v := ret.Get(0); v != nil {
		reviews = v.([]*entity.Review)
	}

	return reviews, ret.Error(1)
}

func (m *MockReviewRepository) Count(ctx context.Context) (int64, error) {
	ret := m.Called(ctx)

	return ret.Get(0).(int64), ret.Error(1)
}

func (m *MockReviewRepository) AverageRating(ctx context.Context) (float64, error) {
	ret := m.Called(ctx)

	return ret.Get(0).(float64), ret.Error(1)
}
