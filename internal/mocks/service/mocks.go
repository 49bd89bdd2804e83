// Package mocks provides testify mocks for the domain service interfaces.
package mocks

import (
	"context"
	"testing"

	"coderr/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	ret := m.Called(password)

	return ret.String(0), ret.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	ret := m.Called(password, hash)

	return ret.Bool(0)
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateToken(userID uuid.UUID, roles []string, isStaff bool) (string, error) {
	ret := m.Called(userID, roles, isStaff)

	return ret.String(0), ret.Error(1)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*service.TokenClaims, error) {
	ret := m.Called(tokenString)

	var claims *service.TokenClaims
	if v := ret.Get(0); v != nil {
		claims = v.(*service.TokenClaims)
	}

	return claims, ret.Error(1)
}

// MockImageStorage mocks service.ImageStorage.
type MockImageStorage struct {
	mock.Mock
}

func NewMockImageStorage(t *testing.T) *MockImageStorage {
	m := &MockImageStorage{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockImageStorage) Store(ctx context.Context, base64Payload string, prefix string) (string, error) {
	ret := m.Called(ctx, base64Payload, prefix)

	return ret.String(0), ret.Error(1)
}

func (m *MockImageStorage) URL(ref string) string {
	ret := m.Called(ref)

	return ret.String(0)
}
