package services

import (
	"context"

	"github.com/dimitrije/site-admin-api/internal/federated"
	"github.com/dimitrije/site-admin-api/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockProfiles struct {
	mock.Mock
	configured bool
}

func (m *mockProfiles) Configured() bool { return m.configured }

func (m *mockProfiles) GetByID(ctx context.Context, id string) (*models.AdminProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminProfile), args.Error(1)
}

func (m *mockProfiles) List(ctx context.Context) ([]models.AdminProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AdminProfile), args.Error(1)
}

func (m *mockProfiles) Upsert(ctx context.Context, profile *models.AdminProfile) (*models.AdminProfile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminProfile), args.Error(1)
}

type mockFederated struct {
	mock.Mock
}

func (m *mockFederated) Verify(ctx context.Context, raw string) (*federated.Session, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*federated.Session), args.Error(1)
}

type mockInviter struct {
	mock.Mock
	configured bool
}

func (m *mockInviter) Configured() bool { return m.configured }

func (m *mockInviter) InviteUserByEmail(ctx context.Context, email string, metadata map[string]any) (*federated.InvitedUser, error) {
	args := m.Called(ctx, email, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*federated.InvitedUser), args.Error(1)
}
