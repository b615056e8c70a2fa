package test

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"cleanquest/internal/config"
	handlers "cleanquest/internal/handler"
	"cleanquest/internal/models"
	"cleanquest/internal/repository"
)

type MockComplaintService struct {
	mock.Mock
}

func (m *MockComplaintService) Submit(ctx context.Context, req repository.CreateComplaintRequest) (*models.Complaint, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockComplaintService) ListComplaints(ctx context.Context) ([]models.Complaint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockComplaintService) UpdateStatus(ctx context.Context, complaintID, status, resolvedImageURL string) (*models.Complaint, error) {
	args := m.Called(ctx, complaintID, status, resolvedImageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

type MockComplaintRepository struct {
	mock.Mock
}

func (m *MockComplaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockComplaintRepository) GetByID(ctx context.Context, id string) (*models.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) GetAll(ctx context.Context) ([]models.Complaint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) HasPendingNear(ctx context.Context, lat, lng float64) (bool, error) {
	args := m.Called(ctx, lat, lng)
	return args.Bool(0), args.Error(1)
}

func (m *MockComplaintRepository) UpdateStatus(ctx context.Context, req repository.UpdateStatusRequest) (*models.Complaint, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password, role string) (*models.User, string, error) {
	args := m.Called(ctx, username, password, role)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) GetUserFromToken(tokenString string) (*models.User, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaderboardEntry), args.Error(1)
}

func (m *MockStatsService) Stats(ctx context.Context) (*models.StatsSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatsSummary), args.Error(1)
}

// createTestHandler собирает Handlers с моками вместо реальных зависимостей
func createTestHandler(complaintSvc *MockComplaintService, complaintRepo *MockComplaintRepository, authSvc *MockAuthService, statsSvc *MockStatsService) *handlers.Handlers {
	return &handlers.Handlers{
		ComplaintService: complaintSvc,
		ComplaintRepo:    complaintRepo,
		AuthService:      authSvc,
		StatsService:     statsSvc,
		Cfg:              &config.Config{JWTSecretKey: "test-secret", AdminSecretKey: "admin-secret"},
		Validate:         validator.New(),
	}
}
