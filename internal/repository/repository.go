package repository

import (
	"context"
	"time"

	"cleanquest/internal/models"

	"github.com/jmoiron/sqlx"
)

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	GetByID(ctx context.Context, complaintID string) (*models.Complaint, error)
	GetAll(ctx context.Context) ([]models.Complaint, error)
	HasPendingNear(ctx context.Context, lat, lng float64) (bool, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*models.Complaint, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
}

type StatsRepository interface {
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	CountComplaints(ctx context.Context) (int, error)
	CountResolvedComplaints(ctx context.Context) (int, error)
	CountUsersByRole(ctx context.Context, role string) (int, error)
}

type UpdateStatusRequest struct {
	ComplaintID      string     `json:"complaintId"`
	Status           string     `json:"status"`
	ResolvedImageURL *string    `json:"resolvedImageUrl"`
	ResolvedAt       *time.Time `json:"resolvedAt"`
}

type Repository struct {
	Complaint ComplaintRepository
	User      UserRepository
	Stats     StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Complaint: NewComplaintRepository(db),
		User:      NewUserRepository(db),
		Stats:     NewStatsRepository(db),
	}
}
