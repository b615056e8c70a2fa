package service

import (
	"cleanquest/internal/classifier"
	"cleanquest/internal/config"
	"cleanquest/internal/repository"
	"cleanquest/internal/storage"
)

type Service struct {
	Complaint ComplaintService
	Auth      AuthService
	Stats     StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, ai classifier.Classifier) *Service {
	return &Service{
		Complaint: NewComplaintService(rep.Complaint, storage, ai),
		Auth:      NewAuthService(rep.User, cfg),
		Stats:     NewStatsService(rep.Stats),
	}
}
