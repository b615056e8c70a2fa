package service

import (
	"context"

	"cleanquest/internal/models"
	"cleanquest/internal/repository"
)

// Таблица лидеров всегда ограничена десятью позициями
const leaderboardLimit = 10

type StatsService interface {
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	Stats(ctx context.Context) (*models.StatsSummary, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	entries, err := s.statsRepo.Leaderboard(ctx, leaderboardLimit)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *statsService) Stats(ctx context.Context) (*models.StatsSummary, error) {
	total, err := s.statsRepo.CountComplaints(ctx)
	if err != nil {
		return nil, err
	}

	resolved, err := s.statsRepo.CountResolvedComplaints(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.statsRepo.CountUsersByRole(ctx, "user")
	if err != nil {
		return nil, err
	}

	return &models.StatsSummary{
		TotalReports:    total,
		ResolvedReports: resolved,
		TotalUsers:      users,
	}, nil
}
