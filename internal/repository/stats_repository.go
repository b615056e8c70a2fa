package repository

import (
	"context"
	"fmt"

	"cleanquest/internal/models"

	"github.com/jmoiron/sqlx"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

// Leaderboard группирует жалобы по имени заявителя как есть (регистр важен,
// опечатки не склеиваются); score = 10 за жалобу + 50 за решённую
func (r *statsRepository) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	query := `
        SELECT citizen_name,
               COUNT(*) AS total_reports,
               COUNT(*) FILTER (WHERE status = 'Resolved') AS resolved_reports,
               COUNT(*) * 10 + COUNT(*) FILTER (WHERE status = 'Resolved') * 50 AS score
        FROM complaints
        GROUP BY citizen_name
        ORDER BY score DESC
        LIMIT $1
    `

	var entries []models.LeaderboardEntry
	err := r.db.SelectContext(ctx, &entries, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при построении таблицы лидеров: %w", err)
	}

	return entries, nil
}

func (r *statsRepository) CountComplaints(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM complaints`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте жалоб: %w", err)
	}

	return count, nil
}

func (r *statsRepository) CountResolvedComplaints(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM complaints WHERE status = 'Resolved'`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте решённых жалоб: %w", err)
	}

	return count, nil
}

func (r *statsRepository) CountUsersByRole(ctx context.Context, role string) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE role = $1`, role)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте пользователей: %w", err)
	}

	return count, nil
}
