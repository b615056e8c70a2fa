package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"cleanquest/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// LocationTolerance — окно дедупликации по координатам (~11 метров)
const LocationTolerance = 0.0001

var (
	ErrComplaintNotFound = errors.New("жалоба не найдена")
	ErrDuplicateLocation = errors.New("жалоба в этой точке уже зарегистрирована")
)

type ComplaintRepositoryImpl struct {
	db *sqlx.DB
}

type CreateComplaintRequest struct {
	CitizenName string   `json:"citizenName"`
	Email       string   `json:"email"`
	Description string   `json:"description"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category"`
}

func NewComplaintRepository(db *sqlx.DB) *ComplaintRepositoryImpl {
	return &ComplaintRepositoryImpl{db: db}
}

// locationBucket округляет координату до ячейки сетки дедупликации
func locationBucket(coord float64) int64 {
	return int64(math.Round(coord / LocationTolerance))
}

func (r *ComplaintRepositoryImpl) Create(ctx context.Context, complaint *models.Complaint) error {
	query := `
        INSERT INTO complaints
        (complaint_id, citizen_name, email, description, lat, lng, lat_bucket, lng_bucket,
         image_url, status, category, priority, deadline, created_at)
        VALUES
        (:complaint_id, :citizen_name, :email, :description, :lat, :lng, :lat_bucket, :lng_bucket,
         :image_url, :status, :category, :priority, :deadline, :created_at)
    `

	if complaint.ComplaintID == "" {
		complaint.ComplaintID = uuid.New().String()
	}

	if complaint.CreatedAt.IsZero() {
		complaint.CreatedAt = time.Now()
	}

	if complaint.Lat != nil && complaint.Lng != nil {
		latBucket := locationBucket(*complaint.Lat)
		lngBucket := locationBucket(*complaint.Lng)
		complaint.LatBucket = &latBucket
		complaint.LngBucket = &lngBucket
	}

	_, err := r.db.NamedExecContext(ctx, query, complaint)
	if err != nil {
		// Частичный уникальный индекс страхует неатомарную предварительную проверку
		if strings.Contains(err.Error(), "duplicate key value") &&
			strings.Contains(err.Error(), "complaints_pending_location_idx") {
			return ErrDuplicateLocation
		}
		return fmt.Errorf("ошибка при создании жалобы: %w", err)
	}

	return nil
}

func (r *ComplaintRepositoryImpl) GetByID(ctx context.Context, complaintID string) (*models.Complaint, error) {
	query := `SELECT * FROM complaints WHERE complaint_id = $1`

	var complaint models.Complaint
	err := r.db.GetContext(ctx, &complaint, query, complaintID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrComplaintNotFound
		}
		return nil, fmt.Errorf("ошибка при получении жалобы: %w", err)
	}

	return &complaint, nil
}

// GetAll возвращает жалобы в порядке срочности: High, Medium, Low, прочее,
// внутри приоритета — сначала самые свежие
func (r *ComplaintRepositoryImpl) GetAll(ctx context.Context) ([]models.Complaint, error) {
	query := `
        SELECT * FROM complaints
        ORDER BY CASE priority
            WHEN 'High' THEN 1
            WHEN 'Medium' THEN 2
            WHEN 'Low' THEN 3
            ELSE 4
        END, created_at DESC
    `

	var complaints []models.Complaint
	err := r.db.SelectContext(ctx, &complaints, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка жалоб: %w", err)
	}

	return complaints, nil
}

func (r *ComplaintRepositoryImpl) HasPendingNear(ctx context.Context, lat, lng float64) (bool, error) {
	query := `
        SELECT COUNT(*) FROM complaints
        WHERE status = 'Pending'
          AND lat BETWEEN $1 AND $2
          AND lng BETWEEN $3 AND $4
    `

	var count int
	err := r.db.GetContext(ctx, &count, query,
		lat-LocationTolerance, lat+LocationTolerance,
		lng-LocationTolerance, lng+LocationTolerance,
	)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке дубликата по координатам: %w", err)
	}

	return count > 0, nil
}

// UpdateStatus выполняет безусловное обновление статуса; поля резолюции
// заполняются только вместе (изображение + отметка времени)
func (r *ComplaintRepositoryImpl) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*models.Complaint, error) {
	var complaint models.Complaint
	var err error

	if req.ResolvedImageURL != nil && req.ResolvedAt != nil {
		query := `
            UPDATE complaints
            SET status = $1, resolved_image_url = $2, resolved_at = $3
            WHERE complaint_id = $4
            RETURNING *
        `
		err = r.db.GetContext(ctx, &complaint, query,
			req.Status, *req.ResolvedImageURL, *req.ResolvedAt, req.ComplaintID)
	} else {
		query := `
            UPDATE complaints
            SET status = $1
            WHERE complaint_id = $2
            RETURNING *
        `
		err = r.db.GetContext(ctx, &complaint, query, req.Status, req.ComplaintID)
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrComplaintNotFound
		}
		return nil, fmt.Errorf("ошибка при обновлении статуса жалобы: %w", err)
	}

	return &complaint, nil
}
