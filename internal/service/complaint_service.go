package service

import (
	"context"
	"encoding/base64"
	"log"
	"strings"
	"time"

	"cleanquest/internal/classifier"
	"cleanquest/internal/models"
	"cleanquest/internal/repository"
	"cleanquest/internal/storage"

	"github.com/google/uuid"
)

type ComplaintService interface {
	Submit(ctx context.Context, req repository.CreateComplaintRequest) (*models.Complaint, error)
	ListComplaints(ctx context.Context) ([]models.Complaint, error)
	UpdateStatus(ctx context.Context, complaintID, status, resolvedImageURL string) (*models.Complaint, error)
}

type complaintService struct {
	complaintRepo repository.ComplaintRepository
	storage       storage.Storage
	classifier    classifier.Classifier
}

func NewComplaintService(complaintRepo repository.ComplaintRepository, storage storage.Storage, ai classifier.Classifier) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		storage:       storage,
		classifier:    ai,
	}
}

func (s *complaintService) Submit(ctx context.Context, req repository.CreateComplaintRequest) (*models.Complaint, error) {
	name := strings.TrimSpace(req.CitizenName)
	if name == "" {
		name = "Anonymous"
	}

	// Дубликат по координатам проверяется только при наличии локации
	if req.Lat != nil && req.Lng != nil {
		exists, err := s.complaintRepo.HasPendingNear(ctx, *req.Lat, *req.Lng)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, repository.ErrDuplicateLocation
		}
	}

	now := time.Now()

	category := req.Category
	if category == "" {
		category = "Uncategorized"
	}

	complaint := &models.Complaint{
		ComplaintID: uuid.New().String(),
		CitizenName: name,
		Description: req.Description,
		Lat:         req.Lat,
		Lng:         req.Lng,
		ImageURL:    req.ImageURL,
		Status:      models.StatusPending,
		Category:    category,
		Priority:    models.PriorityLow,
		Deadline:    now.Add(classifier.DefaultHours * time.Hour),
		CreatedAt:   now,
	}

	if req.Email != "" {
		email := req.Email
		complaint.Email = &email
	}

	imageData, contentType, isRaw := decodeImagePayload(req.ImageURL)

	// Отказ ИИ никогда не срывает приём жалобы: деградируем до значений
	// по умолчанию и пишем в лог
	if s.classifier != nil && isRaw {
		res, err := s.classifier.Classify(ctx, imageData, req.Category)
		if err != nil {
			log.Printf("Классификация не удалась, применяем значения по умолчанию: %v", err)
		} else {
			complaint.Category = res.Category
			complaint.Priority = res.Severity
			complaint.Deadline = now.Add(time.Duration(res.Hours) * time.Hour)
		}
	}

	// base64-фото выгружается в объектное хранилище, в БД остаётся только URL
	if s.storage != nil && isRaw {
		_, imageURL, err := s.storage.UploadImage(ctx, complaint.ComplaintID, "before", imageData, contentType)
		if err != nil {
			log.Printf("Не удалось выгрузить фото в MinIO, сохраняем как есть: %v", err)
		} else {
			complaint.ImageURL = imageURL
		}
	}

	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, err
	}

	return complaint, nil
}

func (s *complaintService) ListComplaints(ctx context.Context) ([]models.Complaint, error) {
	return s.complaintRepo.GetAll(ctx)
}

// UpdateStatus ставит любой статус без проверки переходов; поля резолюции
// заполняются только при переходе в Resolved с приложенным фото
func (s *complaintService) UpdateStatus(ctx context.Context, complaintID, status, resolvedImageURL string) (*models.Complaint, error) {
	req := repository.UpdateStatusRequest{
		ComplaintID: complaintID,
		Status:      status,
	}

	if status == models.StatusResolved && resolvedImageURL != "" {
		imageURL := resolvedImageURL

		if data, contentType, isRaw := decodeImagePayload(resolvedImageURL); isRaw && s.storage != nil {
			if _, uploadedURL, err := s.storage.UploadImage(ctx, complaintID, "after", data, contentType); err != nil {
				log.Printf("Не удалось выгрузить фото резолюции в MinIO, сохраняем как есть: %v", err)
			} else {
				imageURL = uploadedURL
			}
		}

		now := time.Now()
		req.ResolvedImageURL = &imageURL
		req.ResolvedAt = &now
	}

	return s.complaintRepo.UpdateStatus(ctx, req)
}

// decodeImagePayload распознаёт вложенное изображение: data URL или голый
// base64. Обычные ссылки (http/https) не декодируются и хранятся как есть
func decodeImagePayload(payload string) ([]byte, string, bool) {
	if payload == "" ||
		strings.HasPrefix(payload, "http://") ||
		strings.HasPrefix(payload, "https://") {
		return nil, "", false
	}

	contentType := "image/jpeg"
	data := payload

	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, "", false
		}

		header := payload[len("data:"):idx]
		if semi := strings.Index(header, ";"); semi > 0 {
			contentType = header[:semi]
		}

		data = payload[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, "", false
	}

	return raw, contentType, true
}
