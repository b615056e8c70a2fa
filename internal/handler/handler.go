package handlers

import (
	"encoding/json"
	"net/http"

	"cleanquest/internal/config"
	"cleanquest/internal/repository"
	"cleanquest/internal/service"

	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	ComplaintService service.ComplaintService
	ComplaintRepo    repository.ComplaintRepository
	AuthService      service.AuthService
	StatsService     service.StatsService
	Cfg              *config.Config
	Validate         *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		ComplaintService: service.Complaint,
		ComplaintRepo:    repo.Complaint,
		AuthService:      service.Auth,
		StatsService:     service.Stats,
		Cfg:              config,
		Validate:         validator.New(),
	}
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"service": "cleanquest", "status": "ok"})
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}
