package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"cleanquest/internal/repository"

	"github.com/gorilla/mux"
)

type LocationRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

type CreateComplaintRequest struct {
	CitizenName string           `json:"citizenName"`
	Email       string           `json:"email" validate:"omitempty,email"`
	Description string           `json:"description"`
	Location    *LocationRequest `json:"location" validate:"-"`
	ImageURL    string           `json:"imageUrl"`
	Category    string           `json:"category"`
}

type UpdateComplaintRequest struct {
	Status           string `json:"status"`
	ResolvedImageURL string `json:"resolvedImageUrl"`
}

func (h *Handlers) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var req CreateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	if req.Location != nil {
		if err := h.Validate.Struct(req.Location); err != nil {
			WriteError(w, "Недопустимые координаты", http.StatusBadRequest)
			return
		}
	}

	// creating a form to submit complaint
	serviceReq := repository.CreateComplaintRequest{
		CitizenName: req.CitizenName,
		Email:       req.Email,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	}

	if req.Location != nil {
		lat := req.Location.Lat
		lng := req.Location.Lng
		serviceReq.Lat = &lat
		serviceReq.Lng = &lng
	}

	complaint, err := h.ComplaintService.Submit(r.Context(), serviceReq)
	if err != nil {
		// Конфликт по координатам отличим от прочих ошибок
		if errors.Is(err, repository.ErrDuplicateLocation) {
			WriteError(w, "Жалоба в этой точке уже зарегистрирована и ожидает обработки", http.StatusBadRequest)
			return
		}
		WriteError(w, "Не удалось сохранить жалобу", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, complaint, http.StatusCreated)
}

func (h *Handlers) GetComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.ComplaintService.ListComplaints(r.Context())
	if err != nil {
		WriteError(w, "Не удалось получить список жалоб", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, complaints, http.StatusOK)
}

func (h *Handlers) GetComplaint(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["id"]

	// we receive a complaint by id
	complaint, err := h.ComplaintRepo.GetByID(r.Context(), complaintID)
	if err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			WriteError(w, "Жалоба не найдена", http.StatusNotFound)
			return
		}
		WriteError(w, "Не удалось получить жалобу", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, complaint, http.StatusOK)
}

func (h *Handlers) UpdateComplaint(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["id"]

	var req UpdateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// status verification
	statusSlice := []string{"Pending", "In Progress", "Resolved", "Rejected"}
	if !slices.Contains(statusSlice, req.Status) {
		WriteError(w, "Статус должен быть Pending, In Progress, Resolved или Rejected", http.StatusBadRequest)
		return
	}

	complaint, err := h.ComplaintService.UpdateStatus(r.Context(), complaintID, req.Status, req.ResolvedImageURL)
	if err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			WriteError(w, "Жалоба не найдена", http.StatusNotFound)
			return
		}
		WriteError(w, "Не удалось обновить статус жалобы", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, complaint, http.StatusOK)
}
