package models

import (
	"time"
)

// Статусы жизненного цикла жалобы
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusRejected   = "Rejected"
)

// Приоритеты (совпадают с severity классификатора)
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

type Complaint struct {
	ComplaintID      string     `json:"complaintId" db:"complaint_id"`
	CitizenName      string     `json:"citizenName" db:"citizen_name"`
	Email            *string    `json:"email,omitempty" db:"email"`
	Description      string     `json:"description" db:"description"`
	Lat              *float64   `json:"lat,omitempty" db:"lat"`
	Lng              *float64   `json:"lng,omitempty" db:"lng"`
	LatBucket        *int64     `json:"-" db:"lat_bucket"`
	LngBucket        *int64     `json:"-" db:"lng_bucket"`
	ImageURL         string     `json:"imageUrl" db:"image_url"`
	Status           string     `json:"status" db:"status"`
	Category         string     `json:"category" db:"category"`
	Priority         string     `json:"priority" db:"priority"`
	Deadline         time.Time  `json:"deadline" db:"deadline"`
	ResolvedImageURL *string    `json:"resolvedImageUrl,omitempty" db:"resolved_image_url"`
	ResolvedAt       *time.Time `json:"resolvedAt,omitempty" db:"resolved_at"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
}

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// LeaderboardEntry — строка таблицы лидеров; поле _id сохранено ради
// совместимости с клиентом (исторически так отдавала агрегация Mongo)
type LeaderboardEntry struct {
	CitizenName     string `json:"_id" db:"citizen_name"`
	TotalReports    int    `json:"totalReports" db:"total_reports"`
	ResolvedReports int    `json:"resolvedReports" db:"resolved_reports"`
	Score           int    `json:"score" db:"score"`
}

type StatsSummary struct {
	TotalReports    int `json:"totalReports"`
	ResolvedReports int `json:"resolvedReports"`
	TotalUsers      int `json:"totalUsers"`
}
