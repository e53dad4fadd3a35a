package api

import (
	"time"

	"github.com/phrazzld/genops-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Status   string `json:"status"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`

	// ExpiresAt is the RFC 3339 instant the token stops being accepted.
	ExpiresAt string `json:"expires_at"`
}

// TaskRequest is the body of task create and update requests. Fields that
// are absent or null are stored as NULL.
type TaskRequest = domain.TaskFields

// TaskListResponse wraps the caller's tasks.
type TaskListResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// CreateTaskResponse reports the ID of a newly created task.
type CreateTaskResponse struct {
	Status string `json:"status"`
	TaskID int64  `json:"task_id"`
}

// StatusResponse is the body of successful mutations that return no data.
type StatusResponse struct {
	Status string `json:"status"`
}

const statusSuccess = "success"

func formatExpiry(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
