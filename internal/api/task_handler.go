package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/genops-api/internal/platform/logger"
	"github.com/phrazzld/genops-api/internal/service"
)

// TaskHandler serves the caller's tasks. The owner always comes from the
// verified identity, never from the request body.
type TaskHandler struct {
	tasks service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List handles GET /api/tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	tasks, err := h.tasks.List(r.Context(), identity)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TaskListResponse{Tasks: tasks})
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.tasks.Create(r.Context(), identity, req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContext(r.Context()).Debug("task created via API", slog.Int64("task_id", id))
	RespondWithJSON(w, r, http.StatusCreated, CreateTaskResponse{Status: statusSuccess, TaskID: id})
}

// Update handles PUT /api/tasks/{id}. The response is the same whether or
// not the caller owns a task with that ID.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, taskID, ok := handleIdentityAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.tasks.Update(r.Context(), identity, taskID, req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, StatusResponse{Status: statusSuccess})
}

// Delete handles DELETE /api/tasks/{id}. The response is the same whether
// or not the caller owns a task with that ID.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, taskID, ok := handleIdentityAndPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), identity, taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, StatusResponse{Status: statusSuccess})
}
