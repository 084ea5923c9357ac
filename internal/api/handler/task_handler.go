package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/loomra/crm-api/internal/core/domain"
	"github.com/loomra/crm-api/internal/core/ports"
)

// TaskHandler handles task listing and creation. Tasks have no update or
// delete endpoints.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	ClientID    *int64 `json:"clientId"`
}

type clientRef struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

type taskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Client      clientRef  `json:"client"`
}

func newTaskResponse(task domain.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		Client:      clientRef{ID: task.ClientID, Name: task.ClientName},
	}
}

func newTaskResponses(tasks []domain.Task) []taskResponse {
	resp := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, newTaskResponse(task))
	}
	return resp
}

// parseDate accepts both full timestamps and bare dates as submitted by the
// browser client.
func parseDate(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// List returns the caller's tasks joined with their client name, ordered by
// due date.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   taskResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error fetching tasks."})
	}

	return c.JSON(http.StatusOK, newTaskResponses(tasks))
}

// ListForClient returns the caller's tasks referencing one client.
//
// @Summary      List a client's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Client id"
// @Success      200  {array}   taskResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/clients/{id}/tasks [get]
func (h *TaskHandler) ListForClient(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Client not found."})
	}

	tasks, err := h.service.ListForClient(c.Request().Context(), userID, clientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error fetching client tasks."})
	}

	return c.JSON(http.StatusOK, newTaskResponses(tasks))
}

// Create inserts a task. No validation beyond what the schema enforces.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request payload."})
	}

	dueDate, ok := parseDate(req.DueDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request payload."})
	}

	task, err := h.service.Create(c.Request().Context(), userID, ports.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     dueDate,
		ClientID:    req.ClientID,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error creating task."})
	}

	return c.JSON(http.StatusCreated, newTaskResponse(*task))
}
