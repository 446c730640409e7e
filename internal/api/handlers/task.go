package handlers

import (
	"errors"
	"strconv"
	"time"

	"todo-panel/internal/api/middleware"
	"todo-panel/internal/config"
	"todo-panel/internal/models"
	"todo-panel/internal/services"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(cfg *config.Config) *TaskHandler {
	return &TaskHandler{
		taskService: services.NewTaskService(cfg),
	}
}

type CreateTaskRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	DueDate     string            `json:"duedate" binding:"required"`
	Status      models.TaskStatus `json:"status"`
	UserID      uint              `json:"user_id"`
}

type UpdateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	DueDate     *string            `json:"duedate"`
	Status      *models.TaskStatus `json:"status"`
}

// GetTasks returns the caller's own tasks.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	tasks, err := h.taskService.GetTasksForUser(claims.UserID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Error fetching tasks"})
		return
	}

	c.JSON(200, gin.H{"tasks": tasks})
}

// CreateTask creates a task owned by the caller.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	claims := middleware.CurrentClaims(c)

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(&services.CreateTaskData{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Status:      req.Status,
		UserID:      claims.UserID,
	})
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, task)
}

// UpdateTask applies a partial update to a task the caller owns (or any
// task, for admins).
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	claims := middleware.CurrentClaims(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid task ID"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	data := &services.UpdateTaskData{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		data.DueDate = &dueDate
	}

	task, err := h.taskService.UpdateTask(uint(id), claims.UserID, claims.Role, data)
	if err != nil {
		h.renderTaskError(c, err)
		return
	}

	c.JSON(200, task)
}

// DeleteTask deletes a task the caller owns (or any task, for admins).
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	claims := middleware.CurrentClaims(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid task ID"})
		return
	}

	if err := h.taskService.DeleteTask(uint(id), claims.UserID, claims.Role); err != nil {
		h.renderTaskError(c, err)
		return
	}

	c.JSON(200, gin.H{"message": "Task deleted successfully"})
}

// GetAllTasks returns every task in the system (admin only).
func (h *TaskHandler) GetAllTasks(c *gin.Context) {
	tasks, err := h.taskService.GetAllTasks()
	if err != nil {
		c.JSON(500, gin.H{"error": "Error fetching all tasks"})
		return
	}

	c.JSON(200, gin.H{"tasks": tasks})
}

// AdminCreateTask creates a task on behalf of any user (admin only).
func (h *TaskHandler) AdminCreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if req.UserID == 0 {
		c.JSON(400, gin.H{"error": "user_id is required"})
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(&services.CreateTaskData{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Status:      req.Status,
		UserID:      req.UserID,
	})
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, task)
}

// DeleteAllTasks wipes every task (admin only).
func (h *TaskHandler) DeleteAllTasks(c *gin.Context) {
	deleted, err := h.taskService.DeleteAllTasks()
	if err != nil {
		c.JSON(500, gin.H{"error": "Error deleting tasks"})
		return
	}

	if claims := middleware.CurrentClaims(c); claims != nil {
		logAudit(c, claims.UserID, "deleteall", "task", "")
	}
	c.JSON(200, gin.H{"message": "All tasks deleted", "deleted": deleted})
}

func (h *TaskHandler) renderTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		c.JSON(404, gin.H{"error": "Task not found"})
	case errors.Is(err, services.ErrNotPermitted):
		c.JSON(403, gin.H{"error": "You do not have permission to modify this task"})
	default:
		c.JSON(400, gin.H{"error": err.Error()})
	}
}

// parseDueDate accepts RFC 3339 timestamps and bare dates.
func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("duedate must be RFC 3339 or YYYY-MM-DD")
}
