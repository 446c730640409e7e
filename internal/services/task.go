package services

import (
	"errors"
	"time"

	"todo-panel/internal/config"
	"todo-panel/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrNotPermitted = errors.New("not permitted")

	errTitleTooShort = errors.New("title must be at least 3 characters")
	errInvalidStatus = errors.New("invalid status")
	errDueDatePast   = errors.New("due date must be today or later")
)

type TaskService struct {
	cfg *config.Config
}

func NewTaskService(cfg *config.Config) *TaskService {
	return &TaskService{cfg: cfg}
}

type CreateTaskData struct {
	Title       string
	Description string
	DueDate     time.Time
	Status      models.TaskStatus
	UserID      uint
}

type UpdateTaskData struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *models.TaskStatus
}

// GetTasksForUser returns the tasks owned by a user.
func (s *TaskService) GetTasksForUser(userID uint) ([]models.Task, error) {
	var tasks []models.Task
	if err := models.DB.Where("user_id = ?", userID).Order("due_date").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetAllTasks returns every task in the system (admin view).
func (s *TaskService) GetAllTasks() ([]models.Task, error) {
	var tasks []models.Task
	if err := models.DB.Order("due_date").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns a task by ID.
func (s *TaskService) GetTask(id uint) (*models.Task, error) {
	var task models.Task
	if err := models.DB.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// CreateTask validates and persists a new task.
func (s *TaskService) CreateTask(data *CreateTaskData) (*models.Task, error) {
	if len(data.Title) < 3 {
		return nil, errTitleTooShort
	}
	if !data.Status.Valid() {
		return nil, errInvalidStatus
	}
	if data.DueDate.Before(startOfToday()) {
		return nil, errDueDatePast
	}

	task := &models.Task{
		Title:       data.Title,
		Description: data.Description,
		DueDate:     data.DueDate,
		Status:      data.Status,
		UserID:      data.UserID,
	}

	if err := models.DB.Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask applies a partial update. Only the owner or an admin may
// touch a task.
func (s *TaskService) UpdateTask(id, actorID uint, actorRole models.Role, data *UpdateTaskData) (*models.Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}
	if task.UserID != actorID && !actorRole.IsAdmin() {
		return nil, ErrNotPermitted
	}

	if data.Title != nil {
		if len(*data.Title) < 3 {
			return nil, errTitleTooShort
		}
		task.Title = *data.Title
	}
	if data.Description != nil {
		task.Description = *data.Description
	}
	if data.DueDate != nil {
		if data.DueDate.Before(startOfToday()) {
			return nil, errDueDatePast
		}
		task.DueDate = *data.DueDate
	}
	if data.Status != nil {
		if !data.Status.Valid() {
			return nil, errInvalidStatus
		}
		task.Status = *data.Status
	}

	if err := models.DB.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task. Only the owner or an admin may delete it.
func (s *TaskService) DeleteTask(id, actorID uint, actorRole models.Role) error {
	task, err := s.GetTask(id)
	if err != nil {
		return err
	}
	if task.UserID != actorID && !actorRole.IsAdmin() {
		return ErrNotPermitted
	}
	return models.DB.Delete(task).Error
}

// DeleteAllTasks wipes every task (admin only, guarded at the route).
func (s *TaskService) DeleteAllTasks() (int64, error) {
	res := models.DB.Where("1 = 1").Delete(&models.Task{})
	return res.RowsAffected, res.Error
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
