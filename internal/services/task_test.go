package services

import (
	"testing"
	"time"

	"todo-panel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTaskService(t *testing.T) (*TaskService, *models.User, *models.User) {
	cfg := setupTestDB(t)
	t.Cleanup(func() { cleanupTestDB(t, cfg) })

	auth := NewAuthService(cfg)
	owner, err := auth.CreateUser("owner", "owner@example.com", "Secret123!", models.RoleStandard)
	require.NoError(t, err)
	admin, err := auth.CreateUser("admin", "admin@example.com", "Admin123!", models.RoleAdmin)
	require.NoError(t, err)

	return NewTaskService(cfg), owner, admin
}

func createTask(t *testing.T, svc *TaskService, userID uint) *models.Task {
	task, err := svc.CreateTask(&CreateTaskData{
		Title:   "Write report",
		DueDate: time.Now().Add(48 * time.Hour),
		Status:  models.TaskOpen,
		UserID:  userID,
	})
	require.NoError(t, err)
	return task
}

func TestCreateTask_Validation(t *testing.T) {
	svc, owner, _ := testTaskService(t)
	due := time.Now().Add(24 * time.Hour)

	_, err := svc.CreateTask(&CreateTaskData{Title: "ab", DueDate: due, UserID: owner.ID})
	assert.EqualError(t, err, "title must be at least 3 characters")

	_, err = svc.CreateTask(&CreateTaskData{Title: "abc", DueDate: due, Status: 7, UserID: owner.ID})
	assert.EqualError(t, err, "invalid status")

	_, err = svc.CreateTask(&CreateTaskData{Title: "abc", DueDate: time.Now().Add(-48 * time.Hour), UserID: owner.ID})
	assert.EqualError(t, err, "due date must be today or later")
}

func TestUpdateTask_OwnerOrAdmin(t *testing.T) {
	svc, owner, admin := testTaskService(t)
	task := createTask(t, svc, owner.ID)

	title := "Updated title"
	_, err := svc.UpdateTask(task.ID, admin.ID+owner.ID+1, models.RoleStandard, &UpdateTaskData{Title: &title})
	assert.ErrorIs(t, err, ErrNotPermitted)

	updated, err := svc.UpdateTask(task.ID, owner.ID, models.RoleStandard, &UpdateTaskData{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	status := models.TaskDone
	updated, err = svc.UpdateTask(task.ID, admin.ID, models.RoleAdmin, &UpdateTaskData{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.TaskDone, updated.Status)
}

func TestDeleteTask_OwnerOrAdmin(t *testing.T) {
	svc, owner, admin := testTaskService(t)

	task := createTask(t, svc, owner.ID)
	err := svc.DeleteTask(task.ID, owner.ID+admin.ID+1, models.RoleStandard)
	assert.ErrorIs(t, err, ErrNotPermitted)

	require.NoError(t, svc.DeleteTask(task.ID, owner.ID, models.RoleStandard))
	_, err = svc.GetTask(task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	task = createTask(t, svc, owner.ID)
	require.NoError(t, svc.DeleteTask(task.ID, admin.ID, models.RoleAdmin))
}

func TestDeleteAllTasks(t *testing.T) {
	svc, owner, admin := testTaskService(t)
	createTask(t, svc, owner.ID)
	createTask(t, svc, admin.ID)

	deleted, err := svc.DeleteAllTasks()
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	tasks, err := svc.GetAllTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestGetTasksForUser_ScopedToOwner(t *testing.T) {
	svc, owner, admin := testTaskService(t)
	createTask(t, svc, owner.ID)
	createTask(t, svc, admin.ID)

	tasks, err := svc.GetTasksForUser(owner.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, owner.ID, tasks[0].UserID)

	all, err := svc.GetAllTasks()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
