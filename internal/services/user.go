package services

import (
	"errors"

	"todo-panel/internal/config"
	"todo-panel/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	authService *AuthService
}

func NewUserService(cfg *config.Config) *UserService {
	return &UserService{
		authService: NewAuthService(cfg),
	}
}

// GetUsers returns all users with credential material stripped.
func (s *UserService) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := models.DB.Find(&users).Error; err != nil {
		return nil, err
	}

	for i := range users {
		users[i].PasswordHash = ""
		users[i].PasswordSalt = ""
	}

	return users, nil
}

// GetUser returns a specific user by ID.
func (s *UserService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.PasswordHash = ""
	user.PasswordSalt = ""
	return &user, nil
}

// UpdatePassword rehashes and stores a new password for the user.
func (s *UserService) UpdatePassword(id uint, newPassword string) error {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	digest, salt, err := s.authService.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = digest
	user.PasswordSalt = salt
	return models.DB.Save(&user).Error
}

// DeleteUser deletes a user along with their tasks.
func (s *UserService) DeleteUser(id uint) error {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// Don't allow deleting the last admin user
	var adminCount int64
	models.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if user.Role.IsAdmin() && adminCount <= 1 {
		return errors.New("cannot delete the last admin user")
	}

	if err := models.DB.Where("user_id = ?", id).Delete(&models.Task{}).Error; err != nil {
		return err
	}
	return models.DB.Delete(&user).Error
}
