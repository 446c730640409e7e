package services

import (
	"errors"
	"log/slog"

	"todo-panel/internal/config"
	"todo-panel/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInvalidInput       = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLocked             = errors.New("account temporarily locked")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService orchestrates credential lookup, lockout checks, password
// verification and attempt tracking. It is the only writer of
// LoginAttempt state, always through the tracker.
type AuthService struct {
	cfg     *config.Config
	hasher  *PasswordHasher
	tracker *LockoutTracker
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		cfg:     cfg,
		hasher:  NewPasswordHasher(cfg),
		tracker: NewLockoutTracker(cfg),
	}
}

// NewAuthServiceWith wires an auth service with explicit collaborators.
func NewAuthServiceWith(cfg *config.Config, hasher *PasswordHasher, tracker *LockoutTracker) *AuthService {
	return &AuthService{cfg: cfg, hasher: hasher, tracker: tracker}
}

// Authenticate verifies credentials for a login attempt from the given
// address. An unknown username is tracked and rejected exactly like a
// wrong password so callers cannot probe for accounts. A lockout is the
// one distinctly surfaced rejection. Credential store failures
// propagate: an unreachable store rejects, it never silently admits.
func (s *AuthService) Authenticate(username, password, address string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	var user models.User
	err := models.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if terr := s.tracker.RecordFailure(username, address); terr != nil {
			return nil, terr
		}
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	locked, err := s.tracker.IsLocked(username, address)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, ErrLocked
	}

	if !s.hasher.Verify(password, user.PasswordSalt, user.PasswordHash) {
		if terr := s.tracker.RecordFailure(username, address); terr != nil {
			return nil, terr
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.tracker.RecordSuccess(username, address); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a standard-role account.
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	return s.CreateUser(username, email, password, models.RoleStandard)
}

// CreateUser creates a new user with the given role. Username and email
// conflicts both come back as ErrUserExists; the distinction is not
// surfaced to callers.
func (s *AuthService) CreateUser(username, email, password string, role models.Role) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	var existing models.User
	if err := models.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	}
	if err := models.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	}

	digest, salt, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		PasswordSalt: salt,
		Role:         role,
	}

	if err := models.DB.Create(user).Error; err != nil {
		return nil, err
	}

	slog.Info("user created", "user_id", user.ID, "username", user.Username, "role", user.Role.String())
	return user, nil
}
