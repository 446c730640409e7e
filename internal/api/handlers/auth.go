package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"todo-panel/internal/api/middleware"
	"todo-panel/internal/config"
	"todo-panel/internal/metrics"
	"todo-panel/internal/models"
	"todo-panel/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
	sessions    *services.SessionService
	userService *services.UserService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, sessions *services.SessionService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		userService: services.NewUserService(cfg),
		cfg:         cfg,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// Register handles account signup. Conflicts on username or email are
// answered with one generic message so the endpoint can't be used to
// probe which accounts exist.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := h.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			c.JSON(409, gin.H{"error": "There was an error on signup, please try again"})
			return
		}
		slog.Error("registration failed", "error", err)
		c.JSON(500, gin.H{"error": "Something went wrong, please try again"})
		return
	}

	c.JSON(201, user)
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.ResultInvalidInput).Inc()
		c.JSON(400, gin.H{"error": "Invalid request"})
		return
	}

	address := services.ClientAddress(c.Request)
	user, err := h.authService.Authenticate(req.Username, req.Password, address)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			metrics.LoginAttempts.WithLabelValues(metrics.ResultInvalidInput).Inc()
			c.JSON(400, gin.H{"error": "Username and password are required"})
		case errors.Is(err, services.ErrInvalidCredentials):
			metrics.LoginAttempts.WithLabelValues(metrics.ResultInvalidCredentials).Inc()
			c.JSON(401, gin.H{"error": "Invalid username or password"})
		case errors.Is(err, services.ErrLocked):
			metrics.LoginAttempts.WithLabelValues(metrics.ResultLocked).Inc()
			c.JSON(423, gin.H{"error": "Too many failed attempts, please try again later"})
		default:
			metrics.LoginAttempts.WithLabelValues(metrics.ResultError).Inc()
			slog.Error("login failed", "error", err)
			c.JSON(500, gin.H{"error": "Something went wrong, please try again"})
		}
		return
	}

	token, expiresAt, err := h.sessions.Issue(user)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.ResultError).Inc()
		slog.Error("session issuance failed", "error", err)
		c.JSON(500, gin.H{"error": "Failed to create session"})
		return
	}

	h.setSessionCookie(c, token, int(h.sessions.TTL().Seconds()))
	metrics.LoginAttempts.WithLabelValues(metrics.ResultSuccess).Inc()
	logAudit(c, user.ID, "login", "", "")

	user.PasswordHash = ""
	user.PasswordSalt = ""
	c.JSON(200, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// Logout clears the session cookie. Tokens are stateless, so the
// cookie is all there is to destroy.
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims := middleware.CurrentClaims(c); claims != nil {
		logAudit(c, claims.UserID, "logout", "", "")
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(200, gin.H{"message": "Logged out successfully"})
}

// GetMe returns the current user record.
func (h *AuthHandler) GetMe(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		c.JSON(401, gin.H{"error": "Not authenticated"})
		return
	}

	user, err := h.userService.GetUser(claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}
		slog.Error("user lookup failed", "error", err)
		c.JSON(500, gin.H{"error": "Something went wrong, please try again"})
		return
	}

	c.JSON(200, user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	secure := h.cfg.Server.Mode == "release"
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", secure, true)
}
