package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/georally/georally-server/internal/auth"
)

// APIHandlers provides HTTP handlers for the credential issuance endpoints.
type APIHandlers struct {
	authService *auth.Service
	log         *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(authService *auth.Service, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		authService: authService,
		log:         logger,
	}
}

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// AuthResponse represents the authentication response body.
type AuthResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Register handles user registration.
// POST /api/users/register
func (h *APIHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid register request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing fields"})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Username or email already exists"})
		case errors.Is(err, auth.ErrMissingFields):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing fields"})
		case errors.Is(err, auth.ErrInvalidUsername), errors.Is(err, auth.ErrInvalidPassword):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			h.log.Error().Err(err).Str("username", req.Username).Msg("failed to register user")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
		}
		return
	}

	h.log.Info().Str("username", user.Username).Msg("user registered")
	c.JSON(http.StatusCreated, AuthResponse{Username: user.Username, Token: token})
}

// Login handles user login by username or email.
// POST /api/users/login
func (h *APIHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid login request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing fields"})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing fields"})
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		default:
			h.log.Error().Err(err).Msg("failed to login user")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
		}
		return
	}

	h.log.Info().Str("username", user.Username).Msg("user logged in")
	c.JSON(http.StatusOK, AuthResponse{Username: user.Username, Token: token})
}
