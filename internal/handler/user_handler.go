package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "marketcatalyst/internal/errors"
	"marketcatalyst/internal/model"
	"marketcatalyst/internal/service"
)

// UserHandler exposes the account endpoints.
type UserHandler struct {
	svc service.PlatformService

	// seedUsers backs GET /users. Injected at construction and read-only;
	// it never answers real account queries.
	seedUsers []model.User
}

// NewUserHandler creates the handler layer.
func NewUserHandler(svc service.PlatformService, seedUsers []model.User) *UserHandler {
	return &UserHandler{svc: svc, seedUsers: seedUsers}
}

// RegisterRequest is the payload for POST /users.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	ConfirmP string `json:"confirmP" validate:"required,eqfield=Password"`
}

// AuthRequest is the payload for POST /users/auth.
type AuthRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserDTO is the public-safe projection of a user. The password digest is
// never part of it.
type UserDTO struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Token    *string `json:"token"`
}

// AuthCheckResponse is the marker returned by the role probe endpoints.
type AuthCheckResponse struct {
	IsAuthorized bool `json:"isAuthorized"`
}

func toUserDTO(u *model.User) UserDTO {
	dto := UserDTO{ID: u.ID, Username: u.Username}
	if u.Token != "" {
		dto.Token = &u.Token
	}
	return dto
}

const msgAuthUnauthorized = "Unable to authenticate credentials."

// ListUsers godoc
// @Summary List placeholder users
// @Tags users
// @Produce json
// @Success 200 {array} handler.UserDTO
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	dtos := make([]UserDTO, 0, len(h.seedUsers))
	for i := range h.seedUsers {
		dtos = append(dtos, toUserDTO(&h.seedUsers[i]))
	}
	return c.JSON(http.StatusOK, dtos)
}

// CreateUser godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body handler.RegisterRequest true "Registration payload"
// @Success 201 {object} handler.UserDTO
// @Failure 400 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: registerValidationMessage(err)})
	}

	result := h.svc.Register(c.Request().Context(), req.Username, req.Password)
	if !result.Success {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: result.ErrorMessage})
	}
	return c.JSON(http.StatusCreated, toUserDTO(result.User))
}

// AuthUser godoc
// @Summary Authenticate a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body handler.AuthRequest true "Credentials"
// @Success 200 {object} handler.UserDTO
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/auth [post]
func (h *UserHandler) AuthUser(c echo.Context) error {
	var req AuthRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{Error: msgAuthUnauthorized})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{Error: msgAuthUnauthorized})
	}

	result, err := h.svc.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		// Token persistence failure; let the framework answer 500.
		return err
	}
	if !result.Success || result.User == nil {
		// The service message is deliberately discarded here so the response
		// never reveals which part of the credentials was wrong.
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{Error: msgAuthUnauthorized})
	}
	return c.JSON(http.StatusOK, toUserDTO(result.User))
}

// CheckAdmin godoc
// @Summary Probe Admin role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handler.AuthCheckResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/auth/check/admin [get]
func (h *UserHandler) CheckAdmin(c echo.Context) error {
	return c.JSON(http.StatusOK, AuthCheckResponse{IsAuthorized: true})
}

// CheckDataConsumer godoc
// @Summary Probe DataConsumer role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handler.AuthCheckResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/auth/check/dataconsumer [get]
func (h *UserHandler) CheckDataConsumer(c echo.Context) error {
	return c.JSON(http.StatusOK, AuthCheckResponse{IsAuthorized: true})
}

// registerValidationMessage maps validator failures to the messages clients
// depend on. Field order in RegisterRequest sets precedence: username first,
// then password presence, then the confirmation match.
func registerValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch {
		case fe.Field() == "Username":
			return "Username not present."
		case fe.Tag() == "eqfield":
			return "Password confirmation does not match."
		default:
			return "Password not present."
		}
	}
	return "invalid request"
}
