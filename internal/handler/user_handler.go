package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/eaglebank/registration/internal/query"
	"github.com/eaglebank/registration/internal/repository"
	"github.com/eaglebank/registration/shared/cqrs"
	"github.com/eaglebank/registration/shared/middleware"
	"github.com/eaglebank/registration/shared/models"
	"github.com/gin-gonic/gin"
)

// UserRegistrar defines the write-side operation used by UserHandler.
type UserRegistrar interface {
	RegisterUser(context.Context, cqrs.RegisterUserCommand) (*models.User, error)
}

// UserQuerier defines the read-side operation used by UserHandler.
type UserQuerier interface {
	GetUser(context.Context, cqrs.GetUserQuery) (*models.UserView, error)
}

// UserHandler routes requests to the command or query service as appropriate.
type UserHandler struct {
	commands UserRegistrar
	queries  UserQuerier
}

type RegisterUserRequest struct {
	Username   string `json:"username" validate:"required,alphanum,max=64"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required,max=16"`
}

func NewUserHandler(commands UserRegistrar, queries UserQuerier) *UserHandler {
	return &UserHandler{commands: commands, queries: queries}
}

// Register mounts the user routes on r.
func (h *UserHandler) Register(r gin.IRouter) {
	v1 := r.Group("/v1/users")
	v1.POST("", h.CreateUser)
	v1.GET("/:username", h.GetUser)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.commands.RegisterUser(c.Request.Context(), cqrs.RegisterUserCommand{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			middleware.RespondWithError(c, http.StatusConflict, "Username already exists")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, models.NewUserView(user))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	view, err := h.queries.GetUser(c.Request.Context(), cqrs.GetUserQuery{
		Username: c.Param("username"),
	})
	if err != nil {
		if errors.Is(err, query.ErrUserNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, view)
}
