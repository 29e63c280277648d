package user

import (
	"log/slog"
	"net/http"

	"jobboard-service/internal/apperr"
	"jobboard-service/internal/httpx"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) CreateUser(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpx.Error(c, apperr.MissingFields("Invalid request body"))
		return
	}

	admin := httpx.Principal(c)
	h.logger.InfoContext(c.Request.Context(), "creating user", "email", in.Email, "role", in.Role)

	ref, err := h.service.CreateUser(c.Request.Context(), in, admin)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusCreated, gin.H{"user": ref})
}

func (h *Handler) GetUsers(c *gin.Context) {
	admin := httpx.Principal(c)

	users, err := h.service.GetUsers(c.Request.Context(), admin)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, gin.H{"users": users})
}
