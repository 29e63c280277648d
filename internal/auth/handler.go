package auth

import (
	"log/slog"
	"net/http"

	"jobboard-service/internal/apperr"
	"jobboard-service/internal/httpx"
	"jobboard-service/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
	}
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.MissingFields("Invalid request body"))
		return
	}

	if req.User != nil && req.User.Email != "" {
		if err := h.validate.Var(req.User.Email, "email"); err != nil {
			httpx.Error(c, apperr.Validation("Validation error", map[string]string{"email": "Invalid email format"}))
			return
		}
	}

	h.logger.InfoContext(c.Request.Context(), "signup requested", "type", req.Type)

	resp, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	h.metrics.RecordSignup(c.Request.Context())

	httpx.OK(c, http.StatusCreated, resp)
}

func (h *Handler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.MissingCredentials("Please provide email and password"))
		return
	}

	resp, err := h.service.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "user signed in", "email", req.Email)

	httpx.OK(c, http.StatusOK, resp)
}

func (h *Handler) Me(c *gin.Context) {
	p := httpx.Principal(c)

	data, err := h.service.Me(c.Request.Context(), p)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, data)
}
