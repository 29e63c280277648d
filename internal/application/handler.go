package application

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"jobboard-service/internal/apperr"
	"jobboard-service/internal/httpx"
	"jobboard-service/internal/metrics"
	"jobboard-service/internal/pagination"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{service: service, logger: logger, metrics: metrics}
}

func (h *Handler) ApplyForJob(c *gin.Context) {
	// Cover letter and resume are optional, an empty body is fine.
	var in ApplyInput
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		httpx.Error(c, apperr.MissingFields("Invalid request body"))
		return
	}

	p := httpx.Principal(c)
	h.logger.InfoContext(c.Request.Context(), "submitting application", "job_id", c.Param("id"))

	receipt, err := h.service.Apply(c.Request.Context(), c.Param("id"), in, p)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	h.metrics.RecordApplicationSubmitted(c.Request.Context())

	httpx.OK(c, http.StatusCreated, gin.H{"application": receipt})
}

func (h *Handler) GetStudentApplications(c *gin.Context) {
	p := httpx.Principal(c)
	page := pagination.Parse(c.Query("page"), c.Query("limit"))

	result, err := h.service.StudentApplications(c.Request.Context(), page, p)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, result)
}

func (h *Handler) GetJobApplications(c *gin.Context) {
	p := httpx.Principal(c)
	page := pagination.Parse(c.Query("page"), c.Query("limit"))

	result, err := h.service.JobApplications(c.Request.Context(), c.Param("id"), page, p)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, result)
}

func (h *Handler) GetJobApplicants(c *gin.Context) {
	p := httpx.Principal(c)
	page := pagination.Parse(c.Query("page"), c.Query("limit"))

	result, err := h.service.AccessibleApplications(c.Request.Context(), c.Param("id"), page, p)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, result)
}
