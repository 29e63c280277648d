package job

import (
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

func (h *Handler) CreateJob(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpx.Error(c, apperr.MissingFields("Invalid request body"))
		return
	}

	p := httpx.Principal(c)
	h.logger.InfoContext(c.Request.Context(), "creating job", "title", in.Title)

	v, err := h.service.Create(c.Request.Context(), in, p)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	h.metrics.RecordJobCreated(c.Request.Context())

	httpx.OK(c, http.StatusCreated, gin.H{"job": v})
}

func (h *Handler) ListJobs(c *gin.Context) {
	q := ListQuery{
		Status:       Status(c.Query("status")),
		ApprovedOnly: c.Query("approvedBySchool") == "true",
		Page:         pagination.Parse(c.Query("page"), c.Query("limit")),
	}

	p := httpx.Principal(c)

	result, err := h.service.List(c.Request.Context(), q, p)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	h.metrics.RecordJobsListViewed(c.Request.Context())

	httpx.OK(c, http.StatusOK, result)
}

func (h *Handler) GetJob(c *gin.Context) {
	p := httpx.Principal(c)

	v, err := h.service.Get(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, gin.H{"job": v})
}

func (h *Handler) UpdateJob(c *gin.Context) {
	var patch UpdateInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		httpx.Error(c, apperr.MissingFields("Invalid request body"))
		return
	}

	p := httpx.Principal(c)
	h.logger.InfoContext(c.Request.Context(), "updating job", "job_id", c.Param("id"))

	v, err := h.service.Update(c.Request.Context(), c.Param("id"), patch, p)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, gin.H{"job": v})
}

func (h *Handler) DeleteJob(c *gin.Context) {
	p := httpx.Principal(c)
	h.logger.InfoContext(c.Request.Context(), "deleting job", "job_id", c.Param("id"))

	message, err := h.service.Delete(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, gin.H{"message": message})
}
