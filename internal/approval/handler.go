package approval

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

func (h *Handler) ApproveJob(c *gin.Context) {
	// An empty body is a plain approval, so EOF is not an error here.
	var in ApproveInput
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		httpx.Error(c, apperr.MissingFields("Invalid request body"))
		return
	}

	p := httpx.Principal(c)
	h.logger.InfoContext(c.Request.Context(), "recording job approval",
		"job_id", c.Param("id"), "status", in.Status)

	message, err := h.service.Approve(c.Request.Context(), c.Param("id"), in, p)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	h.metrics.RecordApprovalRecorded(c.Request.Context())

	httpx.OK(c, http.StatusOK, gin.H{"message": message})
}

func (h *Handler) GetJobApprovals(c *gin.Context) {
	p := httpx.Principal(c)
	page := pagination.Parse(c.Query("page"), c.Query("limit"))

	result, err := h.service.GetJobApprovals(c.Request.Context(), c.Param("id"), page, p)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, result)
}

func (h *Handler) GetSchoolApprovedJobs(c *gin.Context) {
	p := httpx.Principal(c)
	page := pagination.Parse(c.Query("page"), c.Query("limit"))

	result, err := h.service.GetSchoolApprovedJobs(c.Request.Context(), page, p)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, result)
}
