package school

import (
	"log/slog"
	"net/http"

	"jobboard-service/internal/httpx"

	"github.com/gin-gonic/gin"
)

// Handler serves the public school directory used by student signup.
type Handler struct {
	repo   Repository
	logger *slog.Logger
}

func NewHandler(repo Repository, logger *slog.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/schools", h.ListSchools)
	router.GET("/schools/:id", h.GetSchool)
}

func (h *Handler) ListSchools(c *gin.Context) {
	schools, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list schools", "error", err)
		httpx.Error(c, err)
		return
	}

	refs := make([]Ref, 0, len(schools))
	for i := range schools {
		refs = append(refs, schools[i].Ref())
	}

	httpx.OK(c, http.StatusOK, gin.H{
		"success": true,
		"count":   len(refs),
		"data":    refs,
	})
}

func (h *Handler) GetSchool(c *gin.Context) {
	s, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, gin.H{
		"success": true,
		"data":    s.Ref(),
	})
}
