package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/saludmental/mindtrack/internal/service"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Get handles GET /api/v1/stats: live record counts per table and
// follow-up counts per status.
func (h *StatsHandler) Get(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, snap)
}
