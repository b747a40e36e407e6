package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saludmental/mindtrack/internal/importer"
	"github.com/saludmental/mindtrack/internal/service"
	"github.com/saludmental/mindtrack/pkg/auth"
)

type ImportHandler struct {
	svc            *service.ImportService
	verifier       *auth.Verifier
	maxUploadBytes int64
	log            *zap.Logger
}

func NewImportHandler(svc *service.ImportService, verifier *auth.Verifier, maxUploadBytes int64, log *zap.Logger) *ImportHandler {
	return &ImportHandler{
		svc:            svc,
		verifier:       verifier,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// ImportResultResponse mirrors the run counters. Errors are capped server
// side; TotalErrors carries the uncapped count.
type ImportResultResponse struct {
	Imported         int      `json:"imported"`
	Updated          int      `json:"updated"`
	Skipped          int      `json:"skipped"`
	CasesCreated     int      `json:"cases_created"`
	FollowupsCreated int      `json:"followups_created"`
	Errors           []string `json:"errors"`
	TotalErrors      int      `json:"total_errors"`
}

// Import handles POST /api/v1/imports: a multipart form with a single
// "file" part holding the xlsx workbook.
func (h *ImportHandler) Import(c *gin.Context) {
	operator := operatorFromBearer(c, h.verifier)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "missing or unreadable 'file' upload: "+err.Error())
		return
	}
	defer file.Close()

	meta := service.RequestMeta{
		IPAddress: c.ClientIP(),
		RequestID: c.GetString(requestIDKey),
	}

	h.log.Info("workbook upload received",
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size),
		zap.String("operator_id", operator.String()),
	)

	stats, err := h.svc.ImportWorkbook(c.Request.Context(), file, operator, meta)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toImportResult(stats))
}

func toImportResult(stats *importer.Stats) ImportResultResponse {
	errs := stats.Errors
	if errs == nil {
		errs = []string{}
	}
	return ImportResultResponse{
		Imported:         stats.Imported,
		Updated:          stats.Updated,
		Skipped:          stats.Skipped,
		CasesCreated:     stats.CasesCreated,
		FollowupsCreated: stats.FollowupsCreated,
		Errors:           errs,
		TotalErrors:      stats.TotalErrors,
	}
}
