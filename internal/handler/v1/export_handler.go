package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saludmental/mindtrack/internal/service"
	"github.com/saludmental/mindtrack/pkg/auth"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	svc      *service.ExportService
	verifier *auth.Verifier
}

func NewExportHandler(svc *service.ExportService, verifier *auth.Verifier) *ExportHandler {
	return &ExportHandler{svc: svc, verifier: verifier}
}

// ExportPatients handles GET /api/v1/exports/patients and streams the
// workbook back as an attachment.
func (h *ExportHandler) ExportPatients(c *gin.Context) {
	operator := operatorFromBearer(c, h.verifier)

	meta := service.RequestMeta{
		IPAddress: c.ClientIP(),
		RequestID: c.GetString(requestIDKey),
	}

	data, err := h.svc.ExportPatients(c.Request.Context(), operator, meta)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("pacientes_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
