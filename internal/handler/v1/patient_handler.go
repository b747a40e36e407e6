package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/saludmental/mindtrack/internal/domain/patient"
	"github.com/saludmental/mindtrack/internal/service"
)

type PatientHandler struct {
	svc *service.PatientService
}

func NewPatientHandler(svc *service.PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

// Get handles GET /api/v1/patients/:id with cases and follow-ups.
func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	detail, err := h.svc.GetPatient(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, detail)
}

// List handles GET /api/v1/patients with optional document_number, search
// and status filters.
func (h *PatientHandler) List(c *gin.Context) {
	q := &patient.ListPatientsQuery{
		DocumentNumber: c.Query("document_number"),
		Search:         c.Query("search"),
		Page:           parseQueryInt(c, "page", 1),
		PageSize:       parseQueryInt(c, "page_size", 20),
	}
	if raw := c.Query("status"); raw != "" {
		status := patient.Status(raw)
		q.Status = &status
	}

	paged, err := h.svc.ListPatients(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, paged)
}
