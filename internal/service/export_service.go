package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/saludmental/mindtrack/internal/domain/patient"
	"github.com/saludmental/mindtrack/pkg/metrics"
)

var patientExportHeader = []string{
	"Tipo Documento",
	"N° Documento",
	"Nombres y Apellidos",
	"Sexo",
	"Fecha de Nacimiento",
	"Teléfono",
	"Dirección",
	"Barrio",
	"Vereda",
	"EPS Código",
	"EPS Nombre",
	"Estado",
	"Fecha de Registro",
}

var patientExportWidths = []float64{
	14, 16, 35, 12, 18, 16, 30, 20, 20, 14, 30, 12, 18}

// ExportService renders registry data back into xlsx workbooks for
// coordination with the entities that send the source files.
type ExportService struct {
	patients patient.Repository
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewExportService(patients patient.Repository, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *ExportService {
	return &ExportService{
		patients: patients,
		auditSvc: auditSvc,
		metrics:  m,
		log:      log,
	}
}

const exportPageSize = 200

// ExportPatients writes every live patient to a single-sheet workbook and
// returns the serialized bytes.
func (s *ExportService) ExportPatients(ctx context.Context, operator uuid.UUID, meta RequestMeta) ([]byte, error) {
	start := time.Now()
	f := excelize.NewFile()
	// WriteTo needs the file open; Close only on error paths and at the end.

	const sheetName = "Pacientes"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	for col, header := range patientExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("converting coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("styling header cell %s: %w", cell, err)
		}
	}

	for i, width := range patientExportWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("converting column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("setting column width: %w", err)
		}
	}

	row := 2
	total := 0
	for page := 1; ; page++ {
		paged, err := s.patients.List(ctx, &patient.ListPatientsQuery{Page: page, PageSize: exportPageSize})
		if err != nil {
			f.Close()
			s.metrics.ExportsTotal.WithLabelValues("failed").Inc()
			return nil, fmt.Errorf("listing patients: %w", err)
		}

		for _, p := range paged.Patients {
			gender := ""
			if p.Gender != nil {
				gender = string(*p.Gender)
			}
			values := []any{
				string(p.DocumentType),
				p.DocumentNumber,
				p.FullName,
				gender,
				p.BirthDate.Format("2006-01-02"),
				p.Phone,
				p.Address,
				p.Neighborhood,
				p.Village,
				p.EPSCode,
				p.EPSName,
				string(p.Status),
				p.CreatedAt.Format("2006-01-02"),
			}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					f.Close()
					return nil, fmt.Errorf("converting coordinates: %w", err)
				}
				if err := f.SetCellValue(sheetName, cell, v); err != nil {
					f.Close()
					return nil, fmt.Errorf("writing row %d: %w", row, err)
				}
			}
			row++
			total++
		}

		if page >= paged.TotalPages {
			break
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("freezing header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		s.metrics.ExportsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing workbook: %w", err)
	}

	s.metrics.ExportsTotal.WithLabelValues("ok").Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       operator,
		Action:       "export",
		ResourceType: "patients",
		IPAddress:    meta.IPAddress,
		RequestID:    meta.RequestID,
		Details:      fmt.Sprintf(`{"rows":%d}`, total),
	})
	s.log.Info("patients exported", zap.Int("rows", total), zap.Duration("took", time.Since(start)))

	return buf.Bytes(), nil
}
