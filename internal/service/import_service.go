package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/saludmental/mindtrack/internal/config"
	"github.com/saludmental/mindtrack/internal/importer"
	"github.com/saludmental/mindtrack/internal/repository"
	"github.com/saludmental/mindtrack/pkg/metrics"
)

// ImportService owns the ambient boundary around a workbook run: one
// database transaction for the whole run, operator resolution, tracing,
// metrics and the audit trail. Row-level failures stay inside the engine;
// a structural failure here rolls everything back.
type ImportService struct {
	db       *gorm.DB
	cfg      config.ImportConfig
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewImportService(db *gorm.DB, cfg config.ImportConfig, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *ImportService {
	return &ImportService{
		db:       db,
		cfg:      cfg,
		auditSvc: auditSvc,
		metrics:  m,
		log:      log,
	}
}

// RequestMeta carries the caller context recorded in the audit trail.
type RequestMeta struct {
	IPAddress string
	RequestID string
}

// ImportWorkbook runs the full reconciliation for one uploaded workbook.
// A zero operator id falls back to the configured system operator, so runs
// are never blocked by a missing identity.
func (s *ImportService) ImportWorkbook(ctx context.Context, r io.Reader, operator uuid.UUID, meta RequestMeta) (*importer.Stats, error) {
	wb, err := importer.OpenWorkbook(r)
	if err != nil {
		s.metrics.ImportRunsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	defer wb.Close()

	return s.run(ctx, wb, operator, "", meta)
}

// ImportWorkbookFile is the CLI entry point: same run, file path input.
func (s *ImportService) ImportWorkbookFile(ctx context.Context, path string, operator uuid.UUID) (*importer.Stats, error) {
	wb, err := importer.OpenWorkbookFile(path)
	if err != nil {
		s.metrics.ImportRunsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	defer wb.Close()

	return s.run(ctx, wb, operator, path, RequestMeta{})
}

func (s *ImportService) run(ctx context.Context, wb *importer.Workbook, operator uuid.UUID, source string, meta RequestMeta) (*importer.Stats, error) {
	ctx, span := otel.Tracer("mindtrack/importer").Start(ctx, "import.run")
	defer span.End()

	if operator == uuid.Nil {
		operator = s.cfg.SystemOperatorID
	}
	span.SetAttributes(attribute.String("operator_id", operator.String()))

	start := time.Now()

	var stats *importer.Stats
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		eng := importer.New(repository.NewImportRepos(tx), s.cfg, s.log)
		st, err := eng.Run(ctx, wb, operator)
		stats = st
		if err != nil {
			return fmt.Errorf("import run: %w", err)
		}
		return nil
	})

	s.metrics.ImportRunDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.ImportRunsTotal.WithLabelValues("failed").Inc()
		s.log.Error("import run aborted, transaction rolled back", zap.Error(err))
		return nil, err
	}

	s.metrics.ImportRunsTotal.WithLabelValues("ok").Inc()
	s.metrics.PatientsImportedTotal.WithLabelValues("created").Add(float64(stats.Imported))
	s.metrics.PatientsImportedTotal.WithLabelValues("updated").Add(float64(stats.Updated))
	s.metrics.RowsSkippedTotal.Add(float64(stats.Skipped))
	s.metrics.CasesCreatedTotal.Add(float64(stats.CasesCreated))
	s.metrics.FollowupsCreatedTotal.Add(float64(stats.FollowupsCreated))

	details, _ := json.Marshal(map[string]int{
		"imported":          stats.Imported,
		"updated":           stats.Updated,
		"skipped":           stats.Skipped,
		"cases_created":     stats.CasesCreated,
		"followups_created": stats.FollowupsCreated,
		"errors":            stats.TotalErrors,
	})
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       operator,
		Action:       "import",
		ResourceType: "workbook",
		ResourceID:   source,
		IPAddress:    meta.IPAddress,
		RequestID:    meta.RequestID,
		Details:      string(details),
	})

	return stats, nil
}
