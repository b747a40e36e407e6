// Package importer implements the workbook reconciliation engine: it ingests
// the three-sheet registry workbook (TRASTORNOS, EVENTO 356, CONSUMO SPA)
// and merges it into normalized patient, case and follow-up records without
// duplication. Row-level problems are recovered and counted; only structural
// problems (unreadable workbook, missing sheet) abort a run.
package importer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saludmental/mindtrack/internal/config"
	"github.com/saludmental/mindtrack/internal/domain/attempt"
	"github.com/saludmental/mindtrack/internal/domain/consumption"
	"github.com/saludmental/mindtrack/internal/domain/disorder"
	"github.com/saludmental/mindtrack/internal/domain/followup"
	"github.com/saludmental/mindtrack/internal/domain/patient"
)

// Repos bundles the record stores the engine writes to. The caller owns the
// transaction boundary: hand in transaction-scoped repositories and the whole
// run commits or rolls back together.
type Repos struct {
	Patients     patient.Repository
	Disorders    disorder.Repository
	Attempts     attempt.Repository
	Consumptions consumption.Repository
	Followups    followup.Repository
}

type Importer struct {
	repos Repos
	cfg   config.ImportConfig
	log   *zap.Logger
	now   func() time.Time
}

func New(repos Repos, cfg config.ImportConfig, log *zap.Logger) *Importer {
	return &Importer{
		repos: repos,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
	}
}

// Run processes the three sheets sequentially. Order matters: later sheets
// update patients created by earlier ones, and the one-case-per-type checks
// assume a single writer. The returned Stats always reflects the work done
// up to the point of return, also when err is non-nil.
func (imp *Importer) Run(ctx context.Context, wb *Workbook, operator uuid.UUID) (*Stats, error) {
	stats := NewStats(imp.cfg.MaxErrors)

	sheets := []struct {
		cfg     config.SheetConfig
		process func(context.Context, *Sheet, uuid.UUID, *Stats)
	}{
		{imp.cfg.DisordersSheet, imp.processDisorders},
		{imp.cfg.AttemptsSheet, imp.processAttempts},
		{imp.cfg.ConsumptionsSheet, imp.processConsumptions},
	}

	for _, s := range sheets {
		sheet, err := wb.Sheet(s.cfg)
		if err != nil {
			return stats, err
		}
		s.process(ctx, sheet, operator, stats)
	}

	imp.log.Info("import run finished",
		zap.Int("imported", stats.Imported),
		zap.Int("updated", stats.Updated),
		zap.Int("skipped", stats.Skipped),
		zap.Int("cases_created", stats.CasesCreated),
		zap.Int("followups_created", stats.FollowupsCreated),
		zap.Int("errors", stats.TotalErrors))

	return stats, nil
}
