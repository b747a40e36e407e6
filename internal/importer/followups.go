package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saludmental/mindtrack/internal/domain/followup"
)

// monthColumn pairs a Spanish month name with its number. The workbook holds
// follow-ups wide: one column per month, free text in each cell.
type monthColumn struct {
	name  string
	month int
}

var monthNames = []monthColumn{
	{"enero", 1}, {"febrero", 2}, {"marzo", 3}, {"abril", 4},
	{"mayo", 5}, {"junio", 6}, {"julio", 7}, {"agosto", 8},
	{"septiembre", 9}, {"octubre", 10}, {"noviembre", 11}, {"diciembre", 12},
}

// monthColumns builds the twelve {mes}_{year} column names for the
// configured follow-up year.
func monthColumns(year int) []monthColumn {
	cols := make([]monthColumn, len(monthNames))
	for i, m := range monthNames {
		cols[i] = monthColumn{name: fmt.Sprintf("%s_%d", m.name, year), month: m.month}
	}
	return cols
}

// followupSpec carries the per-case-type pieces of a follow-up: the case
// reference, the description prefix, the context details appended after the
// cell text, and the actions tag.
type followupSpec struct {
	ref       followup.CaseRef
	prefix    string
	details   []string
	actionTag string
}

// generateFollowups materializes one follow-up per non-empty month cell.
// At most one entry exists per (case, year, month); cells whose period is
// already populated are skipped without comparison, so re-imports never
// duplicate or rewrite history. A failure in one month is logged and counted
// but never stops the remaining months.
func (imp *Importer) generateFollowups(ctx context.Context, sheet *Sheet, row []string, rowNum int, spec followupSpec, operator uuid.UUID, stats *Stats) {
	year := imp.cfg.FollowupYear

	for _, col := range monthColumns(year) {
		text := sheet.Columns.Value(row, []string{col.name})
		if len([]rune(text)) < 2 {
			continue
		}

		exists, err := imp.repos.Followups.ExistsForPeriod(ctx, spec.ref, year, col.month)
		if err != nil {
			stats.AddError(fmt.Sprintf("%s row %d: checking followup %s: %v", sheet.Name, rowNum, col.name, err))
			imp.log.Error("followup existence check failed",
				zap.String("sheet", sheet.Name), zap.Int("row", rowNum),
				zap.Int("month", col.month), zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		description := spec.prefix + Truncate(text, 400)
		if len(spec.details) > 0 {
			description += " | " + strings.Join(spec.details, " | ")
		}

		f := &followup.MonthlyFollowup{
			Case:         spec.ref,
			FollowupDate: time.Date(year, time.Month(col.month), 15, 0, 0, 0, 0, time.UTC),
			Year:         year,
			Month:        col.month,
			Description:  Truncate(description, 1000),
			Status:       followup.StatusCompleted,
			ActionsTaken: []string{spec.actionTag},
			PerformedBy:  operator,
		}
		if err := imp.repos.Followups.Create(ctx, f); err != nil {
			stats.AddError(fmt.Sprintf("%s row %d: creating followup %s: %v", sheet.Name, rowNum, col.name, err))
			imp.log.Error("followup creation failed",
				zap.String("sheet", sheet.Name), zap.Int("row", rowNum),
				zap.Int("month", col.month), zap.Error(err))
			continue
		}
		stats.FollowupsCreated++
	}
}
