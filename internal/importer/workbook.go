package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/saludmental/mindtrack/internal/config"
)

var (
	ErrSheetNotFound = errors.New("sheet not found in workbook")
	ErrNoHeaderRow   = errors.New("sheet has no header row")
)

// Workbook wraps an open xlsx file. Structural problems (unreadable file,
// missing sheet, missing header row) surface as errors here; everything past
// this boundary is row-level and recoverable.
type Workbook struct {
	f *excelize.File
}

func OpenWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	return &Workbook{f: f}, nil
}

func OpenWorkbookFile(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return &Workbook{f: f}, nil
}

func (w *Workbook) Close() error {
	return w.f.Close()
}

// findSheet matches the configured name against the workbook tabs, exact
// first, then ignoring surrounding whitespace. Deliveries with a stray
// leading space in the tab name are a known occurrence.
func (w *Workbook) findSheet(name string) (string, bool) {
	list := w.f.GetSheetList()
	for _, s := range list {
		if s == name {
			return s, true
		}
	}
	want := strings.TrimSpace(name)
	for _, s := range list {
		if strings.TrimSpace(s) == want {
			return s, true
		}
	}
	return "", false
}

// Sheet is one tab of the workbook with its header resolved. Rows holds only
// data rows; RowNumber maps a Rows index back to the 1-based spreadsheet row
// for error messages.
type Sheet struct {
	Name      string
	Columns   *Columns
	Rows      [][]string
	headerRow int
}

func (s *Sheet) RowNumber(i int) int {
	return s.headerRow + 1 + i
}

// Sheet loads the named tab. The header row is 1-based and configurable per
// sheet because some deliveries put a title banner on row 1 and the real
// headers on row 2.
func (w *Workbook) Sheet(cfg config.SheetConfig) (*Sheet, error) {
	actual, ok := w.findSheet(cfg.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, cfg.Name)
	}

	rows, err := w.f.GetRows(actual)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", actual, err)
	}

	if len(rows) < cfg.HeaderRow {
		return nil, fmt.Errorf("%w: sheet %q", ErrNoHeaderRow, actual)
	}

	return &Sheet{
		Name:      strings.TrimSpace(actual),
		Columns:   NewColumns(rows[cfg.HeaderRow-1]),
		Rows:      rows[cfg.HeaderRow:],
		headerRow: cfg.HeaderRow,
	}, nil
}
