package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SessionsSheet   = "Sessions"
	CardDetailSheet = "CardDetail"

	defaultSheet = "Sheet1"
)

var (
	sessionHeaders = []any{
		"Timestamp", "Student", "Course", "Topics Studied", "Total Cards",
		"Don't Know", "Somewhat", "Know Well", "% Know Well", "Duration (mins)",
	}
	cardDetailHeaders = []any{
		"Timestamp", "Student", "Course", "Unit", "Subtopic", "Term", "Rating", "Box",
	}
)

// WorkbookSink appends payloads as rows to a local .xlsx file, creating the
// file and its sheets on first use.
type WorkbookSink struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

// NewWorkbookSink creates a sink writing to path.
func NewWorkbookSink(path string) *WorkbookSink {
	return &WorkbookSink{path: path, now: time.Now}
}

func (w *WorkbookSink) WriteSession(_ context.Context, p SessionPayload) error {
	counts := domain.RatingCounts{DontKnow: p.DontKnow, Somewhat: p.Somewhat, KnowWell: p.KnowWell}
	row := []any{
		w.now().Format(time.DateTime),
		p.StudentEmail,
		p.Course,
		p.Topics,
		p.TotalCards,
		p.DontKnow,
		p.Somewhat,
		p.KnowWell,
		fmt.Sprintf("%d%%", counts.KnowWellPct()),
		fmt.Sprintf("%.1f", float64(p.DurationSeconds)/60),
	}
	return w.append(SessionsSheet, sessionHeaders, [][]any{row})
}

func (w *WorkbookSink) WriteCardDetail(_ context.Context, p CardDetailPayload) error {
	if len(p.Cards) == 0 {
		return nil
	}
	ts := w.now().Format(time.DateTime)
	rows := make([][]any, 0, len(p.Cards))
	for _, c := range p.Cards {
		rows = append(rows, []any{ts, p.StudentEmail, p.Course, c.Unit, c.Sub, c.Term, c.Rating, c.Box})
	}
	return w.append(CardDetailSheet, cardDetailHeaders, rows)
}

func (w *WorkbookSink) append(sheet string, headers []any, rows [][]any) (err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, created, err := w.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing workbook: %w", cerr)
		}
	}()

	if err := ensureSheet(f, sheet, headers); err != nil {
		return err
	}
	if created && sheet != defaultSheet && slices.Contains(f.GetSheetList(), defaultSheet) {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("removing default sheet: %w", err)
		}
	}

	existing, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("reading %s rows: %w", sheet, err)
	}
	next := len(existing) + 1
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, next+i)
		if err != nil {
			return fmt.Errorf("locating row: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row: %w", sheet, err)
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func (w *WorkbookSink) open() (*excelize.File, bool, error) {
	f, err := excelize.OpenFile(w.path)
	if err == nil {
		return f, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, fmt.Errorf("opening workbook: %w", err)
	}
	return excelize.NewFile(), true, nil
}

// ensureSheet creates sheet with a bold, frozen header row if it is missing.
func ensureSheet(f *excelize.File, sheet string, headers []any) error {
	if slices.Contains(f.GetSheetList(), sheet) {
		return nil
	}
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	f.SetActiveSheet(idx)

	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("writing %s headers: %w", sheet, err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("locating header end: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("styling %s headers: %w", sheet, err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing %s header: %w", sheet, err)
	}
	return nil
}
