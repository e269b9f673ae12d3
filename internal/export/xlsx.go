// Package export writes planning results to spreadsheet workbooks.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/csfplan/internal/contract"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary  = "Summary"
	SheetActions  = "Actions"
	SheetTimeline = "Timeline"
	SheetMatrix   = "Matrix"
)

var (
	actionsHeader  = []any{"Rank", "Subcategory", "Function", "Title", "Gap %", "Risk", "Effort Hours", "ROI", "Status", "Week", "Blockers", "Justification"}
	timelineHeader = []any{"Week", "Hours", "Subcategories", "Milestones"}
	matrixHeader   = []any{"Quadrant", "Subcategory", "Title", "X", "Y", "Priority", "Gap %", "Effort Hours", "Cost"}
)

// PlanWorkbook is the content of one export. Matrix is optional.
type PlanWorkbook struct {
	Actions *contract.NextActionsResponse
	Matrix  *contract.PriorityMatrixResponse
}

// Write renders the workbook as .xlsx to w.
func (p PlanWorkbook) Write(w io.Writer) error {
	f, err := p.build()
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Save renders the workbook to path.
func (p PlanWorkbook) Save(path string) error {
	f, err := p.build()
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func (p PlanWorkbook) build() (*excelize.File, error) {
	if p.Actions == nil {
		return nil, fmt.Errorf("export requires a next-actions result")
	}
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	w := &sheetWriter{f: f, header: bold}
	w.summary(p.Actions)
	w.actions(p.Actions)
	w.timeline(p.Actions)
	if p.Matrix != nil {
		w.matrix(p.Matrix)
	}
	if w.err != nil {
		f.Close()
		return nil, w.err
	}

	// NewFile starts with a default sheet; drop it once ours exist.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(SheetActions); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// sheetWriter keeps the first error so callers can write rows unchecked.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) sheet(name string, header []any, widths map[string]float64) {
	if w.err != nil {
		return
	}
	if _, err := w.f.NewSheet(name); err != nil {
		w.err = fmt.Errorf("creating sheet %s: %w", name, err)
		return
	}
	if header != nil {
		w.row(name, 1, header)
		if w.err == nil {
			w.err = w.f.SetRowStyle(name, 1, 1, w.header)
		}
	}
	for col, width := range widths {
		if w.err == nil {
			w.err = w.f.SetColWidth(name, col, col, width)
		}
	}
}

func (w *sheetWriter) row(sheet string, n int, values []any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("writing %s row %d: %w", sheet, n, err)
	}
}

func (w *sheetWriter) summary(r *contract.NextActionsResponse) {
	w.sheet(SheetSummary, nil, map[string]float64{"A": 28, "B": 40})
	c := r.Capacity
	rows := [][]any{
		{"Profile", r.Profile.Name},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04")},
		{"Optimization goal", string(r.OptimizationGoal)},
		{"Capacity (hours/week)", c.CapacityHoursPerWeek},
		{"Horizon (weeks)", c.HorizonWeeks},
		{"Total capacity hours", c.TotalCapacityHours},
		{"Allocated hours", c.AllocatedHours},
		{"Utilization %", c.UtilizationPercentage},
		{"Suggested actions", len(r.SuggestedActions)},
		{"Blocked actions", len(r.BlockedActions)},
		{"Deferred actions", c.DeferredActions},
	}
	for i, values := range rows {
		w.row(SheetSummary, i+1, values)
	}
}

func (w *sheetWriter) actions(r *contract.NextActionsResponse) {
	w.sheet(SheetActions, actionsHeader, map[string]float64{"B": 12, "D": 40, "K": 40, "L": 60})
	n := 2
	for _, a := range r.SuggestedActions {
		var week any = a.Week
		if a.Week == 0 {
			week = "unscheduled"
		}
		w.row(SheetActions, n, []any{
			a.Rank, a.SubcategoryID, string(a.Function), a.Title,
			a.GapScore, a.RiskScore, a.EffortHours, a.ROI,
			string(a.DependencyStatus), week,
			strings.Join(a.Blockers, "; "), a.Justification,
		})
		n++
	}
	for _, b := range r.BlockedActions {
		w.row(SheetActions, n, []any{
			"", b.SubcategoryID, "", b.Title,
			b.GapScore, "", b.EffortHours, "",
			"blocked", "", strings.Join(b.Blockers, "; "), "",
		})
		n++
	}
}

func (w *sheetWriter) timeline(r *contract.NextActionsResponse) {
	w.sheet(SheetTimeline, timelineHeader, map[string]float64{"C": 50, "D": 50})
	for i, wk := range r.Timeline {
		w.row(SheetTimeline, i+2, []any{
			wk.WeekIndex, wk.HoursAllocated,
			strings.Join(wk.SubcategoryIDs, ", "),
			strings.Join(wk.Milestones, "; "),
		})
	}
}

func (w *sheetWriter) matrix(m *contract.PriorityMatrixResponse) {
	w.sheet(SheetMatrix, matrixHeader, map[string]float64{"A": 22, "C": 40})
	n := 2
	for _, q := range m.Quadrants {
		for _, it := range q.Items {
			w.row(SheetMatrix, n, []any{
				q.Label, it.Gap.SubcategoryID, it.Gap.Title,
				it.X, it.Y, it.PriorityScore,
				it.Gap.GapScore, it.Gap.EffortHours,
				it.Cost.InexactFloat64(),
			})
			n++
		}
	}
}
