// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/okian/tribute/pkg/logger"
)

const exportSheet = "Members"

// ExportHandler handles workbook download requests.
type ExportHandler struct {
	deps MembersDependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps MembersDependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExport handles GET /members/export requests and streams the
// merged member list as an xlsx workbook. The tier query parameter
// narrows the export the same way it narrows GET /members.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_members"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	members := h.deps.Members(r.Context(), r.URL.Query().Get("tier"))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Get().Warn(r.Context(), "closing workbook", logger.Error(err))
		}
	}()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	headers := []string{"Member ID", "Coins Contribution", "Activity Contribution", "Tier"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, header)
		_ = f.SetCellStyle(exportSheet, cell, cell, headerStyle)
	}

	for rowIdx, m := range members {
		row := rowIdx + 2
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), m.MemberID)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), m.CoinsContribution)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("C%d", row), m.ActivityContribution)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("D%d", row), m.Tier)
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(exportSheet, col, col, 22)
	}

	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="members.xlsx"`)
	if err := f.Write(w); err != nil {
		// Headers are already out; all we can do is log.
		logger.Get().Warn(r.Context(), "writing workbook", logger.Error(err))
	}
}
