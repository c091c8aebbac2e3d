package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"attendease/internal/attendance"
	"attendease/internal/report"
)

func parseDate(s string) (time.Time, error) {
	return time.Parse(attendance.DateLayout, s)
}

// rangeParams reads mode and reference date from the query string.
func (h *Handler) rangeParams(c *gin.Context) (report.Mode, time.Time, bool) {
	mode, err := report.ParseMode(c.DefaultQuery("mode", "day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", time.Time{}, false
	}
	ref := h.clk.Now()
	if s := c.Query("date"); s != "" {
		ref, err = parseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be yyyy-MM-dd"})
			return "", time.Time{}, false
		}
	}
	return mode, ref, true
}

// Summary returns aggregate statistics for a range.
func (h *Handler) Summary(c *gin.Context) {
	mode, ref, ok := h.rangeParams(c)
	if !ok {
		return
	}

	filtered := report.FilterByRange(h.store.All(), mode, ref)
	s := report.Summarize(filtered)

	c.JSON(http.StatusOK, gin.H{
		"range":                 report.RangeText(mode, ref),
		"total":                 s.Total,
		"present":               s.Present,
		"absent":                s.Absent,
		"half_day":              s.HalfDay,
		"average_working_hours": s.AverageText(),
	})
}

// Export streams a CSV, PDF, or XLSX report for a range. An empty range is
// surfaced as a notice, not an empty file.
func (h *Handler) Export(c *gin.Context) {
	mode, ref, ok := h.rangeParams(c)
	if !ok {
		return
	}

	records := h.store.All()
	var (
		file report.File
		err  error
	)
	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		file, err = report.ExportCSV(records, h.dir, mode, ref)
	case "pdf":
		file, err = report.ExportPDF(records, h.dir, mode, ref)
	case "xlsx":
		file, err = report.ExportXLSX(records, h.dir, mode, ref)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown export format %q", format)})
		return
	}
	if err != nil {
		if errors.Is(err, report.ErrNoRecordsInRange) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
