package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"lendit/internal/models"

	"github.com/xuri/excelize/v2"
)

// handleExportBookings выгружает бронирования вещей владельца в Excel.
func (s *Server) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var bookings []models.Booking
	page := models.PageRequest{From: 0, Size: models.MaxPageSize}
	for {
		batch, err := s.bookings.GetBookingsForOwner(r.Context(), ownerID, models.StateAll, page)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		bookings = append(bookings, batch...)
		if len(batch) < page.Size {
			break
		}
		page.From += page.Size
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		s.log.Error().Err(err).Msg("create export sheet")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Item", "Booker", "Start", "End", "Status", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "G1", headerStyle)
	_ = f.SetColWidth(sheetName, "B", "B", 25)
	_ = f.SetColWidth(sheetName, "D", "E", 20)

	for row, b := range bookings {
		values := []any{
			b.ID, b.ItemName, b.BookerID,
			b.Start.Format(time.RFC3339), b.End.Format(time.RFC3339),
			b.Status, b.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	fileName := fmt.Sprintf("bookings_%d_%s.xlsx", ownerID, time.Now().Format("2006-01-02"))

	// Копия выгрузки остаётся на диске для сверки.
	if s.exportDir != "" {
		if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
			s.log.Error().Err(err).Str("dir", s.exportDir).Msg("create export dir")
		} else if err := f.SaveAs(filepath.Join(s.exportDir, fileName)); err != nil {
			s.log.Error().Err(err).Str("file", fileName).Msg("archive export file")
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	if err := f.Write(w); err != nil {
		s.log.Error().Err(err).Msg("write export file")
	}
}
