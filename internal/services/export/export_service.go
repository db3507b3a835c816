package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/collectflow/collections-campaign-backend/internal/models"
)

// Service renders the pending-approval export in CSV and XLSX formats
type Service struct{}

func NewExportService() *Service {
	return &Service{}
}

// exportHeader is the fixed column order of the pending-approval export
var exportHeader = []string{
	"ID",
	"Name",
	"Status",
	"State",
	"DPD",
	"Channel",
	"Template",
	"Language",
	"Condition Count",
	"Assigned Count",
	"Start Date",
	"End Date",
	"Submitted At",
	"Created By",
}

func rowValues(row *models.ApprovalExportRow) []string {
	submittedAt := ""
	if row.SubmittedForApprovalAt != nil {
		submittedAt = row.SubmittedForApprovalAt.Format("2006-01-02 15:04:05")
	}
	return []string{
		strconv.FormatUint(uint64(row.ID), 10),
		row.Name,
		row.Status,
		row.StateName,
		row.DpdName,
		row.ChannelName,
		row.TemplateName,
		row.LanguageName,
		strconv.Itoa(row.ConditionCount),
		strconv.Itoa(row.AssignedCount),
		row.StartDate,
		row.EndDate,
		submittedAt,
		row.CreatedByName,
	}
}

// WriteCSV writes the export rows as CSV to w
func (s *Service) WriteCSV(w io.Writer, rows []*models.ApprovalExportRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(rowValues(row)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// BuildXLSX builds a workbook with one styled sheet of export rows
func (s *Service) BuildXLSX(rows []*models.ApprovalExportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Pending Approvals"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"4472C4"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range exportHeader {
		cell := fmt.Sprintf("%s1", columnToLetter(col))
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}
	lastCol := columnToLetter(len(exportHeader) - 1)
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}

	for i, row := range rows {
		values := rowValues(row)
		for col, value := range values {
			cell := fmt.Sprintf("%s%d", columnToLetter(col), i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return nil, err
	}
	return f, nil
}

// columnToLetter converts a zero-based column index to its letter reference
func columnToLetter(col int) string {
	letters := ""
	for col >= 0 {
		letters = string(rune('A'+col%26)) + letters
		col = col/26 - 1
	}
	return letters
}
