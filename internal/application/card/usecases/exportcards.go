package usecases

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"captr/internal/domain/card"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

// Export formats supported by the export endpoint.
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

const exportSheetName = "Contacts"

var exportHeader = []string{
	"Name", "Job Title", "Company", "Email", "Phone",
	"Website", "Address", "Notes", "Scanned At",
}

// ExportCardsResult carries the rendered spreadsheet.
type ExportCardsResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportCardsUseCase renders the caller's full collection as a spreadsheet,
// most recent scan first.
type ExportCardsUseCase struct {
	cardRepo card.Repository
	logger   logger.Interface
}

// NewExportCardsUseCase creates a new ExportCardsUseCase instance.
func NewExportCardsUseCase(cardRepo card.Repository, logger logger.Interface) *ExportCardsUseCase {
	return &ExportCardsUseCase{
		cardRepo: cardRepo,
		logger:   logger,
	}
}

func (uc *ExportCardsUseCase) Execute(ctx context.Context, userID uint, format string) (*ExportCardsResult, error) {
	if format == "" {
		format = ExportFormatXLSX
	}
	if format != ExportFormatXLSX && format != ExportFormatCSV {
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported export format %q", format))
	}

	cards, err := uc.cardRepo.ListByUser(ctx, userID, 0, 0)
	if err != nil {
		uc.logger.Errorw("failed to list cards for export", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		f := c.Fields()
		rows = append(rows, []string{
			f.Name, f.JobTitle, f.Company, f.Email, f.Phone,
			f.Website, f.Address, f.Notes,
			c.CreatedAt().Format("2006-01-02"),
		})
	}

	if format == ExportFormatCSV {
		content, err := renderCSV(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to render csv: %w", err)
		}
		return &ExportCardsResult{
			Content:     content,
			ContentType: "text/csv",
			Filename:    "captr-contacts.csv",
		}, nil
	}

	content, err := renderXLSX(rows)
	if err != nil {
		uc.logger.Errorw("failed to render xlsx", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to render xlsx: %w", err)
	}
	return &ExportCardsResult{
		Content:     content,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename:    "captr-contacts.xlsx",
	}, nil
}

func renderCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheetName, cell, title); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1A1A2E"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	lastHeaderCell, err := excelize.CoordinatesToCellName(len(exportHeader), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheetName, "A1", lastHeaderCell, headerStyle); err != nil {
		return nil, err
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(exportSheetName, "A", "I", 25); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
