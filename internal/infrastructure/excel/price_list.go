// Package excel exports the price catalog as an xlsx workbook the office can
// hand to estimators.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	appricing "github.com/trimworks/takeoff-api/internal/application/pricing"
	"github.com/trimworks/takeoff-api/internal/domain/entity"
)

var _ appricing.PriceListExporter = (*PriceListExporter)(nil)

// PriceListExporter implements pricing.PriceListExporter with excelize.
type PriceListExporter struct{}

// NewPriceListExporter builds the exporter.
func NewPriceListExporter() *PriceListExporter {
	return &PriceListExporter{}
}

var headers = []string{"Item", "Type", "Casing", "Install", "Increase", "Valid from", "Valid until", "Version"}

// Export renders the entries to a single-sheet workbook, one row per entry.
func (e *PriceListExporter) Export(entries []entity.PriceEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Price list"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	for i, name := range headers {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}
	lastCol := cellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	for rowIdx, entry := range entries {
		rowNum := rowIdx + 2
		f.SetCellValue(sheet, cellName(1, rowNum), entry.Item)
		f.SetCellValue(sheet, cellName(2, rowNum), entry.Type)
		f.SetCellValue(sheet, cellName(3, rowNum), entry.Casing)
		f.SetCellValue(sheet, cellName(4, rowNum), entry.InstallCost.StringFixed(2))
		f.SetCellValue(sheet, cellName(5, rowNum), entry.IncreaseCost.StringFixed(2))
		f.SetCellValue(sheet, cellName(6, rowNum), entry.ValidFrom.Format("2006-01-02"))
		until := ""
		if entry.ValidUntil != nil {
			until = entry.ValidUntil.Format("2006-01-02")
		}
		f.SetCellValue(sheet, cellName(7, rowNum), until)
		f.SetCellValue(sheet, cellName(8, rowNum), entry.Version)
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(sheet, "A", "H", 15)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
