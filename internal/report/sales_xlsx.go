// Package report renders back-office exports.
package report

import (
	"bytes"
	"fmt"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"

	"github.com/xuri/excelize/v2"
)

// SalesXLSX renders a sales summary workbook: a Summary sheet with the
// headline figures and tender breakdown, plus Top Items and Daily sheets.
func SalesXLSX(summary *dto.SalesSummaryResponse, topItems []dto.TopItemResponse, daily []dto.DailyPoint) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, "Summary"); err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"Branch", summary.BranchID},
		{"From", summary.From},
		{"To", summary.To},
		{},
		{"Orders", summary.OrderCount},
		{"Gross", summary.Gross.StringFixed(2)},
		{"Discounts", summary.DiscountTotal.StringFixed(2)},
		{"Net", summary.Net.StringFixed(2)},
		{"Average ticket", summary.AverageTicket.StringFixed(2)},
		{},
		{"Tender", "Amount", "Count"},
	}
	for _, t := range summary.Tenders {
		rows = append(rows, []interface{}{t.Method, t.Amount.StringFixed(2), t.Count})
	}
	if err := writeRows(f, "Summary", rows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Top Items"); err != nil {
		return nil, err
	}
	itemRows := [][]interface{}{{"Item", "Quantity", "Revenue"}}
	for _, it := range topItems {
		itemRows = append(itemRows, []interface{}{it.Name, it.Quantity, it.Revenue.StringFixed(2)})
	}
	if err := writeRows(f, "Top Items", itemRows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Daily"); err != nil {
		return nil, err
	}
	dailyRows := [][]interface{}{{"Date", "Orders", "Net"}}
	for _, d := range daily {
		dailyRows = append(dailyRows, []interface{}{d.Date, d.OrderCount, d.Net.StringFixed(2)})
	}
	if err := writeRows(f, "Daily", dailyRows); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

// SalesXLSXFilename names the download attachment for a branch export.
func SalesXLSXFilename(from, to string) string {
	return fmt.Sprintf("sales_%s_%s.xlsx", from, to)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
