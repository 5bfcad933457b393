package infra

// pdf.go — PDF receipt generation using go-pdf/fpdf.
// Generates thermal-receipt-style pages with a store header, order number
// and timestamp, item table, discount line, bold total and tender breakdown.
// The output file is saved to storagePath/receipt_{number}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateReceiptPDF writes a PDF receipt for a completed order.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateReceiptPDF(order *model.Order, storeName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%d.pdf", order.Number)
	filePath := filepath.Join(storagePath, fileName)

	// 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, storeName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Sales Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Order info ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Order #%d", order.Number), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, order.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // item name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, line := range order.Items {
		name := ""
		if line.Item != nil {
			name = line.Item.Name
		}
		pdf.CellFormat(col1, 4, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 4, fmt.Sprintf("%d", line.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 4, line.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(1)

	// ── Discount ─────────────────────────────────────────────────────────────
	if !order.DiscountTotal.IsZero() {
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(col1+col2, 4, "Discount", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "-"+order.DiscountTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL", "T", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, order.Total.StringFixed(2), "T", 1, "R", false, 0, "")

	// ── Tenders ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	for _, p := range order.Payments {
		pdf.CellFormat(col1+col2, 4, p.Method, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, p.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 6)
	pdf.CellFormat(contentW, 4, "Thank you for your purchase!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
