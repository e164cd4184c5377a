package infra

// pdf.go renders purchase order sheets using go-pdf/fpdf.
// A4 portrait with supplier header, order metadata, item table
// (description, quantity, unit price, subtotal) and a bold total.
// The output file is saved to storagePath/orden_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"almacen/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateOrderPDF renders a purchase order for mailing to the supplier.
// Subtotals and the total reflect the product prices loaded on the
// purchase's items at call time. Returns the absolute path of the file.
func GenerateOrderPDF(purchase *model.Purchase, total decimal.Decimal, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("orden_%s.pdf", purchase.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Orden de Compra", "", 1, "C", false, 0, "")

	supplierName := ""
	if purchase.Supplier != nil {
		supplierName = purchase.Supplier.Name
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Proveedor: "+supplierName, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Fecha: "+purchase.PurchaseDate.Format("02/01/2006"), "", 1, "L", false, 0, "")
	if purchase.DeliveryDate != nil {
		pdf.CellFormat(contentW, 6, "Entrega: "+purchase.DeliveryDate.Format("02/01/2006"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Item table ───────────────────────────────────────────────────────────
	col1 := contentW * 0.50 // description
	col2 := contentW * 0.12 // qty
	col3 := contentW * 0.19 // unit price
	col4 := contentW * 0.19 // subtotal

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "Precio", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range purchase.Items {
		description := ""
		unitPrice := decimal.Zero
		subtotal := decimal.Zero
		if item.Product != nil {
			description = item.Product.Description
			unitPrice = item.Product.PurchasePrice
			subtotal = unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}
		description = truncateLabel(description, 48)
		pdf.CellFormat(col1, 6, description, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+unitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	if purchase.Tax != nil {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(col1+col2+col3, 6, "Impuestos:", "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+purchase.Tax.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, "$"+total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

// truncateLabel shortens s to at most max runes, appending an ellipsis.
// Descriptions carry accented characters, so the cut must land on a rune
// boundary rather than a byte offset.
func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
