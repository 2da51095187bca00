package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type Generator interface {
	GenerateQuotation(data QuotationData) (string, error)
}

type QuotationGenerator struct {
	RootDir string
}

type QuotationData struct {
	LeadID      int
	CompanyName string
	City        string
	Address     string
	PhoneNo     string
	Email       string
	Quotation   string
	Products    []ProductLine
	CreatedAt   time.Time
	Filename    string
}

type ProductLine struct {
	Product  string
	Quantity int
}

func NewQuotationGenerator(rootDir string) *QuotationGenerator {
	return &QuotationGenerator{RootDir: filepath.Clean(rootDir)}
}

// GenerateQuotation renders a quotation document for a lead and returns the
// absolute path of the written PDF.
func (g *QuotationGenerator) GenerateQuotation(data QuotationData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("quotation_lead_%d.pdf", data.LeadID)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Quotation #%d", data.LeadID), false)
	pdf.SetAuthor("Sales CRM", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	// registered before any page so auto-broken pages get the footer too
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "QUOTATION", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	sub := fmt.Sprintf("No. Q-%06d  of  %s", data.LeadID, data.CreatedAt.Format("02.01.2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.sectionTitle(pdf, "Prospect")
	g.kvLine(pdf, "Company", data.CompanyName)
	g.kvLine(pdf, "City", data.City)
	g.kvLine(pdf, "Address", data.Address)
	g.kvLine(pdf, "Phone", data.PhoneNo)
	g.kvLine(pdf, "Email", data.Email)
	pdf.Ln(2)
	g.hr(pdf)

	if len(data.Products) > 0 {
		g.sectionTitle(pdf, "Products")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(120, 7, "Product", "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, "Quantity", "1", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, p := range data.Products {
			pdf.CellFormat(120, 7, p.Product, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 7, fmt.Sprintf("%d", p.Quantity), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
		g.hr(pdf)
	}

	g.sectionTitle(pdf, "Quoted amount")
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 6, data.Quotation, "", "L", false)

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func (g *QuotationGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *QuotationGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *QuotationGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *QuotationGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename)
	return filepath.Join(g.RootDir, filename), nil
}
