package report

import (
	"bytes"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"propel_backend/internal/models"
)

// Renderer превращает запись об инспекции в PDF-документ
type Renderer interface {
	Render(property *models.Property) ([]byte, error)
}

// PDFRenderer - реализация поверх wkhtmltopdf: сначала HTML из
// шаблона, затем конвертация внешним бинарем.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(property *models.Property) ([]byte, error) {
	html, err := BuildReportHTML(property)
	if err != nil {
		return nil, err
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, err
	}

	pdfg.Dpi.Set(300)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, err
	}

	return pdfg.Bytes(), nil
}
