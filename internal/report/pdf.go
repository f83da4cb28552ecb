// Package report renders a processed models.Report as a styled PDF
// document or a markdown summary.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/mkarimov/vulnrep/internal/charts"
	"github.com/mkarimov/vulnrep/internal/models"
)

// PDFOptions parameterises the PDF writer. The zero value produces a
// report with default chart sizes and no logo.
type PDFOptions struct {
	// LogoPath is an optional PNG/JPG drawn on the cover page.
	LogoPath string

	// Chart pixel dimensions; zero means the charts package defaults.
	BarWidth, BarHeight int
	DonutSize           int
}

// WritePDF renders the report to a PDF at outputPath and returns the
// written path. The report is read-only input; the caller can stat the
// returned path for the file size afterward.
func WritePDF(rep *models.Report, outputPath string, opts PDFOptions) (string, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(rep.Title, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		if pdf.PageNo() == 1 {
			return
		}
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", fontFooter)
		pdf.SetTextColor(hexRGB(colorTextMuted))
		pdf.CellFormat(0, 10, fmt.Sprintf("%s  |  Page %d of {nb}", rep.Title, pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})

	writeCoverPage(pdf, rep, opts.LogoPath)

	if err := writeSummaryPage(pdf, rep, opts); err != nil {
		return "", err
	}

	writeTopFindings(pdf, rep)
	writeFindingSections(pdf, rep)

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return "", fmt.Errorf("writing PDF to %s: %w", outputPath, err)
	}

	return outputPath, nil
}

func writeCoverPage(pdf *fpdf.Fpdf, rep *models.Report, logoPath string) {
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	// Full-bleed slate background
	pdf.SetFillColor(hexRGB(colorDarkBG))
	pdf.Rect(0, 0, pageW, pageH, "F")

	if logoPath != "" {
		// Centered logo above the title; height fixed, width scaled.
		pdf.ImageOptions(logoPath, pageW/2-20, 55, 40, 0, false,
			fpdf.ImageOptions{ReadDpi: true}, 0, "")
	}

	pdf.SetY(110)
	pdf.SetFont("Helvetica", "B", fontTitle)
	pdf.SetTextColor(255, 255, 255)
	pdf.MultiCell(0, 12, rep.Title, "", "C", false)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", fontHeading)
	pdf.SetTextColor(hexRGB(colorTextMuted))
	pdf.CellFormat(0, 8, "Security Scan Findings", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, rep.GeneratedAt.Format("January 2, 2006 15:04 MST"), "", 1, "C", false, 0, "")

	// Severity strip near the bottom of the cover
	pdf.SetY(pageH - 60)
	pdf.SetFont("Helvetica", "B", fontSubheading)
	cellW := contentWidth / float64(len(models.SeverityOrder))
	pdf.SetX(pageMargin)
	for _, sev := range models.SeverityOrder {
		pdf.SetTextColor(hexRGB(severityColors[string(sev)]))
		label := fmt.Sprintf("%d %s", rep.SeverityCounts[string(sev)], strings.ToUpper(string(sev)))
		pdf.CellFormat(cellW, 8, label, "", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
}

func writeSummaryPage(pdf *fpdf.Fpdf, rep *models.Report, opts PDFOptions) error {
	pdf.AddPage()
	sectionTitle(pdf, "Executive Summary")

	pdf.SetFont("Helvetica", "", fontBody)
	pdf.SetTextColor(hexRGB(colorTextPrimary))
	pdf.MultiCell(0, 6, fmt.Sprintf(
		"This report contains %d findings across %d unique targets.",
		rep.TotalFindings, len(rep.Targets)), "", "L", false)

	if rep.TimeRange.Earliest != "" {
		pdf.SetTextColor(hexRGB(colorTextSecondary))
		pdf.MultiCell(0, 6, fmt.Sprintf("Scan window: %s to %s",
			trimTimestamp(rep.TimeRange.Earliest), trimTimestamp(rep.TimeRange.Latest)), "", "L", false)
	}
	pdf.Ln(4)

	barPNG, err := charts.SeverityBarChart(rep.SeverityCounts, opts.BarWidth, opts.BarHeight)
	if err != nil {
		return err
	}
	donutPNG, err := charts.SeverityDonutChart(rep.SeverityCounts, opts.DonutSize)
	if err != nil {
		return err
	}

	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("severity-bar", imgOpts, bytes.NewReader(barPNG))
	pdf.RegisterImageOptionsReader("severity-donut", imgOpts, bytes.NewReader(donutPNG))

	y := pdf.GetY()
	pdf.ImageOptions("severity-bar", pageMargin, y, contentWidth*0.62, 0, false, imgOpts, 0, "")
	pdf.ImageOptions("severity-donut", pageMargin+contentWidth*0.64, y, contentWidth*0.34, 0, false, imgOpts, 0, "")
	pdf.SetY(y + 75)

	sectionTitle(pdf, "Targets")
	pdf.SetFont("Helvetica", "", fontBody)
	pdf.SetTextColor(hexRGB(colorTextPrimary))
	if len(rep.Targets) == 0 {
		pdf.MultiCell(0, 6, "No targets.", "", "L", false)
	}
	for _, target := range rep.Targets {
		pdf.MultiCell(0, 6, target, "", "L", false)
	}

	return nil
}

func writeTopFindings(pdf *fpdf.Fpdf, rep *models.Report) {
	if len(rep.TopCritical) == 0 {
		return
	}

	pdf.AddPage()
	sectionTitle(pdf, fmt.Sprintf("Top %d Findings", len(rep.TopCritical)))

	for i, f := range rep.TopCritical {
		pdf.SetFont("Helvetica", "B", fontSubheading)
		pdf.SetTextColor(hexRGB(severityColors[string(f.Info.Severity)]))
		header := fmt.Sprintf("%d. [%s] %s", i+1, strings.ToUpper(string(f.Info.Severity)), f.Info.Name)
		if score := f.EffectiveScore(); score > 0 {
			header += fmt.Sprintf("  (CVSS %.1f)", score)
		}
		pdf.MultiCell(0, 6, header, "", "L", false)

		pdf.SetFont("Helvetica", "", fontBody)
		pdf.SetTextColor(hexRGB(colorTextSecondary))
		pdf.MultiCell(0, 5, f.Host, "", "L", false)
		pdf.Ln(2)
	}
}

func writeFindingSections(pdf *fpdf.Fpdf, rep *models.Report) {
	for _, sev := range models.SeverityOrder {
		findings := rep.FindingsBySeverity[string(sev)]
		if len(findings) == 0 {
			continue
		}

		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", fontSection)
		pdf.SetTextColor(hexRGB(severityColors[string(sev)]))
		pdf.CellFormat(0, 10, fmt.Sprintf("%s Findings (%d)",
			strings.ToUpper(string(sev)), len(findings)), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		for _, f := range findings {
			writeFindingBlock(pdf, &f, string(sev))
		}
	}
}

// writeFindingBlock renders one finding as a tinted block with its
// metadata, description, remediation, and references.
func writeFindingBlock(pdf *fpdf.Fpdf, f *models.Finding, sev string) {
	pdf.SetFillColor(hexRGB(severityBGColors[sev]))
	pdf.SetDrawColor(hexRGB(colorBorderGrey))

	pdf.SetFont("Helvetica", "B", fontSubheading)
	pdf.SetTextColor(hexRGB(colorTextPrimary))
	pdf.MultiCell(0, 7, f.Info.Name, "", "L", true)

	pdf.SetFont("Helvetica", "", fontBody)
	pdf.SetTextColor(hexRGB(colorTextSecondary))
	pdf.MultiCell(0, 5, fmt.Sprintf("Template: %s   Type: %s", f.TemplateID, f.Type), "", "L", false)
	pdf.MultiCell(0, 5, "Host: "+f.Host, "", "L", false)
	if f.MatchedAt != "" && f.MatchedAt != f.Host {
		pdf.MultiCell(0, 5, "Matched at: "+f.MatchedAt, "", "L", false)
	}
	if c := f.Info.Classification; c != nil {
		var parts []string
		if len(c.CVEID) > 0 {
			parts = append(parts, strings.ToUpper(strings.Join(c.CVEID, ", ")))
		}
		if c.CVSSScore != nil {
			parts = append(parts, fmt.Sprintf("CVSS %.1f", *c.CVSSScore))
		}
		if c.CVSSMetrics != "" {
			parts = append(parts, c.CVSSMetrics)
		}
		if len(parts) > 0 {
			pdf.MultiCell(0, 5, strings.Join(parts, "   "), "", "L", false)
		}
	}

	if f.Info.Description != "" {
		pdf.SetTextColor(hexRGB(colorTextPrimary))
		pdf.MultiCell(0, 5, strings.TrimSpace(f.Info.Description), "", "L", false)
	}

	if f.Info.Remediation != "" {
		pdf.SetFont("Helvetica", "B", fontBody)
		pdf.SetTextColor(hexRGB(colorTextPrimary))
		pdf.CellFormat(0, 5, "Remediation", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", fontBody)
		pdf.MultiCell(0, 5, strings.TrimSpace(f.Info.Remediation), "", "L", false)
	}

	if len(f.Info.Reference) > 0 {
		pdf.SetFont("Helvetica", "", fontSmall)
		pdf.SetTextColor(hexRGB(colorAccent))
		for _, ref := range f.Info.Reference {
			pdf.MultiCell(0, 4, ref, "", "L", false)
		}
	}

	pdf.Ln(4)
}

func sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", fontSection)
	pdf.SetTextColor(hexRGB(colorTextPrimary))
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(hexRGB(colorBorderGrey))
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+contentWidth, pdf.GetY())
	pdf.Ln(3)
}

// trimTimestamp shortens an ISO-8601 timestamp to seconds precision
// for display. Raw values are preserved in the Report itself.
func trimTimestamp(ts string) string {
	if len(ts) > 19 {
		return ts[:19]
	}
	return ts
}
