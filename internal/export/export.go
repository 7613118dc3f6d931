// Package export renders emission reports as CSV, JSON or PDF for sharing
// outside the dashboard.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jung-kurt/gofpdf"

	"github.com/enact-eco/enact/internal/carbon"
	"github.com/enact-eco/enact/internal/storage"
)

// Report is the exportable view of an emission period.
type Report struct {
	GeneratedAt    time.Time             `json:"generated_at"`
	PeriodDays     int                   `json:"period_days"`
	Summaries      []carbon.DailySummary `json:"summaries"`
	TotalGrams     float64               `json:"total_grams"`
	TotalEnergyKWh float64               `json:"total_energy_kwh"`
	EcoScore       int                   `json:"eco_score"`
	Rating         string                `json:"rating"`
	Equivalent     string                `json:"equivalent"`
}

// BuildReport aggregates the last N days (or the full history) into a
// report ready for any of the writers.
func BuildReport(store *storage.EmissionLog, days int, allHistory bool) (Report, error) {
	var (
		summaries []carbon.DailySummary
		err       error
	)
	if allHistory {
		summaries, err = store.HistorySummaries(0)
	} else {
		summaries, err = store.RecentSummaries(days)
	}
	if err != nil {
		return Report{}, fmt.Errorf("build report: %w", err)
	}

	report := Report{
		GeneratedAt: time.Now(),
		PeriodDays:  len(summaries),
		Summaries:   summaries,
	}
	for _, s := range summaries {
		report.TotalGrams += s.EmissionsGrams
		report.TotalEnergyKWh += s.EnergyKWh
	}
	report.EcoScore = carbon.ComputeEcoScore(summaries)
	report.Rating = carbon.ScoreRating(report.EcoScore)
	report.Equivalent = carbon.EquivalencyFor(report.TotalGrams).String()
	return report, nil
}

// WriteCSV writes the per-day rows followed by a totals row.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "emissions_grams", "energy_kwh", "activity_count"}); err != nil {
		return err
	}
	for _, s := range r.Summaries {
		row := []string{
			s.Date,
			strconv.FormatFloat(s.EmissionsGrams, 'f', 6, 64),
			strconv.FormatFloat(s.EnergyKWh, 'f', 9, 64),
			strconv.Itoa(s.ActivityCount),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	total := []string{
		"total",
		strconv.FormatFloat(r.TotalGrams, 'f', 6, 64),
		strconv.FormatFloat(r.TotalEnergyKWh, 'f', 9, 64),
		"",
	}
	if err := cw.Write(total); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WritePDF renders a one-page report: headline figures followed by the
// per-day table.
func WritePDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Digital Carbon Footprint Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", r.GeneratedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %d days", r.PeriodDays))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Eco Score: %d/100 (%s)", r.EcoScore, r.Rating))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total emissions: %.2f g CO2 (%s)", r.TotalGrams, r.Equivalent))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total energy: %.6f kWh", r.TotalEnergyKWh))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(40, 7, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(45, 7, "Emissions (g)", "1", 0, "R", false, 0, "")
	pdf.CellFormat(45, 7, "Energy (kWh)", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Activities", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, s := range r.Summaries {
		pdf.CellFormat(40, 7, s.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, fmt.Sprintf("%.4f", s.EmissionsGrams), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 7, fmt.Sprintf("%.7f", s.EnergyKWh), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, strconv.Itoa(s.ActivityCount), "1", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}
