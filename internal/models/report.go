package models

import (
	"time"

	"github.com/google/uuid"
)

// TimeRange holds the earliest and latest raw timestamps seen in a
// finding set. Both fields are empty when the set is empty.
type TimeRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// Report is the processed aggregate consumed by the renderers.
// It is built once per pipeline run and never mutated afterward.
type Report struct {
	Title              string               `json:"title"`
	GeneratedAt        time.Time            `json:"generated_at"`
	TotalFindings      int                  `json:"total_findings"`
	Targets            []string             `json:"targets"`
	SeverityCounts     map[string]int       `json:"severity_counts"`
	FindingsBySeverity map[string][]Finding `json:"findings_by_severity"`
	TopCritical        []Finding            `json:"top_critical"`
	TimeRange          TimeRange            `json:"scan_time_range"`
}

// ReportMeta contains metadata about one report generation run,
// persisted to the history store.
type ReportMeta struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	InputPath      string         `json:"input_path"`
	OutputPath     string         `json:"output_path"`
	GeneratedAt    time.Time      `json:"generated_at"`
	TotalFindings  int            `json:"total_findings"`
	SeverityCounts map[string]int `json:"severity_counts,omitempty"`
	TargetCount    int            `json:"target_count"`
	FileSize       int64          `json:"file_size"`
}

// NewReportMeta creates a history record for a completed report run.
func NewReportMeta(rep *Report, inputPath, outputPath string, fileSize int64) *ReportMeta {
	return &ReportMeta{
		ID:             uuid.New().String(),
		Title:          rep.Title,
		InputPath:      inputPath,
		OutputPath:     outputPath,
		GeneratedAt:    rep.GeneratedAt,
		TotalFindings:  rep.TotalFindings,
		SeverityCounts: rep.SeverityCounts,
		TargetCount:    len(rep.Targets),
		FileSize:       fileSize,
	}
}
