package parser

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/mkarimov/vulnrep/internal/models"
)

// rawFinding mirrors models.Finding with pointer fields for every
// required attribute so absence is distinguishable from a zero value.
type rawFinding struct {
	TemplateID       *string  `json:"template-id"`
	TemplateURL      string   `json:"template-url"`
	Info             *rawInfo `json:"info"`
	Type             *string  `json:"type"`
	Host             *string  `json:"host"`
	MatchedAt        *string  `json:"matched-at"`
	ExtractedResults []string `json:"extracted-results"`
	IP               string   `json:"ip"`
	Timestamp        *string  `json:"timestamp"`
	CurlCommand      string   `json:"curl-command"`
	MatcherStatus    *bool    `json:"matcher-status"`
}

type rawInfo struct {
	Name           *string                `json:"name"`
	Author         []string               `json:"author"`
	Tags           []string               `json:"tags"`
	Description    string                 `json:"description"`
	Reference      []string               `json:"reference"`
	Severity       *string                `json:"severity"`
	Classification *models.Classification `json:"classification"`
	Remediation    string                 `json:"remediation"`
}

// decodeFinding unmarshals one JSONL line into the validated domain
// model. It collects every field-level problem and joins them into a
// single error so a diagnostic names all failures at once.
func decodeFinding(line []byte) (models.Finding, error) {
	var raw rawFinding
	if err := json.Unmarshal(line, &raw); err != nil {
		// Well-formed JSON but wrong field types (e.g. a number where
		// a string belongs) is a schema problem, not a decode problem.
		return models.Finding{}, err
	}

	var fieldErrs []string
	requireString := func(name string, v *string) string {
		if v == nil {
			fieldErrs = append(fieldErrs, "missing required field "+name)
			return ""
		}
		return *v
	}

	f := models.Finding{
		TemplateID:       requireString("template-id", raw.TemplateID),
		TemplateURL:      raw.TemplateURL,
		Type:             requireString("type", raw.Type),
		Host:             requireString("host", raw.Host),
		MatchedAt:        requireString("matched-at", raw.MatchedAt),
		ExtractedResults: raw.ExtractedResults,
		IP:               raw.IP,
		Timestamp:        requireString("timestamp", raw.Timestamp),
		CurlCommand:      raw.CurlCommand,
	}

	if raw.MatcherStatus == nil {
		fieldErrs = append(fieldErrs, "missing required field matcher-status")
	} else {
		f.MatcherStatus = *raw.MatcherStatus
	}

	if raw.Info == nil {
		fieldErrs = append(fieldErrs, "missing required field info")
	} else {
		f.Info = models.FindingInfo{
			Name:           requireString("info.name", raw.Info.Name),
			Author:         raw.Info.Author,
			Tags:           raw.Info.Tags,
			Description:    raw.Info.Description,
			Reference:      raw.Info.Reference,
			Classification: raw.Info.Classification,
			Remediation:    raw.Info.Remediation,
		}

		if raw.Info.Severity == nil {
			fieldErrs = append(fieldErrs, "missing required field info.severity")
		} else if sev, err := models.ParseSeverity(*raw.Info.Severity); err != nil {
			fieldErrs = append(fieldErrs, "info.severity: "+err.Error())
		} else {
			f.Info.Severity = sev
		}
	}

	if len(fieldErrs) > 0 {
		return models.Finding{}, errors.New(strings.Join(fieldErrs, "; "))
	}

	return f, nil
}
