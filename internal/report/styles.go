package report

import "strconv"

// Font sizes (points), mirroring the document's visual hierarchy.
const (
	fontTitle      = 28
	fontSection    = 18
	fontHeading    = 14
	fontSubheading = 12
	fontBody       = 10
	fontSmall      = 8
	fontFooter     = 7
)

// Page layout (millimetres, letter paper).
const (
	pageMargin   = 25.4
	contentWidth = 215.9 - 2*pageMargin
)

// severityColors holds the badge/heading color per severity.
var severityColors = map[string]string{
	"critical": "DC2626",
	"high":     "EA580C",
	"medium":   "CA8A04",
	"low":      "2563EB",
	"info":     "6B7280",
}

// severityBGColors holds the pale background tint per severity block.
var severityBGColors = map[string]string{
	"critical": "FEF2F2",
	"high":     "FFF7ED",
	"medium":   "FEFCE8",
	"low":      "EFF6FF",
	"info":     "F9FAFB",
}

// Branding palette.
const (
	colorDarkBG        = "1E293B"
	colorAccent        = "3B82F6"
	colorLightGrey     = "F1F5F9"
	colorBorderGrey    = "E2E8F0"
	colorTextPrimary   = "0F172A"
	colorTextSecondary = "475569"
	colorTextMuted     = "94A3B8"
)

// hexRGB converts a 6-digit hex color to its RGB components.
func hexRGB(hex string) (int, int, int) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}
