package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	StorePink  = lipgloss.Color("#FA2D55")
	StoreBlue  = lipgloss.Color("#0A84FF")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
)

// Pane frames
var (
	ActiveBorder   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(StorePink)
	InactiveBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(DimGray)
)

// Text
var (
	TitleStyle    = lipgloss.NewStyle().Foreground(White).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(LightGray)
	DimStyle      = lipgloss.NewStyle().Foreground(DimGray)
	AccentStyle   = lipgloss.NewStyle().Foreground(StorePink)
	LinkStyle     = lipgloss.NewStyle().Foreground(StoreBlue).Underline(true)
	ErrorStyle    = lipgloss.NewStyle().Foreground(Red)
	SuccessStyle  = lipgloss.NewStyle().Foreground(Green)
)

// Search bar category tabs
var (
	TabStyle       = lipgloss.NewStyle().Foreground(LightGray).Padding(0, 1)
	ActiveTabStyle = lipgloss.NewStyle().Foreground(White).Background(StorePink).Bold(true).Padding(0, 1)
)

// Result and history rows. The selected variants carry the row background
// so every segment of a highlighted row shares it.
var (
	RowStyle         = lipgloss.NewStyle().Foreground(LightGray)
	SelectedRowStyle = lipgloss.NewStyle().Foreground(White).Background(SlateLight)

	MatchHighlightStyle         = lipgloss.NewStyle().Foreground(StorePink).Bold(true)
	MatchHighlightSelectedStyle = MatchHighlightStyle.Background(SlateLight)
)

// Detail popup and store error alert
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(StorePink).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().Foreground(White).Bold(true).MarginBottom(1)

	AlertStyle = ModalStyle.BorderForeground(Red)

	// Price
	BadgeStyle = lipgloss.NewStyle().Foreground(White).Background(StorePink).Padding(0, 1)
	// Type label
	DimBadgeStyle = lipgloss.NewStyle().Foreground(LightGray).Background(SlateLight).Padding(0, 1)
)

// Help line
var (
	HelpKeyStyle  = lipgloss.NewStyle().Foreground(StorePink)
	HelpDescStyle = lipgloss.NewStyle().Foreground(DimGray)
)

// Grid tiles and page indicator
var (
	GridCellStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(DimGray).Padding(0, 1)
	GridCellSelectedStyle = GridCellStyle.BorderForeground(StorePink)

	PageDotStyle       = lipgloss.NewStyle().Foreground(DimGray)
	ActivePageDotStyle = lipgloss.NewStyle().Foreground(White)
)

// Loading row and in-results filter
var (
	SpinnerStyle      = lipgloss.NewStyle().Foreground(StorePink)
	FilterStyle       = lipgloss.NewStyle().Foreground(StorePink)
	FilterPromptStyle = FilterStyle.Bold(true)
)

// Truncate shortens s to width runes, ending in "..." when there is room
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// Pad right-pads s with spaces to width runes, cutting it if longer
func Pad(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

// Tone is how a row segment is emphasized
type Tone int

const (
	ToneNormal Tone = iota
	ToneDim
	ToneMatch // characters hit by the filter
)

// RowPart is one segment of a list row
type RowPart struct {
	Text string
	Tone Tone
}

func toneStyle(tone Tone, selected bool) lipgloss.Style {
	base := RowStyle
	if selected {
		base = SelectedRowStyle
	}
	switch tone {
	case ToneDim:
		return base.Foreground(DimGray)
	case ToneMatch:
		if selected {
			return MatchHighlightSelectedStyle
		}
		return MatchHighlightStyle
	default:
		return base
	}
}

// RenderListRow renders parts as one row of the given width with a one-cell
// margin each side. Each segment is styled on its own so ANSI resets inside the
// row don't drop the selected background.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	base := toneStyle(ToneNormal, selected)

	var b strings.Builder
	b.WriteString(base.Render(" "))
	used := 0
	for _, p := range parts {
		b.WriteString(toneStyle(p.Tone, selected).Render(p.Text))
		used += lipgloss.Width(p.Text)
	}
	if pad := width - used - 2; pad > 0 {
		b.WriteString(base.Render(strings.Repeat(" ", pad)))
	}
	b.WriteString(base.Render(" "))
	return b.String()
}

// HighlightParts splits text into parts, marking the runes that start at the
// matched byte offsets reported by the fuzzy matcher
func HighlightParts(text string, matched []int) []RowPart {
	if len(matched) == 0 {
		return []RowPart{{Text: text}}
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var parts []RowPart
	var run strings.Builder
	runTone := ToneNormal
	for pos, r := range text {
		tone := ToneNormal
		if hit[pos] {
			tone = ToneMatch
		}
		if run.Len() > 0 && tone != runTone {
			parts = append(parts, RowPart{Text: run.String(), Tone: runTone})
			run.Reset()
		}
		run.WriteRune(r)
		runTone = tone
	}
	if run.Len() > 0 {
		parts = append(parts, RowPart{Text: run.String(), Tone: runTone})
	}
	return parts
}
