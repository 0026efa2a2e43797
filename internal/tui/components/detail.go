package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/storesearch/internal/domain"
	"github.com/mmcdole/storesearch/internal/tui/styles"
)

// Detail is the popup describing one result
type Detail struct {
	result  domain.SearchResult
	visible bool
	width   int
	height  int
}

// NewDetail creates a hidden detail popup
func NewDetail() Detail {
	return Detail{}
}

// Show displays r
func (d *Detail) Show(r domain.SearchResult) {
	d.result = r
	d.visible = true
}

// Hide closes the popup
func (d *Detail) Hide() {
	d.visible = false
}

// IsVisible returns true if the popup is open
func (d Detail) IsVisible() bool {
	return d.visible
}

// Result returns the displayed result
func (d Detail) Result() domain.SearchResult {
	return d.result
}

// SetSize updates the area the popup is centered in
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the component
func (d Detail) View() string {
	if !d.visible {
		return ""
	}

	modalWidth := min(max(d.width*2/3, 40), 72)
	contentWidth := modalWidth - 6
	r := d.result

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(styles.Truncate(r.Name, contentWidth)))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(r.ArtistText(), contentWidth)))
	b.WriteString("\n\n")

	b.WriteString(detailField("Type", styles.DimBadgeStyle.Render(r.Type())))
	if r.Genre != "" {
		b.WriteString(detailField("Genre", r.Genre))
	}
	b.WriteString(detailField("Price", styles.BadgeStyle.Render(r.PriceText())))
	b.WriteString("\n")

	if r.StoreURL != "" {
		b.WriteString(styles.LinkStyle.Render(styles.Truncate(r.StoreURL, contentWidth)))
		b.WriteString("\n\n")
		b.WriteString(helpLine([][2]string{{"o", "open in store"}, {"y", "copy link"}, {"esc", "close"}}))
	} else {
		b.WriteString(helpLine([][2]string{{"esc", "close"}}))
	}

	modal := styles.ModalStyle.
		Width(modalWidth).
		Render(b.String())

	return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, modal)
}

func detailField(label, value string) string {
	return styles.DimStyle.Render(styles.Pad(label, 7)) + " " + value + "\n"
}

// helpLine renders key/description pairs like "o open · esc close"
func helpLine(pairs [][2]string) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = styles.HelpKeyStyle.Render(p[0]) + " " + styles.HelpDescStyle.Render(p[1])
	}
	return strings.Join(parts, styles.HelpDescStyle.Render(" · "))
}
