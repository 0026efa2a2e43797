package domain

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display fallbacks for missing catalog data
const (
	UnknownArtist = "Unknown"
	FreePrice     = "Free"
)

// SearchResult is one catalog item returned by the store search API
type SearchResult struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Artist     string  `json:"artist"`
	Kind       string  `json:"kind"` // raw API kind, e.g. "song", "software"
	Genre      string  `json:"genre"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"` // ISO 4217 code
	ImageSmall string  `json:"image_small"`
	ImageLarge string  `json:"image_large"`
	StoreURL   string  `json:"store_url"`
}

// kindLabels maps API kind values to display labels
var kindLabels = map[string]string{
	"album":         "Album",
	"audiobook":     "Audio Book",
	"book":          "Book",
	"ebook":         "E-Book",
	"feature-movie": "Movie",
	"music-video":   "Music Video",
	"podcast":       "Podcast",
	"software":      "App",
	"song":          "Song",
	"tv-episode":    "TV Episode",
}

// Type returns the display label for the result's kind
func (r SearchResult) Type() string {
	if label, ok := kindLabels[r.Kind]; ok {
		return label
	}
	return r.Kind
}

// ArtistText returns the artist name, or "Unknown" when the API sent none
func (r SearchResult) ArtistText() string {
	if r.Artist == "" {
		return UnknownArtist
	}
	return r.Artist
}

// PriceText returns "Free" for zero-priced items, otherwise the price
// formatted in the item's currency
func (r SearchResult) PriceText() string {
	if r.Price == 0 {
		return FreePrice
	}
	return FormatPrice(r.Price, r.Currency)
}

// FormatPrice formats an amount with its currency symbol directly before the
// number, e.g. "$1.29" or "€4.99". Unknown currency codes fall back to
// "<amount> <code>".
func FormatPrice(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return strings.TrimSpace(fmt.Sprintf("%.2f %s", amount, code))
	}
	p := message.NewPrinter(language.English)
	// The formatter separates symbol and amount with a space
	return strings.Join(strings.Fields(p.Sprint(currency.Symbol(unit.Amount(amount)))), "")
}

// SortByName sorts results by name in ascending byte order (case-sensitive).
// Equal names keep their response order.
func SortByName(results []SearchResult) {
	slices.SortStableFunc(results, func(a, b SearchResult) int {
		return strings.Compare(a.Name, b.Name)
	})
}
