package itunes

import (
	"encoding/json"
	"fmt"

	"github.com/mmcdole/storesearch/internal/domain"
)

// decodeResults parses a search response body. A body that is not a search
// response fails; individual entries that fail to decode are skipped and
// counted.
func decodeResults(body []byte) ([]domain.SearchResult, int, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	if resp.Results == nil {
		return nil, 0, fmt.Errorf("%w: missing results array", domain.ErrDecode)
	}

	entries := *resp.Results
	results := make([]domain.SearchResult, 0, len(entries))
	skipped := 0
	for _, raw := range entries {
		var dto resultDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			skipped++
			continue
		}
		results = append(results, mapResult(dto))
	}
	return results, skipped, nil
}

// mapResult converts an API entry to a domain result
func mapResult(d resultDTO) domain.SearchResult {
	r := domain.SearchResult{
		ID:         d.TrackID,
		Name:       d.TrackName,
		Artist:     d.ArtistName,
		Kind:       d.Kind,
		Genre:      d.PrimaryGenreName,
		Currency:   d.Currency,
		ImageSmall: d.ArtworkURL60,
		ImageLarge: d.ArtworkURL100,
		StoreURL:   d.TrackViewURL,
	}

	if r.ID == 0 {
		r.ID = d.CollectionID
	}
	if r.Name == "" {
		r.Name = d.CollectionName
	}
	if r.StoreURL == "" {
		r.StoreURL = d.CollectionViewURL
	}
	if r.Genre == "" && len(d.Genres) > 0 {
		r.Genre = d.Genres[0]
	}
	// Collections (albums) have no kind, only a wrapper type
	if r.Kind == "" && d.WrapperType == "collection" {
		r.Kind = "album"
	}

	switch {
	case d.TrackPrice != nil:
		r.Price = *d.TrackPrice
	case d.CollectionPrice != nil:
		r.Price = *d.CollectionPrice
	case d.Price != nil:
		r.Price = *d.Price
	}
	if r.Price < 0 {
		// Pre-orders and unavailable items report -1
		r.Price = 0
	}

	return r
}
