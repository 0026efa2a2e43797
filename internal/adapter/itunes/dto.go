package itunes

import "encoding/json"

// searchResponse is the top-level search payload. Results are kept raw so a
// malformed entry can be skipped without failing the whole batch. A nil
// Results means the key was missing or null.
type searchResponse struct {
	ResultCount int                `json:"resultCount"`
	Results     *[]json.RawMessage `json:"results"`
}

// resultDTO is a single entry of the results array. Tracks, collections and
// apps use different name/price/url fields; the mapper picks whichever is set.
type resultDTO struct {
	WrapperType       string   `json:"wrapperType,omitempty"`
	Kind              string   `json:"kind,omitempty"`
	TrackID           int64    `json:"trackId,omitempty"`
	CollectionID      int64    `json:"collectionId,omitempty"`
	TrackName         string   `json:"trackName,omitempty"`
	CollectionName    string   `json:"collectionName,omitempty"`
	ArtistName        string   `json:"artistName,omitempty"`
	TrackPrice        *float64 `json:"trackPrice,omitempty"`
	CollectionPrice   *float64 `json:"collectionPrice,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	Currency          string   `json:"currency,omitempty"`
	ArtworkURL60      string   `json:"artworkUrl60,omitempty"`
	ArtworkURL100     string   `json:"artworkUrl100,omitempty"`
	TrackViewURL      string   `json:"trackViewUrl,omitempty"`
	CollectionViewURL string   `json:"collectionViewUrl,omitempty"`
	PrimaryGenreName  string   `json:"primaryGenreName,omitempty"`
	Genres            []string `json:"genres,omitempty"`
}
