package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/storesearch/internal/domain"
)

const storeBody = `{"resultCount":3,"results":[
	{"kind":"song","trackName":"Zebra","artistName":"Herd","trackPrice":0.99,"currency":"USD"},
	{"kind":"song","trackName":"Apple","trackPrice":0,"currency":"USD"},
	{"kind":"ebook","trackName":42}
]}`

// setupCLITest writes a config pointing at a fake store and resets flag state
func setupCLITest(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := fmt.Sprintf(`store:
  base_url: %s
  requests_per_minute: 0
history:
  enabled: true
  path: %s
logging:
  file: %s
`, srv.URL, filepath.Join(dir, "data"), filepath.Join(dir, "storesearch.log"))
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfgFile = ""
	verbose = false
	queryCmd.Flags().Set("json", "false")
	queryCmd.Flags().Set("category", "")
	queryCmd.Flags().Set("limit", "0")
	historyCmd.Flags().Set("json", "false")
	historyCmd.Flags().Set("suggest", "")
	historyCmd.Flags().Set("limit", "0")
	configInitCmd.Flags().Set("force", "false")
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func storeHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}
}

func TestQueryJSON(t *testing.T) {
	var gotQuery string
	cfgPath := setupCLITest(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		storeHandler(storeBody)(w, r)
	})

	out, err := execute(t, "query", "--config", cfgPath, "--json", "-c", "music", "fruit", "salad")
	require.NoError(t, err)

	var results []domain.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results), out)
	require.Len(t, results, 2, "undecodable entry is skipped")
	assert.Equal(t, "Apple", results[0].Name)
	assert.Equal(t, "Zebra", results[1].Name)

	assert.Contains(t, gotQuery, "term=fruit%20salad")
	assert.Contains(t, gotQuery, "entity=musicTrack")
	assert.Contains(t, gotQuery, "limit=200")
}

func TestQueryTable(t *testing.T) {
	cfgPath := setupCLITest(t, storeHandler(storeBody))

	out, err := execute(t, "query", "--config", cfgPath, "fruit")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Apple")
	assert.Contains(t, out, "Unknown")
	assert.Contains(t, out, "Free")
	assert.Less(t, strings.Index(out, "Apple"), strings.Index(out, "Zebra"))
}

func TestQueryNothingFound(t *testing.T) {
	cfgPath := setupCLITest(t, storeHandler(`{"resultCount":0,"results":[]}`))

	out, err := execute(t, "query", "--config", cfgPath, "qwzxv")
	require.NoError(t, err)
	assert.Equal(t, "Nothing found\n", out)
}

func TestQueryStoreError(t *testing.T) {
	cfgPath := setupCLITest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := execute(t, "query", "--config", cfgPath, "fruit")
	assert.ErrorIs(t, err, errSearchFailed)
}

func TestQueryBadCategory(t *testing.T) {
	cfgPath := setupCLITest(t, storeHandler(storeBody))

	_, err := execute(t, "query", "--config", cfgPath, "-c", "movies", "fruit")
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestHistoryCommands(t *testing.T) {
	cfgPath := setupCLITest(t, storeHandler(storeBody))

	_, err := execute(t, "query", "--config", cfgPath, "--json", "fruit")
	require.NoError(t, err)
	queryCmd.Flags().Set("json", "false")

	out, err := execute(t, "history", "--config", cfgPath, "--json")
	require.NoError(t, err)
	var entries []domain.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries), out)
	require.Len(t, entries, 1)
	assert.Equal(t, "fruit", entries[0].Query)
	assert.Equal(t, 2, entries[0].ResultCount)
	historyCmd.Flags().Set("json", "false")

	out, err = execute(t, "history", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "fruit")

	out, err = execute(t, "history", "clear", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared")

	out, err = execute(t, "history", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No recent searches")
}

func TestConfigInit(t *testing.T) {
	setupCLITest(t, storeHandler(storeBody))
	path := filepath.Join(t.TempDir(), "new", "config.yaml")

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init", "--config", path)
	assert.Error(t, err, "refuses to overwrite")

	out, err = execute(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "https://itunes.apple.com/search")
}

func TestRenderResultsTable(t *testing.T) {
	out := renderResultsTable([]domain.SearchResult{
		{Name: "Abbey Road", Artist: "The Beatles", Kind: "album", Price: 9.99, Currency: "USD"},
	}, 100)
	assert.Contains(t, out, "Abbey Road")
	assert.Contains(t, out, "Album")
	assert.Contains(t, out, "9.99")
}
