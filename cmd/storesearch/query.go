package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/storesearch/internal/domain"
	"github.com/mmcdole/storesearch/internal/service"
	"github.com/mmcdole/storesearch/internal/tui/components"
	"github.com/mmcdole/storesearch/internal/tui/styles"
)

// errSearchFailed is reported when the store could not be reached or understood
var errSearchFailed = errors.New(components.StoreErrorText)

// defaultTableWidth is used when stdout is not a terminal
const defaultTableWidth = 120

var queryCmd = &cobra.Command{
	Use:   "query <term>...",
	Short: "Search once and print the results",
	Long: `Search the store and print the sorted results as a table.

Examples:
  storesearch query beatles
  storesearch query -c software minecraft
  storesearch query -c 3 dune --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringP("category", "c", "", "all, music, software, ebooks (or 0-3)")
	queryCmd.Flags().Bool("json", false, "output as JSON")
	queryCmd.Flags().IntP("limit", "n", 0, "print at most n results (0 = all)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	categoryFlag, _ := cmd.Flags().GetString("category")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	limit, _ := cmd.Flags().GetInt("limit")

	category := defaultCategory()
	if categoryFlag != "" {
		c, err := domain.ParseCategory(categoryFlag)
		if err != nil {
			return err
		}
		category = c
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	history, closeHistory, err := openHistory()
	if err != nil {
		return err
	}
	defer closeHistory()

	session := service.NewSearchSession(newClient(), logger)
	defer session.Close()

	results, err := searchOnce(ctx, session, strings.Join(args, " "), category)
	if err != nil {
		return err
	}

	if history != nil {
		if err := history.Record(session.Query(), category, len(results)); err != nil {
			logger.Warn("failed to record history", "error", err)
		}
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	if len(results) == 0 {
		fmt.Fprintln(out, components.NothingFoundText)
		return nil
	}
	fmt.Fprintln(out, renderResultsTable(results, outputWidth(out)))
	return nil
}

// searchOnce runs one search with the calling goroutine as the session owner
func searchOnce(ctx context.Context, session *service.SearchSession, term string, category domain.Category) ([]domain.SearchResult, error) {
	var ok bool
	if !session.PerformSearch(term, category, func(success bool) { ok = success }) {
		return nil, errors.New("search term is empty")
	}
	if err := session.Wait(ctx); err != nil {
		return nil, err
	}
	if !ok {
		return nil, errSearchFailed
	}
	return domain.ResultList(session.State()), nil
}

// outputWidth returns the terminal width, or a default when w is not a terminal
func outputWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultTableWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTableWidth
	}
	return width
}

// renderResultsTable renders results with one row each
func renderResultsTable(results []domain.SearchResult, width int) string {
	header := lipgloss.NewStyle().Foreground(styles.StorePink).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{strconv.Itoa(i + 1), r.Name, r.ArtistText(), r.Type(), r.PriceText()}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.DimGray)).
		Headers("#", "NAME", "ARTIST", "TYPE", "PRICE").
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	return t.Render()
}
