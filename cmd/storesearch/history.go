package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mmcdole/storesearch/internal/domain"
	"github.com/mmcdole/storesearch/internal/tui/styles"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent searches",
	Long: `List recent searches, newest first.

Examples:
  storesearch history
  storesearch history -n 5
  storesearch history --suggest jack
  storesearch history clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all recent searches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		history, closeHistory, err := openHistory()
		if err != nil {
			return err
		}
		defer closeHistory()

		if history == nil {
			return fmt.Errorf("history is disabled")
		}
		if err := history.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyCmd.Flags().IntP("limit", "n", 0, "show at most n entries (0 = all)")
	historyCmd.Flags().String("suggest", "", "only entries fuzzily matching this text")
	historyCmd.Flags().Bool("json", false, "output as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	suggest, _ := cmd.Flags().GetString("suggest")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	history, closeHistory, err := openHistory()
	if err != nil {
		return err
	}
	defer closeHistory()

	if history == nil {
		return fmt.Errorf("history is disabled")
	}

	var entries []domain.HistoryEntry
	if suggest != "" {
		entries = history.Suggest(suggest, limit)
	} else {
		entries = history.Recent(limit)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No recent searches")
		return nil
	}
	fmt.Fprintln(out, renderHistoryTable(entries))
	return nil
}

func renderHistoryTable(entries []domain.HistoryEntry) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			e.Query,
			e.Category.Label(),
			strconv.Itoa(e.ResultCount),
			e.SearchedAt.Local().Format("2006-01-02 15:04"),
		}
	}

	header := lipgloss.NewStyle().Foreground(styles.StorePink).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.DimGray)).
		Headers("QUERY", "CATEGORY", "RESULTS", "SEARCHED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Render()
}
