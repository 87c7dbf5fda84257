package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/david/civic-connect/internal/ai"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		summary string
		details string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Turn grievances into formal complaints",
		Long: `Classifies a single grievance given with --summary/--details, or one
grievance per stdin line written as "summary|details".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()

			var complaints []ai.FormalComplaint
			if cmd.Flags().Changed("summary") || cmd.Flags().Changed("details") {
				complaints = append(complaints, ai.ClassifyAt(strings.TrimSpace(summary), strings.TrimSpace(details), now))
			} else {
				var err error
				complaints, err = classifyLines(cmd.InOrStdin(), now)
				if err != nil {
					return err
				}
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), complaints)
			}
			writeTable(cmd.OutOrStdout(), complaints)
			return nil
		},
	}

	cmd.Flags().StringVar(&summary, "summary", "", "grievance summary")
	cmd.Flags().StringVar(&details, "details", "", "grievance details")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// classifyLines reads "summary|details" lines, skipping blank ones.
func classifyLines(r io.Reader, now time.Time) ([]ai.FormalComplaint, error) {
	var out []ai.FormalComplaint
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		summary, details, _ := strings.Cut(line, "|")
		out = append(out, ai.ClassifyAt(strings.TrimSpace(summary), strings.TrimSpace(details), now))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return out, nil
}

func writeJSON(w io.Writer, complaints []ai.FormalComplaint) error {
	if complaints == nil {
		complaints = []ai.FormalComplaint{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(complaints)
}

func writeTable(w io.Writer, complaints []ai.FormalComplaint) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Subject", "Category", "Department", "Keywords", "Created"})
	for _, fc := range complaints {
		t.AppendRow(table.Row{fc.Subject, fc.Category, fc.Department, strings.Join(fc.Keywords, ", "), fc.CreatedAt})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", len(complaints)})
	t.Render()
}
