package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"sort"
	"sync"

	"github.com/gocolly/colly/v2"
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
		base     string
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:          "linkcheck",
		Short:        "Crawl a running instance and report broken pages",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := crawl(base, maxDepth)
			if err != nil {
				return err
			}
			writeTable(cmd.OutOrStdout(), results)
			if n := countBroken(results); n > 0 {
				return fmt.Errorf("%d broken page(s)", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "http://localhost:8080", "root URL to start crawling from")
	cmd.Flags().IntVar(&maxDepth, "depth", 3, "maximum link depth")
	return cmd
}

type result struct {
	URL    string
	Status int
	Err    string
}

func (r result) broken() bool {
	return r.Err != "" || r.Status < 200 || r.Status >= 400
}

// crawl visits every same-host page reachable from base.
func crawl(base string, maxDepth int) ([]result, error) {
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", base)
	}

	c := colly.NewCollector(
		colly.AllowedDomains(u.Hostname()),
		colly.MaxDepth(maxDepth),
	)

	var (
		mu      sync.Mutex
		results = map[string]result{}
	)
	record := func(r result) {
		mu.Lock()
		defer mu.Unlock()
		results[r.URL] = r
	}

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		link := e.Request.AbsoluteURL(e.Attr("href"))
		if link == "" {
			return
		}
		lu, err := url.Parse(link)
		if err != nil || (lu.Scheme != "http" && lu.Scheme != "https") {
			return
		}
		_ = e.Request.Visit(link)
	})
	c.OnResponse(func(r *colly.Response) {
		record(result{URL: r.Request.URL.String(), Status: r.StatusCode})
	})
	c.OnError(func(r *colly.Response, err error) {
		record(result{URL: r.Request.URL.String(), Status: r.StatusCode, Err: err.Error()})
	})

	if err := c.Visit(u.String()); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", base, err)
	}
	c.Wait()

	out := make([]result, 0, len(results))
	for _, r := range results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out, nil
}

func countBroken(results []result) int {
	n := 0
	for _, r := range results {
		if r.broken() {
			n++
		}
	}
	return n
}

func writeTable(w io.Writer, results []result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"URL", "Status", "Error"})
	for _, r := range results {
		t.AppendRow(table.Row{r.URL, r.Status, r.Err})
	}
	t.AppendFooter(table.Row{"Broken", countBroken(results), ""})
	t.Render()
}
