package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/asaidimu/go-lister/core/query"
	"github.com/asaidimu/go-lister/core/schema"
	"github.com/asaidimu/go-lister/core/search"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	cardValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("32"))

	metaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	targetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
)

// formatNumber prints whole numbers without decimals and the rest with two.
func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func renderRecords(w io.Writer, title string, fields []string, records []schema.Record) {
	fmt.Fprintln(w, titleStyle.Render(title))
	if len(records) == 0 {
		fmt.Fprintln(w, noDataStyle.Render("No records match the current filters."))
		return
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, len(fields))
		for i, field := range fields {
			if v, ok := record[field]; ok {
				if n, isNumber := schema.Number(v); isNumber {
					row[i] = formatNumber(n)
				} else {
					row[i] = query.ToText(v)
				}
			}
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(metaStyle).
		Headers(fields...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

// renderStats draws one card per statistic, in the order of specs.
func renderStats(w io.Writer, specs []query.AggregateSpec, stats map[string]float64) {
	cards := make([]string, 0, len(specs))
	for _, spec := range specs {
		value, ok := stats[spec.Name]
		if !ok {
			continue
		}
		text := formatNumber(value)
		if spec.Type == query.AggregationTypePercentage {
			text += "%"
		}
		cards = append(cards, cardStyle.Render(metaStyle.Render(spec.Name)+"\n"+cardValueStyle.Render(text)))
	}
	if len(cards) == 0 {
		return
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
}

func renderEntries(w io.Writer, q string, entries []search.Entry) {
	if strings.TrimSpace(q) == "" {
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, noDataStyle.Render(fmt.Sprintf("No results found for %q", q)))
		return
	}
	for i, entry := range entries {
		line := fmt.Sprintf("%d. %s %s %s", i+1, entry.Icon, entry.Title, metaStyle.Render(entry.Category))
		if entry.HasTarget() {
			line += " " + targetStyle.Render(entry.Target)
		}
		fmt.Fprintln(w, line)
	}
}

// printMetrics writes the counters and histogram counts gathered so far.
func printMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	fmt.Fprintln(w, titleStyle.Render("metrics"))
	for _, family := range families {
		for _, m := range family.GetMetric() {
			var value string
			switch {
			case m.GetCounter() != nil:
				value = formatNumber(m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				value = fmt.Sprintf("%d observations", m.GetHistogram().GetSampleCount())
			default:
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			name := family.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			fmt.Fprintf(w, "%s %s\n", metaStyle.Render(name), value)
		}
	}
	return nil
}
