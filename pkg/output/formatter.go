package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/ritzau/pivot-slicer/pkg/keys"
	"github.com/ritzau/pivot-slicer/pkg/model"
	"github.com/ritzau/pivot-slicer/pkg/weights"
)

// barWidth is the width of a full bar in characters
const barWidth = 24

// Report is what the ranking report prints
type Report struct {
	Source   string
	Data     *model.ChartData
	State    model.ChartState
	Weights  *model.AllWeights
	Settings model.Settings
	// Top limits the items printed per section
	Top int
}

// PrintReport prints the ranked sections of a chart with colors
func PrintReport(w io.Writer, r Report) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)
	faint := color.New(color.Faint)

	title := "Pivot Slicer - " + string(r.Data.Format)
	bold.Fprintln(w, title)
	bold.Fprintln(w, strings.Repeat("=", len(title)))
	fmt.Fprintf(w, "Source: %s\n", r.Source)
	fmt.Fprintf(w, "Nodes: %d  View: %s\n", len(r.Data.Nodes), r.State.View)

	if len(r.Weights.SelectedItemWeights) > 0 {
		labels := make([]string, 0, len(r.Weights.SelectedItemWeights))
		for _, sel := range r.Weights.SelectedItemWeights {
			labels = append(labels, itemLabel(sel, r.Settings))
		}
		green.Fprintf(w, "Selected: %s\n", strings.Join(labels, ", "))
	}
	fmt.Fprintln(w)

	if len(r.Weights.SectionOrder) == 0 {
		yellow.Fprintln(w, "Nothing to rank.")
		return
	}

	for _, section := range r.Weights.SectionOrder {
		sw := r.Weights.SectionWeights[section]
		cyan.Fprintf(w, "%s", section)
		faint.Fprintf(w, "  %s\n", valueLabel(sw))

		items := r.Weights.ItemWeights[section]
		shown := items
		if r.Top > 0 && len(shown) > r.Top {
			shown = shown[:r.Top]
		}
		maxWeight := r.Weights.SectionMaxItemWeights[section]
		for _, item := range shown {
			fmt.Fprintf(w, "  %-28s ", truncate(itemLabel(item, r.Settings), 28))
			yellow.Fprint(w, bar(item.Weight, maxWeight))
			fmt.Fprintf(w, " %s\n", valueLabel(item))
		}
		if hidden := len(items) - len(shown); hidden > 0 {
			faint.Fprintf(w, "  (+%d more)\n", hidden)
		}
		fmt.Fprintln(w)
	}
}

func itemLabel(w model.Weight, settings model.Settings) string {
	if strings.Contains(w.TargetKey, keys.Separator) {
		return keys.DisplayLabel(w.TargetKey, settings.NodeTypeLabelLength)
	}
	return w.TargetKey
}

func valueLabel(w model.Weight) string {
	if w.DisplayLabel != "" {
		return w.DisplayLabel
	}
	return weights.FormatValue(w.Weight)
}

// bar renders weight relative to the largest weight of its section
func bar(weight, maxWeight float64) string {
	if maxWeight <= 0 || weight <= 0 {
		return strings.Repeat(" ", barWidth)
	}
	n := int(math.Round(weight / maxWeight * barWidth))
	if n < 1 {
		n = 1
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("█", n) + strings.Repeat(" ", barWidth-n)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
