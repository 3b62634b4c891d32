// Package render draws dashboard pages to a terminal from store snapshots.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rewired-gh/lookingglass/internal/store"
	"github.com/rewired-gh/lookingglass/internal/views"
)

// Icons used throughout the pages
var Icons = struct {
	Error     string
	Loading   string
	Up        string
	Down      string
	Flat      string
	Bullet    string
	Separator string
}{
	Error:     "✗",
	Loading:   "⏳",
	Up:        "↑",
	Down:      "↓",
	Flat:      "→",
	Bullet:    "•",
	Separator: "─",
}

// Colors used throughout the pages
var Colors = struct {
	Success func(a ...interface{}) string
	Error   func(a ...interface{}) string
	Warning func(a ...interface{}) string
	Info    func(a ...interface{}) string
	Heading func(a ...interface{}) string
	Muted   func(a ...interface{}) string
}{
	Success: color.New(color.FgGreen).SprintFunc(),
	Error:   color.New(color.FgRed).SprintFunc(),
	Warning: color.New(color.FgYellow).SprintFunc(),
	Info:    color.New(color.FgCyan).SprintFunc(),
	Heading: color.New(color.FgWhite, color.Bold).SprintFunc(),
	Muted:   color.New(color.FgHiBlack).SprintFunc(),
}

const ruleWidth = 48

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, Colors.Heading(title))
	fmt.Fprintln(w, Colors.Muted(strings.Repeat(Icons.Separator, ruleWidth)))
}

// loadingLine writes the group's loading indicator and reports whether the
// group is in flight.
func loadingLine(w io.Writer, st store.State, g store.Group) bool {
	if !st.IsLoading(g) {
		return false
	}
	fmt.Fprintf(w, "%s %s\n", Icons.Loading, Colors.Info("Loading "+string(g)+"..."))
	return true
}

// sentiment colors a sentiment score by its bucket.
func sentiment(s float64) string {
	text := fmt.Sprintf("%+.2f", s)
	switch views.SentimentBucket(s) {
	case views.StrongPositive, views.MildPositive:
		return Colors.Success(text)
	case views.StrongNegative, views.MildNegative:
		return Colors.Error(text)
	default:
		return Colors.Muted(text)
	}
}

// intensity colors an intensity by its legend level.
func intensity(v float64) string {
	text := fmt.Sprintf("%.2f (%s)", v, views.IntensityLevel(v))
	switch views.IntensityLevel(v) {
	case "critical":
		return Colors.Error(text)
	case "high":
		return Colors.Warning(text)
	case "medium":
		return Colors.Info(text)
	default:
		return Colors.Success(text)
	}
}

func trendIcon(trend string) string {
	switch trend {
	case "increasing":
		return Colors.Error(Icons.Up)
	case "decreasing":
		return Colors.Success(Icons.Down)
	default:
		return Colors.Muted(Icons.Flat)
	}
}

func percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// bar draws a fixed-width bar for a value in [0,1].
func bar(v float64, width int) string {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	filled := int(v*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
