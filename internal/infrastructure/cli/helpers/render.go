package helpers

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/doeshing/texturepro/internal/domain"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.Faint)
	okColor      = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// RenderParameters prints the four parameters, one per line.
func RenderParameters(out io.Writer, params domain.Parameters) {
	for _, key := range domain.ParameterKeys {
		value := params.Get(key)
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(out, "%s %s\n", labelColor.Sprintf("%-16s", key.Label()+":"), value)
	}
}

// RenderRandomization prints a randomization result and where it came from.
func RenderRandomization(out io.Writer, result domain.Randomization) {
	if result.Source == domain.SourceModel {
		headingColor.Fprintln(out, "AI suggestion")
	} else {
		headingColor.Fprintln(out, "Local selection")
		if result.Reason != "" {
			warnColor.Fprintf(out, "model suggestion unavailable (%s)\n", strings.ReplaceAll(result.Reason, "_", " "))
		}
	}
	RenderParameters(out, result.Parameters)
}

// RenderRecord prints a generated prompt with its metadata.
func RenderRecord(out io.Writer, rec domain.SelectionRecord) {
	headingColor.Fprintln(out, "Generated prompt")
	fmt.Fprintln(out, rec.PromptText)
	if rec.HasMetadata() {
		fmt.Fprintln(out)
		renderMetadata(out, rec.Title, rec.Keywords)
	}
}

// RenderCustomRecord prints a custom prompt with its metadata.
func RenderCustomRecord(out io.Writer, rec domain.CustomRecord) {
	headingColor.Fprintln(out, "Custom prompt")
	fmt.Fprintln(out, rec.PromptText)
	fmt.Fprintln(out)
	renderMetadata(out, rec.Title, rec.Keywords)
}

func renderMetadata(out io.Writer, title string, keywords []string) {
	fmt.Fprintf(out, "%s %s\n", labelColor.Sprint("Title:"), title)
	fmt.Fprintf(out, "%s %s\n", labelColor.Sprintf("Keywords (%d):", len(keywords)), strings.Join(keywords, ", "))
}

// RenderHistory lists generated prompts, newest first, numbered from 1.
func RenderHistory(out io.Writer, log domain.HistoryLog) {
	for i, rec := range log {
		when := rec.Time()
		fmt.Fprintf(out, "%2d. %s %s\n", i+1,
			when.Format(domain.ClockFormat),
			labelColor.Sprintf("(%s)", humanize.Time(when)))
		fmt.Fprintf(out, "    %s / %s / %s / %s\n",
			rec.MaterialType, rec.PrimaryColorTone, rec.SecondaryColorTone, rec.LightingStyle)
		if rec.Title != "" {
			fmt.Fprintf(out, "    %s\n", okColor.Sprint(rec.Title))
		}
	}
}

// RenderCustomHistory lists custom prompts, newest first, numbered from 1.
func RenderCustomHistory(out io.Writer, log domain.CustomLog) {
	for i, rec := range log {
		when := rec.Time()
		fmt.Fprintf(out, "%2d. %s %s\n", i+1,
			when.Format(domain.ClockFormat),
			labelColor.Sprintf("(%s)", humanize.Time(when)))
		fmt.Fprintf(out, "    %s\n", Truncate(rec.PromptText, 72))
		fmt.Fprintf(out, "    %s\n", okColor.Sprint(rec.Title))
	}
}

// RenderHealthReport prints one line per doctor check.
func RenderHealthReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		status := strings.ToUpper(string(check.Status))
		switch check.Status {
		case domain.HealthOK:
			status = okColor.Sprint(status)
		case domain.HealthWarn:
			status = warnColor.Sprint(status)
		default:
			status = errorColor.Sprint(status)
		}
		fmt.Fprintf(out, "[%s] %s - %s\n", status, check.Name, check.Details)
	}
}

// RenderCacheEntries lists cached metadata, newest first.
func RenderCacheEntries(out io.Writer, entries []domain.CacheEntry) {
	for _, entry := range entries {
		fmt.Fprintf(out, "%s | %s | %s\n",
			entry.Key[:min(12, len(entry.Key))],
			humanize.Time(entry.CreatedAt),
			Truncate(entry.Metadata.Title, 60))
	}
}

// Truncate shortens s to n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
