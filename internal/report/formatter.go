package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/tirasundara/mobile-money-etl/internal/domain"
	"github.com/tirasundara/mobile-money-etl/pkg/fileutil"
)

// OutputFormatter defines the interface for formatting run reports
type OutputFormatter interface {
	Format(report domain.RunReport) ([]byte, error)
	FileExtension() string
}

// NewFormatter returns the formatter registered under name ("json" or "text")
func NewFormatter(name string, prettyPrint bool) (OutputFormatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return NewJSONFormatter(prettyPrint), nil
	case "text", "txt":
		return NewTextFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", name)
	}
}

// JSONFormatter formats run reports as JSON
type JSONFormatter struct {
	PrettyPrint bool
}

func NewJSONFormatter(prettyPrint bool) *JSONFormatter {
	return &JSONFormatter{
		PrettyPrint: prettyPrint,
	}
}

// Format implements the OutputFormatter interface for JSON
func (f *JSONFormatter) Format(report domain.RunReport) ([]byte, error) {
	if report.Rejections == nil {
		report.Rejections = []domain.RejectionRecord{}
	}

	if f.PrettyPrint {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

func (f *JSONFormatter) FileExtension() string {
	return "json"
}

// TextFormatter renders a human readable run summary
type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format implements the OutputFormatter interface for plain text
func (f *TextFormatter) Format(report domain.RunReport) ([]byte, error) {
	var sb strings.Builder
	m := report.Summary

	fmt.Fprintf(&sb, "ETL run %s\n", report.RunID)
	fmt.Fprintf(&sb, "Input:  %s\n", report.InputPath)
	fmt.Fprintf(&sb, "Output: %s\n", report.OutputPath)
	fmt.Fprintf(&sb, "Took:   %s\n\n", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total records\t%d\n", m.TotalInput)
	fmt.Fprintf(tw, "Accepted\t%d\n", m.Accepted)
	fmt.Fprintf(tw, "Rejected\t%d\n", m.Rejected)
	fmt.Fprintf(tw, "Data quality score\t%.2f%%\n", m.QualityScore)
	fmt.Fprintf(tw, "Total amount\t%s\n", m.TotalAmount.StringFixed(2))
	fmt.Fprintf(tw, "Average amount\t%s\n", m.AverageAmount.StringFixed(2))
	fmt.Fprintf(tw, "Total fees\t%s\n", m.TotalFees.StringFixed(2))
	fmt.Fprintf(tw, "Average fee\t%s\n", m.AverageFee.StringFixed(2))
	fmt.Fprintf(tw, "Total net amount\t%s\n", m.TotalNetAmount.StringFixed(2))
	if !m.EarliestStart.IsZero() {
		fmt.Fprintf(tw, "Date range\t%s to %s\n",
			m.EarliestStart.Format(time.DateTime), m.LatestStart.Format(time.DateTime))
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	writeReasons(&sb, m.RejectedByReason)
	writeBreakdown(&sb, "By transaction type", m.ByTransactionType)
	writeBreakdown(&sb, "By transaction category", m.ByCategory)
	writeBreakdown(&sb, "By amount category", m.ByAmountCategory)

	if len(report.Rejections) > 0 {
		sb.WriteString("\nRejected records\n")
		tw = tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  line\ttrans_id\treason\tfield\tmessage")
		for _, r := range report.Rejections {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\n", r.Line, r.TransID, r.Reason, r.Field, r.Message)
		}
		if err := tw.Flush(); err != nil {
			return nil, err
		}
	}

	return []byte(sb.String()), nil
}

func (f *TextFormatter) FileExtension() string {
	return "txt"
}

// writeReasons lists every rejection reason in validation order, zero counts included
func writeReasons(w io.Writer, byReason map[domain.Reason]int) {
	fmt.Fprintf(w, "\nRejections by reason\n")
	for _, reason := range domain.Reasons {
		fmt.Fprintf(w, "  %-24s %d\n", reason, byReason[reason])
	}
}

func writeBreakdown(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(w, "\n%s\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-20s %d\n", k, counts[k])
	}
}

// Write formats report and writes it to w
func Write(w io.Writer, f OutputFormatter, report domain.RunReport) error {
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

// WriteFile formats report and atomically replaces the file at path with it
func WriteFile(path string, f OutputFormatter, report domain.RunReport) error {
	return fileutil.WriteFileAtomic(path, func(w io.Writer) error {
		return Write(w, f, report)
	})
}
