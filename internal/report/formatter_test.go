package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/mobile-money-etl/internal/domain"
	"github.com/tirasundara/mobile-money-etl/internal/report"
)

func sampleReport() domain.RunReport {
	summary := domain.NewSummaryMetrics()
	summary.TotalInput = 3
	summary.Accepted = 2
	summary.Rejected = 1
	summary.RejectedByReason[domain.ReasonDuplicateTransactionID] = 1
	summary.TotalAmount = decimal.NewFromInt(2500)
	summary.AverageAmount = decimal.NewFromInt(1250)
	summary.TotalFees = decimal.NewFromInt(15)
	summary.AverageFee = decimal.RequireFromString("7.5")
	summary.TotalNetAmount = decimal.NewFromInt(2485)
	summary.ByCategory["Transfer"] = 1
	summary.ByCategory["Payment"] = 1
	summary.QualityScore = 66.67

	started := time.Date(2023, time.January, 1, 8, 0, 0, 0, time.UTC)

	return domain.RunReport{
		RunID:      "run-1",
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Millisecond),
		InputPath:  "in.csv",
		OutputPath: "out.csv",
		Summary:    summary,
		Rejections: []domain.RejectionRecord{
			{Line: 3, TransID: "MA001F", Reason: domain.ReasonDuplicateTransactionID, Field: domain.ColTransID, Message: "seen before"},
		},
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	formatter := report.NewJSONFormatter(false)

	data, err := formatter.Format(sampleReport())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}

	if decoded["run_id"] != "run-1" {
		t.Errorf("Expected run_id run-1, got %v", decoded["run_id"])
	}

	summary := decoded["summary"].(map[string]any)
	if summary["total_fees"] != "15" {
		t.Errorf("Expected total_fees \"15\", got %v", summary["total_fees"])
	}

	if formatter.FileExtension() != "json" {
		t.Errorf("Expected json extension, got %s", formatter.FileExtension())
	}
}

func TestJSONFormatter_EmptyRejections(t *testing.T) {
	r := sampleReport()
	r.Rejections = nil

	data, err := report.NewJSONFormatter(false).Format(r)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.Contains(string(data), `"rejections":[]`) {
		t.Errorf("Expected an empty rejections array, got %s", data)
	}
}

func TestTextFormatter_Format(t *testing.T) {
	data, err := report.NewTextFormatter().Format(sampleReport())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	text := string(data)
	for _, want := range []string{
		"ETL run run-1",
		"Took:   1.5s",
		"66.67%",
		"Total fees",
		"15.00",
		"7.50",
		"DuplicateTransactionID",
		"MA001F",
		"Payment",
		"Transfer",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected text report to contain %q\n%s", want, text)
		}
	}

	if !strings.Contains(text, "EmptyName") {
		t.Errorf("Expected zero-count reasons in the breakdown\n%s", text)
	}
}

func TestTextFormatter_NoRejections(t *testing.T) {
	r := sampleReport()
	r.Summary = domain.NewSummaryMetrics()
	r.Summary.TotalInput = 3
	r.Summary.Accepted = 3
	r.Summary.QualityScore = 100
	r.Rejections = nil

	data, err := report.NewTextFormatter().Format(r)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "Rejections by reason") {
		t.Fatalf("Expected a reason breakdown heading\n%s", text)
	}

	for _, reason := range domain.Reasons {
		if !strings.Contains(text, string(reason)) {
			t.Errorf("Expected reason %s in the breakdown\n%s", reason, text)
		}
	}

	if strings.Contains(text, "Rejected records") {
		t.Errorf("Expected no rejected records table\n%s", text)
	}
}

func TestNewFormatter(t *testing.T) {
	for name, ext := range map[string]string{"json": "json", "": "json", "TEXT": "txt"} {
		f, err := report.NewFormatter(name, true)
		if err != nil {
			t.Errorf("Unexpected error for %q: %v", name, err)
			continue
		}
		if f.FileExtension() != ext {
			t.Errorf("Expected %s formatter for %q, got %s", ext, name, f.FileExtension())
		}
	}

	if _, err := report.NewFormatter("xml", false); err == nil {
		t.Errorf("Expected error for unknown format")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.json")

	if err := report.WriteFile(path, report.NewJSONFormatter(true), sampleReport()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	if !strings.Contains(string(data), `"run_id": "run-1"`) {
		t.Errorf("Expected pretty printed report, got %s", data)
	}
}
