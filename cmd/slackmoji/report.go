package main

import (
	"encoding/json"
	"os"

	"github.com/fwojciec/slackmoji"
)

// Report is the JSON document written by --report.
type Report struct {
	Written  int             `json:"written"`
	Bytes    int             `json:"bytes"`
	Failures []ReportFailure `json:"failures"`
}

// ReportFailure describes one failed emoji.
type ReportFailure struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

// NewReport builds a report from a batch. Failures keep input order.
func NewReport(batch *slackmoji.BatchResult) *Report {
	report := &Report{
		Written:  batch.Written(),
		Bytes:    batch.Bytes(),
		Failures: []ReportFailure{},
	}
	for _, r := range batch.Results {
		if !r.Failed() {
			continue
		}
		report.Failures = append(report.Failures, ReportFailure{
			Name:  r.Pair.Name,
			URL:   r.Pair.URL,
			Code:  slackmoji.ErrorCode(r.Err),
			Error: r.Err.Error(),
		})
	}
	return report
}

func writeReport(path string, batch *slackmoji.BatchResult) error {
	data, err := json.MarshalIndent(NewReport(batch), "", "  ")
	if err != nil {
		return slackmoji.Errorf(slackmoji.EINTERNAL, "encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return slackmoji.Errorf(slackmoji.EWRITE, "write report %s: %w", path, err)
	}
	return nil
}
