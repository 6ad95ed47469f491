package compiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/pagesmith/internal/markdown"
	"git.home.luguber.info/inful/pagesmith/internal/version"
)

// ReportFile is written at the output root after a successful compile.
const ReportFile = "build-report.json"

// Outcome is the final status of a compile.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// StageResult is the result of one stage.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

// StageRecord times one stage.
type StageRecord struct {
	State      State       `json:"state"`
	DurationMS float64     `json:"duration_ms"`
	Result     StageResult `json:"result"`
}

// PageRecord describes one compiled page.
type PageRecord struct {
	Source      string `json:"source"`
	Output      string `json:"output"`
	Template    string `json:"template"`
	Fingerprint string `json:"fingerprint"`
	// Changed is false when the previous report holds the same fingerprint.
	Changed  bool               `json:"changed"`
	Headings []markdown.Heading `json:"headings,omitempty"`
	Links    []string           `json:"links,omitempty"`
}

// Report captures one compile run.
type Report struct {
	SchemaVersion int           `json:"schema_version"`
	Version       string        `json:"version"`
	Start         time.Time     `json:"start"`
	End           time.Time     `json:"end"`
	Outcome       Outcome       `json:"outcome"`
	Stages        []StageRecord `json:"stages"`
	Files         int           `json:"files"`
	Pages         []PageRecord  `json:"pages"`
	Artifacts     []string      `json:"artifacts"`
	Assets        int           `json:"assets"`
	Unchanged     int           `json:"unchanged"`
	Error         string        `json:"error,omitempty"`
}

func newReport() *Report {
	return &Report{
		SchemaVersion: 1,
		Version:       version.Resolved(),
		Start:         time.Now(),
		Stages:        []StageRecord{},
		Pages:         []PageRecord{},
		Artifacts:     []string{},
	}
}

// Duration is the wall time of the compile.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("files=%d pages=%d artifacts=%d assets=%d unchanged=%d duration=%s outcome=%s",
		r.Files, len(r.Pages), len(r.Artifacts), r.Assets, r.Unchanged, r.Duration().Truncate(time.Millisecond), r.Outcome)
}

func (r *Report) recordStage(s State, d time.Duration, res StageResult) {
	r.Stages = append(r.Stages, StageRecord{State: s, DurationMS: float64(d.Microseconds()) / 1000, Result: res})
}

func (r *Report) finish(err error) {
	r.End = time.Now()
	switch {
	case err == nil:
		r.Outcome = OutcomeSuccess
	case errors.Is(err, errCanceled):
		r.Outcome = OutcomeCanceled
		r.Error = err.Error()
	default:
		r.Outcome = OutcomeFailed
		r.Error = err.Error()
	}
}

// Persist writes the report into root atomically.
func (r *Report) Persist(root string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	path := filepath.Join(root, ReportFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp report json: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename json: %w", err)
	}
	return nil
}

// LoadReport reads a report written by Persist.
func LoadReport(root string) (*Report, error) {
	data, err := os.ReadFile(filepath.Join(root, ReportFile))
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ReportFile, err)
	}
	return &r, nil
}

// fingerprints maps source name to fingerprint for the pages of r.
func (r *Report) fingerprints() map[string]string {
	out := make(map[string]string, len(r.Pages))
	for _, p := range r.Pages {
		out[p.Source] = p.Fingerprint
	}
	return out
}
