package compiler

import (
	"errors"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/pagesmith/internal/logfields"
	"git.home.luguber.info/inful/pagesmith/internal/templates"
)

// stager writes a compile into <output>_stage and promotes it over the
// output directory.
type stager struct {
	outputDir string
	stageDir  string
}

func (s *stager) begin() error {
	stage := s.outputDir + "_stage"
	// A stage left behind by an interrupted compile is stale.
	if err := os.RemoveAll(stage); err != nil {
		return &IOError{Op: "clear stage", Path: stage, Err: err}
	}
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return &IOError{Op: "create stage", Path: stage, Err: err}
	}
	s.stageDir = stage
	slog.Debug("Initialized staging directory", slog.String("staging", stage), slog.String("final", s.outputDir))
	return nil
}

// write places content at rel inside the stage. An existing file yields
// templates.ErrFileExists.
func (s *stager) write(rel string, content []byte) error {
	if _, err := templates.WriteNew(s.stageDir, rel, content); err != nil {
		if errors.Is(err, templates.ErrFileExists) {
			return err
		}
		return &IOError{Op: "write", Path: rel, Err: err}
	}
	return nil
}

// promote swaps the stage in: the current output moves to <output>.prev,
// the stage is renamed to the output and the backup is removed.
func (s *stager) promote() error {
	if s.stageDir == "" {
		return &IOError{Op: "promote", Path: s.outputDir, Err: errors.New("no staging directory initialized")}
	}
	prev := s.outputDir + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		return &IOError{Op: "remove backup", Path: prev, Err: err}
	}

	if _, err := os.Stat(s.outputDir); err == nil {
		slog.Warn("Replacing existing output directory", logfields.Path(s.outputDir))
		if err := os.Rename(s.outputDir, prev); err != nil {
			return &IOError{Op: "backup output", Path: s.outputDir, Err: err}
		}
	}
	if err := os.Rename(s.stageDir, s.outputDir); err != nil {
		// Put the previous output back so a failed promote changes nothing.
		if _, statErr := os.Stat(prev); statErr == nil {
			_ = os.Rename(prev, s.outputDir)
		}
		return &IOError{Op: "promote", Path: s.outputDir, Err: err}
	}
	s.stageDir = ""

	if err := os.RemoveAll(prev); err != nil {
		slog.Warn("Failed to remove previous output", logfields.Path(prev), logfields.Error(err))
	}
	slog.Debug("Promoted staging directory", logfields.Path(s.outputDir))
	return nil
}

// abort removes the stage after a failed compile.
func (s *stager) abort() {
	if s.stageDir == "" {
		return
	}
	dir := s.stageDir
	s.stageDir = ""
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("Failed to remove staging directory after abort", logfields.Path(dir), logfields.Error(err))
		return
	}
	slog.Debug("Removed staging directory after abort", logfields.Path(dir))
}
