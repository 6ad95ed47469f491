package commands

import (
	"errors"
	"path/filepath"

	"git.home.luguber.info/inful/pagesmith/internal/config"
	ferrors "git.home.luguber.info/inful/pagesmith/internal/foundation/errors"
	"git.home.luguber.info/inful/pagesmith/internal/templates"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force    bool   `help:"Overwrite an existing configuration file"`
	Template string `help:"Directory to write the starter template into (empty to skip)" default:"template" type:"path"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	return RunInit(g, root.Config, i.Template, i.Force)
}

// RunInit writes an example configuration and, when templateDir is set, a
// starter template. Existing template files are kept.
func RunInit(g *Global, configPath, templateDir string, force bool) error {
	if err := config.Init(configPath, force); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "failed to write configuration").
			WithContext("path", configPath).
			Build()
	}
	g.Say("init_completed", configPath)

	if templateDir == "" {
		return nil
	}
	if _, err := templates.Scaffold(templateDir); err != nil && !errors.Is(err, templates.ErrFileExists) {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write starter template").
			WithContext("path", templateDir).
			Build()
	}
	g.Say("scaffold_completed", filepath.Clean(templateDir))
	return nil
}
