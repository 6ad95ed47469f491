package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/styles"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/pagesmith/internal/util/pathutil"
)

var (
	extensionPattern = regexp.MustCompile(`^\.[a-z0-9]+$`)
	changeFreqs      = []any{"always", "hourly", "daily", "weekly", "monthly", "yearly", "never"}
)

func init() {
	// Report validation errors by their pagesmith.yaml key.
	validation.ErrorTag = "yaml"
}

// Validate checks the whole configuration. Errors name the offending key.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Site),
		validation.Field(&c.Content),
		validation.Field(&c.Template),
		validation.Field(&c.Output),
		validation.Field(&c.Render),
		validation.Field(&c.Build),
		validation.Field(&c.Artifacts),
		validation.Field(&c.Server),
		validation.Field(&c.Logging),
	); err != nil {
		return err
	}
	if pathutil.Contains(c.Output.Dir, c.Content.Dir) {
		return errors.New("output.dir must not be or contain content.dir: promoting a build replaces the whole output directory")
	}
	if c.Template.Dir != "" && pathutil.Contains(c.Output.Dir, c.Template.Dir) {
		return errors.New("output.dir must not be or contain template.dir: promoting a build replaces the whole output directory")
	}
	return nil
}

func (s SiteConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Domain, is.Domain),
		validation.Field(&s.BaseURL, is.URL),
		validation.Field(&s.Language, validation.Required, validation.By(languageTag)),
	)
}

func (c ContentConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.Extensions, validation.Required, validation.Each(validation.Match(extensionPattern))),
	)
}

func (t TemplateConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Subdir,
			validation.When(t.Repository == "", validation.Empty.Error("requires template.repository")),
			validation.By(relativePath)),
		validation.Field(&t.Stylesheet, validation.Length(0, 2048)),
		validation.Field(&t.Retries, validation.Min(0), validation.Max(10)),
		validation.Field(&t.Backoff, validation.In("fixed", "linear", "exponential")),
	)
}

func (o OutputConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Dir, validation.Required),
	)
}

func (r RenderConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.HighlightStyle, validation.By(highlightStyle)),
	)
}

func (b BuildConfig) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Workers, validation.Min(0), validation.Max(256)),
	)
}

func (a ArtifactsConfig) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.DefaultChangeFreq, validation.Required, validation.In(changeFreqs...)),
	)
}

func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Addr, validation.Required),
		validation.Field(&s.RebuildEvery, validation.By(minDuration(time.Second))),
	)
}

func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)),
		validation.Field(&l.Format, validation.In(LogFormatText, LogFormatJSON)),
	)
}

// RebuildInterval parses server.rebuild_every; zero disables periodic rebuilds.
func (s ServerConfig) RebuildInterval() time.Duration {
	d, err := time.ParseDuration(s.RebuildEvery)
	if err != nil {
		return 0
	}
	return d
}

func languageTag(value any) error {
	s, _ := value.(string)
	if _, err := language.Parse(s); err != nil {
		return fmt.Errorf("not a BCP 47 language tag: %q", s)
	}
	return nil
}

func highlightStyle(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, ok := styles.Registry[strings.ToLower(s)]; !ok {
		return fmt.Errorf("unknown highlight style %q", s)
	}
	return nil
}

func relativePath(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if filepath.IsAbs(s) || strings.HasPrefix(filepath.Clean(s), "..") {
		return errors.New("must be a relative path inside the repository")
	}
	return nil
}

func minDuration(lowest time.Duration) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q", s)
		}
		if d < lowest {
			return fmt.Errorf("must be at least %s", lowest)
		}
		return nil
	}
}
