package commands

import (
	ferrors "git.home.luguber.info/inful/pagesmith/internal/foundation/errors"
)

func configError(err error) error {
	return ferrors.ConfigError("invalid configuration").WithCause(err).Build()
}

func filesystemError(err error, path string) error {
	return ferrors.WrapError(err, ferrors.CategoryFileSystem, "workspace setup failed").
		WithContext("path", path).
		Build()
}
