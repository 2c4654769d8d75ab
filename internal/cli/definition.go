package cli

import (
	"errors"

	"go.uber.org/zap"

	"github.com/roach88/kore/internal/definition"
	"github.com/roach88/kore/internal/loader"
	"github.com/roach88/kore/internal/rtconfig"
)

// loadPreprocessed loads a definition file and runs both passes.
func loadPreprocessed(path string, log *zap.Logger) (*definition.Definition, error) {
	d, err := loader.LoadDefinition(path, definition.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := d.Preprocess(); err != nil {
		return nil, err
	}
	return d, nil
}

// loadRuntime returns the default constants, or those of path unified
// with the defaults.
func loadRuntime(path string) (rtconfig.Config, error) {
	if path == "" {
		return rtconfig.Default(), nil
	}
	return rtconfig.Load(path)
}

// errorCode maps errors from the loading packages to their codes.
func errorCode(err error) string {
	var loadErr *loader.LoadError
	var preErr *definition.PreconditionError
	var cfgErr *rtconfig.ConfigError
	switch {
	case errors.As(err, &loadErr):
		return loadErr.Code
	case errors.As(err, &preErr):
		return preErr.Code
	case errors.As(err, &cfgErr):
		return cfgErr.Code
	}
	return ErrCodeGeneric
}

// exitCodeFor classifies missing input as a command error and everything
// else as a failure of the input itself.
func exitCodeFor(err error) int {
	switch errorCode(err) {
	case loader.ErrCodeNotFound, rtconfig.ErrCodeNotFound:
		return ExitCommandError
	}
	return ExitFailure
}

// failWith reports err with its own code.
func failWith(f *OutputFormatter, err error) error {
	return f.Fail(exitCodeFor(err), errorCode(err), err.Error())
}
