// Package config loads rowdb settings from an optional CUE file.
//
// The file is unified with an embedded, closed #Config definition, so typos
// and out-of-range values are rejected with a CUE source position. Fields
// left out take their schema defaults.
//
// Example file:
//
//	max_pages: 10
//	database:  "./rows.db"
//	log_level: "debug"
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaCUE string

// Error codes for configuration failures.
const (
	ErrCodeRead    = "E201"
	ErrCodeParse   = "E202"
	ErrCodeInvalid = "E203"
)

// Config holds the settings for one rowdb process.
type Config struct {
	MaxPages int    `json:"max_pages"`
	Database string `json:"database"`
	LogLevel string `json:"log_level"`
}

// LoadError reports a configuration failure.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg, err := decode(cuecontext.New(), "{}", "default")
	if err != nil {
		// The embedded schema always accepts an empty struct.
		panic(fmt.Sprintf("config: default: %v", err))
	}
	return cfg
}

// Load reads and validates the CUE file at path. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("reading config: %v", err)}
	}

	return decode(cuecontext.New(), string(data), path)
}

// Parse validates CUE source held in memory. name is used in error positions.
func Parse(src, name string) (*Config, error) {
	return decode(cuecontext.New(), src, name)
}

func decode(ctx *cue.Context, src, name string) (*Config, error) {
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}

	user := ctx.CompileString(src, cue.Filename(name))
	if err := user.Err(); err != nil {
		return nil, convertCUEError(ErrCodeParse, err)
	}

	value := schema.LookupPath(cue.ParsePath("#Config")).Unify(user)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, convertCUEError(ErrCodeInvalid, err)
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return nil, convertCUEError(ErrCodeInvalid, err)
	}
	return &cfg, nil
}

// convertCUEError keeps the first CUE error and its position.
func convertCUEError(code string, err error) *LoadError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}
	first := errs[0]
	format, args := first.Msg()
	msg := fmt.Sprintf(format, args...)
	if path := first.Path(); len(path) > 0 {
		msg = fmt.Sprintf("%s: %s", strings.Join(path, "."), msg)
	}
	return &LoadError{Code: code, Message: msg, Pos: first.Position()}
}

// SlogLevel maps LogLevel onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
