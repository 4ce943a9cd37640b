// File: sfl.go
// Title: SFL Engine
// Description: High-level entry point that tokenizes SFL source and runs
//              the recognizer over it. Enforces the source size limit and
//              logs every check with its own check ID.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-05
// Modified: 2025-02-05
//
// Change History:
// - 2025-02-05 v0.1.0: Initial engine implementation

package sfl

import (
	"fmt"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/sfl/foundation/core/error"
	mdwlog "github.com/msto63/sfl/foundation/core/log"
	"github.com/msto63/sfl/foundation/sfl/checker"
	"github.com/msto63/sfl/foundation/sfl/lexer"
)

// DefaultMaxSourceBytes is the source size limit used when Options leaves
// MaxSourceBytes at zero
const DefaultMaxSourceBytes = 1 << 20

// Engine checks SFL programs. It holds no per-check state and is safe
// for concurrent use.
type Engine struct {
	logger  *mdwlog.Logger
	options Options
}

// Options configures the engine
type Options struct {
	// Logger for engine operations (optional, defaults to default logger)
	Logger *mdwlog.Logger

	// LexerMode selects the tokenizer (default: lexer.ModeLegacy)
	LexerMode lexer.Mode

	// MaxSourceBytes rejects larger sources (default: 1 MiB)
	MaxSourceBytes int
}

// New creates a new engine with the given options
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxSourceBytes == 0 {
		opts.MaxSourceBytes = DefaultMaxSourceBytes
	}
	if opts.MaxSourceBytes < 0 {
		return nil, mdwerror.New(fmt.Sprintf("invalid source size limit %d", opts.MaxSourceBytes)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("sfl.New")
	}
	if opts.LexerMode != lexer.ModeLegacy && opts.LexerMode != lexer.ModeScanning {
		return nil, mdwerror.New(fmt.Sprintf("invalid lexer mode %d", int(opts.LexerMode))).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("sfl.New")
	}

	return &Engine{
		logger:  opts.Logger.WithField("component", "sfl-engine"),
		options: opts,
	}, nil
}

// Tokens returns the token sequence the engine would check
func (e *Engine) Tokens(source string) []lexer.Token {
	return lexer.Tokenize(source, e.options.LexerMode)
}

// Verify checks source and returns nil if the program is accepted.
// Rejections carry CodeRejected and wrap the *checker.Error, so
// checker.KindOf reports why. Oversized sources carry CodeInputTooLarge.
func (e *Engine) Verify(source string) error {
	checkID := uuid.NewString()
	logger := e.logger.WithField("check_id", checkID)

	if len(source) > e.options.MaxSourceBytes {
		err := mdwerror.New("source exceeds size limit").
			WithCode(mdwerror.CodeInputTooLarge).
			WithOperation("sfl.Verify").
			WithDetail("size", len(source)).
			WithDetail("limit", e.options.MaxSourceBytes)
		logger.WarnWithErr("Source rejected before tokenizing", err)
		return err
	}

	tokens := e.Tokens(source)
	logger.Debug("Source tokenized", mdwlog.Fields{
		"bytes":  len(source),
		"tokens": len(tokens),
		"lexer":  e.options.LexerMode.String(),
	})

	if err := checker.Check(tokens); err != nil {
		kind := checker.KindOf(err)
		logger.Debug("Program rejected", mdwlog.Fields{
			"verdict": "error",
			"kind":    kind.String(),
			"reason":  err.Error(),
		})
		return mdwerror.Wrap(err, "program rejected").
			WithCode(mdwerror.CodeRejected).
			WithOperation("sfl.Verify").
			WithDetail("check_id", checkID).
			WithDetail("kind", kind.String())
	}

	logger.Debug("Program accepted", mdwlog.Fields{"verdict": "ok"})
	return nil
}

// Check reports whether source is accepted
func (e *Engine) Check(source string) bool {
	return e.Verify(source) == nil
}

// defaultEngine cannot fail to build: the zero Options are valid
var defaultEngine, _ = New(Options{Logger: mdwlog.NewNop()})

// Verify checks source with the default engine
func Verify(source string) error {
	return defaultEngine.Verify(source)
}

// Check reports whether source is accepted by the default engine
func Check(source string) bool {
	return defaultEngine.Check(source)
}
