// README: Two-stage airport code resolution: exact directory lookup, then a pluggable name corrector.
package search

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// NameCorrector maps free text onto one of known, or returns an error.
type NameCorrector interface {
	CorrectName(ctx context.Context, candidate string, known []string) (string, error)
}

// ChainCorrector asks each corrector in turn and returns the first answer.
type ChainCorrector []NameCorrector

func (c ChainCorrector) CorrectName(ctx context.Context, candidate string, known []string) (string, error) {
	var errs []error
	for _, nc := range c {
		if nc == nil {
			continue
		}
		name, err := nc.CorrectName(ctx, candidate, known)
		if err == nil && name != "" {
			return name, nil
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return "", errors.New("no corrector produced a name")
	}
	return "", errors.Join(errs...)
}

type Resolver struct {
	dir       *Directory
	corrector NameCorrector
	logger    *zap.Logger
}

// NewResolver builds a resolver; corrector may be nil for exact-only lookups.
func NewResolver(dir *Directory, corrector NameCorrector, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{dir: dir, corrector: corrector, logger: logger}
}

// Resolve returns the airport code for text, or "" when it cannot be resolved.
func (r *Resolver) Resolve(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if code, ok := r.dir.Lookup(text); ok {
		return code
	}
	if r.corrector == nil {
		return ""
	}
	corrected, err := r.corrector.CorrectName(ctx, text, r.dir.KnownNames())
	if err != nil {
		r.logger.Info("airport name not corrected", zap.String("input", text), zap.Error(err))
		return ""
	}
	code, _ := r.dir.Lookup(corrected)
	return code
}
