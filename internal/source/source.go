// Package source supplies document geometry. Two providers implement the
// same interface: a high-fidelity provider that feeds per-character
// positions through the text reconstructor, and a degraded provider that
// works from pre-tokenized plain text when geometry is unavailable.
package source

import (
	"fmt"

	"github.com/pdfsift/pdfsift/internal/document"
	"github.com/pdfsift/pdfsift/internal/reconstruct"
)

// Provider names accepted by the factory
const (
	ProviderCharGeometry = "chargeo"
	ProviderPlainText    = "plaintext"
)

// Provider produces a reconstructed document model from a source file
type Provider interface {
	// Name identifies the provider in logs and configuration
	Name() string
	// Extract loads the file and returns its line/word model. Errors mean
	// the source is unreadable; they are reported per file and never abort
	// a batch.
	Extract(path string) (*document.Document, error)
}

// Config selects and tunes a provider
type Config struct {
	// Provider is one of ProviderCharGeometry, ProviderPlainText
	Provider string
	// Reconstruct configures spacing correction for the char-geometry path
	Reconstruct reconstruct.Config
	// SmartSpacing enables regex spacing repairs on the plain-text path
	SmartSpacing bool
	// MaxFileSize rejects oversized inputs before parsing
	MaxFileSize int64
}

// NewProvider builds the provider named by the configuration
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "", ProviderCharGeometry:
		return NewCharGeometryProvider(cfg), nil
	case ProviderPlainText:
		return NewPlainTextProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unknown geometry provider: %q", cfg.Provider)
	}
}
