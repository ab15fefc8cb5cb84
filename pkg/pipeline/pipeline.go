// Package pipeline provides the compute → render pipeline for composer.
//
// The CLI and the HTTP API both go through this package so that a document
// produces the same layout and the same artifacts regardless of the entry
// point.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Compute: lay the tree out on its canvas, collecting warnings
//  2. Render: produce artifacts (JSON, SVG, PNG, PDF, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	doc, err := document.Load("card.toml")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, doc, pipeline.Options{Formats: []string{"svg", "json"}})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ossinsight/composer/pkg/compose"
	cerrors "github.com/ossinsight/composer/pkg/errors"
	"github.com/ossinsight/composer/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels, the widget card width.
	DefaultWidth = compose.CanvasWidth

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = compose.CanvasHeight

	// DefaultScale is the device pixel ratio used for PNG output.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// FormatNames returns the supported formats in a stable order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options. A zero Width or Height keeps the document's canvas.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Titles   bool     `json:"titles,omitempty"`   // Show widget titles in SVG previews
	Warnings bool     `json:"warnings,omitempty"` // List warnings in SVG previews
	Detailed bool     `json:"detailed,omitempty"` // Add sizing details to DOT labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	ID     string      `json:"-"` // Recorded in JSON output when set
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed layout.
	Layout render.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ContainerCount int
	WidgetCount    int
	WarningCount   int
	LayoutTime     time.Duration
	RenderTime     time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return cerrors.New(cerrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates the canvas overrides and sets defaults.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := cerrors.ValidateDimension("width", o.Width); err != nil {
		return err
	}
	return cerrors.ValidateDimension("height", o.Height)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "scale cannot be negative (got %g)", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// NeedsConverter reports whether any requested format goes through
// rsvg-convert.
func (o *Options) NeedsConverter() bool {
	return slices.Contains(o.Formats, FormatPNG) || slices.Contains(o.Formats, FormatPDF)
}
