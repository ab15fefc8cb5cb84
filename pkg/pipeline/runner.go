package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ossinsight/composer/pkg/document"
	"github.com/ossinsight/composer/pkg/layout"
	"github.com/ossinsight/composer/pkg/observability"
	"github.com/ossinsight/composer/pkg/render"
)

// Runner executes the pipeline. It holds no per-run state, so multiple
// goroutines can share one Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to the default logger.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete compute → render pipeline for a document.
func (r *Runner) Execute(ctx context.Context, doc *document.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	layoutStart := time.Now()
	l, err := r.ComputeDocument(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.ContainerCount, result.Stats.WidgetCount = doc.Root.Count()
	result.Stats.WarningCount = len(l.Warnings)

	r.Logger.Info("computed layout",
		"widgets", len(l.Widgets),
		"warnings", len(l.Warnings),
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderStart := time.Now()
	artifacts, err := r.Render(ctx, l, doc.Root, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeDocument lays out a document on its canvas. Non-zero opts.Width and
// opts.Height override the canvas.
func (r *Runner) ComputeDocument(ctx context.Context, doc *document.Document, opts Options) (render.Layout, error) {
	frame := doc.Canvas.Rect()
	if opts.Width > 0 {
		frame.Width = opts.Width
	}
	if opts.Height > 0 {
		frame.Height = opts.Height
	}
	source := doc.Source
	if source == "" {
		source = "document"
	}
	return r.Compute(ctx, doc.Root, frame, source, opts)
}

// Compute lays out an element tree inside frame. source identifies the tree
// in logs and observability events.
func (r *Runner) Compute(ctx context.Context, e layout.Element, frame layout.Rect, source string, opts Options) (render.Layout, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return render.Layout{}, err
	}
	if err := ctx.Err(); err != nil {
		return render.Layout{}, err
	}

	root := e.Build()
	containers, widgets := root.Count()
	hooks := observability.Layout()
	hooks.OnComputeStart(ctx, source, containers+widgets)

	start := time.Now()
	warnings := []layout.Warning{}
	placed, err := layout.Compute(root, frame,
		layout.WithLogger(opts.Logger.With("source", source)),
		layout.WithWarningHandler(func(w layout.Warning) {
			warnings = append(warnings, w)
			hooks.OnWarning(ctx, string(w.Kind), w.Path)
		}),
	)
	hooks.OnComputeComplete(ctx, source, len(placed), time.Since(start), err)
	if err != nil {
		return render.Layout{}, err
	}

	opts.Logger.Debug("layout computed",
		"source", source,
		"containers", containers,
		"widgets", len(placed),
		"frame", fmt.Sprintf("%gx%g", frame.Width, frame.Height))

	return render.Layout{
		Width:    frame.Width,
		Height:   frame.Height,
		Widgets:  placed,
		Warnings: warnings,
	}, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
