package cli

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ossinsight/composer/pkg/observability"
)

// logHooks reports pipeline and server events at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.LayoutHooks = logHooks{}
	_ observability.RenderHooks = logHooks{}
	_ observability.HTTPHooks   = logHooks{}
)

// installLogHooks routes every observability event to logger.
func installLogHooks(logger *log.Logger) {
	h := logHooks{logger: logger.WithPrefix("hooks")}
	observability.SetLayoutHooks(h)
	observability.SetRenderHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnComputeStart(_ context.Context, source string, nodeCount int) {
	h.logger.Debug("compute start", "source", source, "nodes", nodeCount)
}

func (h logHooks) OnComputeComplete(_ context.Context, source string, widgetCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("compute failed", "source", source, "err", err, "duration", d)
		return
	}
	h.logger.Debug("compute complete", "source", source, "widgets", widgetCount, "duration", d)
}

func (h logHooks) OnWarning(_ context.Context, kind, path string) {
	h.logger.Debug("layout warning", "kind", kind, "path", path)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", strings.Join(formats, ","))
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render complete", "formats", strings.Join(formats, ","), "duration", d, "err", err)
}

func (h logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}
