package render

import (
	"context"
	"testing"

	cerrors "github.com/ossinsight/composer/pkg/errors"
	"github.com/ossinsight/composer/pkg/layout"
)

func TestLayoutCollapsed(t *testing.T) {
	l := Layout{
		Width:  100,
		Height: 100,
		Widgets: []layout.Placed{
			{ID: "a", Width: 100, Height: 50},
			{ID: "b", Width: 100, Height: 0},
			{ID: "c", Width: -4, Height: 10},
		},
	}

	got := l.Collapsed()
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "c" {
		t.Errorf("Collapsed() = %v, want b and c", got)
	}
	if l.Frame() != (layout.Rect{Width: 100, Height: 100}) {
		t.Errorf("Frame() = %+v", l.Frame())
	}
}

func TestToPNGWithoutConverter(t *testing.T) {
	if CanConvert() {
		t.Skip("rsvg-convert is installed")
	}
	_, err := ToPNG(context.Background(), []byte("<svg/>"), 2)
	if !cerrors.Is(err, cerrors.ErrCodeUnsupported) {
		t.Errorf("ToPNG() error = %v, want UNSUPPORTED", err)
	}
}

func TestToPDF(t *testing.T) {
	if !CanConvert() {
		t.Skip("rsvg-convert not installed")
	}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`)
	pdf, err := ToPDF(context.Background(), svg)
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if len(pdf) < 4 || string(pdf[:4]) != "%PDF" {
		t.Errorf("ToPDF() output does not look like a PDF")
	}
}
