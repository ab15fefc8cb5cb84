package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ossinsight/composer/pkg/compose"
	cerrors "github.com/ossinsight/composer/pkg/errors"
	"github.com/ossinsight/composer/pkg/layout"
)

// Default canvas size, the size of a widget card.
const (
	DefaultWidth  = compose.CanvasWidth
	DefaultHeight = compose.CanvasHeight
)

// Format is a document serialization.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var extFormats = map[string]Format{
	".toml": FormatTOML,
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return "", cerrors.New(cerrors.ErrCodeInvalidFormat,
		"cannot infer document format from %q (use .toml, .json, .yaml or .yml)", filepath.Base(path))
}

// Canvas is the area a document is laid out on.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect returns the canvas as a frame anchored at the origin.
func (c Canvas) Rect() layout.Rect {
	return layout.Rect{Width: c.Width, Height: c.Height}
}

// Document is a decoded and validated layout document.
type Document struct {
	// Source names where the document came from, a file path or "request".
	Source string
	Canvas Canvas
	Root   layout.Node
}

// Load reads and decodes the document at path. The format follows the
// extension.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cerrors.New(cerrors.ErrCodeFileNotFound, "document not found: %s", path)
		}
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "read %s", path)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	doc.Source = path
	return doc, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*Document, error) {
	return Decode(bytes.NewReader(data), format)
}

// Decode reads a document from r. Unknown keys are rejected.
func Decode(r io.Reader, format Format) (*Document, error) {
	var raw rawDocument
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&raw)
		if err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidDocument, err, "parse toml")
		}
		if keys := undecoded(md); len(keys) > 0 {
			return nil, cerrors.New(cerrors.ErrCodeInvalidDocument, "unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidDocument, err, "parse json")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, cerrors.New(cerrors.ErrCodeInvalidDocument, "empty document")
			}
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidDocument, err, "parse yaml")
		}
	default:
		return nil, cerrors.New(cerrors.ErrCodeInvalidFormat, "unsupported document format %q", format)
	}
	return raw.build()
}

// undecoded lists keys the schema does not know. Keys below parameters and
// data are free-form.
func undecoded(md toml.MetaData) []string {
	var keys []string
	for _, k := range md.Undecoded() {
		free := false
		for _, part := range k {
			if part == "parameters" || part == "data" {
				free = true
				break
			}
		}
		if !free {
			keys = append(keys, k.String())
		}
	}
	return keys
}
