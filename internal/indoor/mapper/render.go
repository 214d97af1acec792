package mapper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"indoor-map/internal/indoor/parser"
)

// ============================================================
// Output formats
// ============================================================

type Format string

const (
	FormatJSON    Format = "json"
	FormatSVG     Format = "svg"
	FormatPNG     Format = "png"
	FormatGeoJSON Format = "geojson"
	FormatScene   Format = "scene"
)

var ErrUnknownFormat = errors.New("unknown output format")

var formats = map[Format]struct {
	contentType string
	ext         string
}{
	FormatJSON:    {"application/json", ".json"},
	FormatSVG:     {"image/svg+xml", ".svg"},
	FormatPNG:     {"image/png", ".png"},
	FormatGeoJSON: {"application/geo+json", ".geojson"},
	FormatScene:   {"application/json", ".scene.json"},
}

// ParseFormat accepts a format name case-insensitively. The empty name is JSON.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatJSON, nil
	}
	if _, ok := formats[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

func (f Format) ContentType() string { return formats[f].contentType }

// Ext is the file extension including the leading dot.
func (f Format) Ext() string { return formats[f].ext }

// ============================================================
// Rendering
// ============================================================

type Options struct {
	// Floors restricts the output to the named floors; empty keeps all.
	Floors         []string
	PixelsPerMeter float64
	// Listeners run after the format's own listener, e.g. a linter.
	Listeners []parser.Listener
}

// Render reads the map document from r and converts it in a single pass.
func Render(r io.Reader, f Format, opts Options) ([]byte, error) {
	if _, ok := formats[f]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	chain := parser.MultiListener{parser.FloorFilter{Names: opts.Floors}}
	var finish func() ([]byte, error)

	switch f {
	case FormatJSON:
		l := &parser.MapListener{}
		chain = append(chain, l)
		finish = func() ([]byte, error) { return json.Marshal(l.Map) }
	case FormatSVG:
		l := NewSVGListener()
		chain = append(chain, l)
		finish = func() ([]byte, error) { return []byte(l.String()), nil }
	case FormatPNG:
		l := NewRasterListener(opts.PixelsPerMeter)
		chain = append(chain, l)
		finish = func() ([]byte, error) {
			var buf bytes.Buffer
			if err := l.EncodePNG(&buf); err != nil {
				return nil, fmt.Errorf("encode png: %w", err)
			}
			return buf.Bytes(), nil
		}
	case FormatGeoJSON:
		l := NewGeoJSONListener()
		chain = append(chain, l)
		finish = l.MarshalJSON
	case FormatScene:
		l := NewSceneListener()
		chain = append(chain, l)
		finish = func() ([]byte, error) { return json.Marshal(l.Scene()) }
	}
	chain = append(chain, opts.Listeners...)

	if err := parser.New().Read(r, chain); err != nil {
		return nil, err
	}
	return finish()
}
