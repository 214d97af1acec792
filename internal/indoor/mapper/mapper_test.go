package mapper

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indoor-map/internal/indoor/models"
	"indoor-map/internal/indoor/parser"
)

const testMap = `<map width="12" depth="10">
  <floors>
    <floor atHeight="0" height="3" name="ground">
      <outline>
        <polygon name="hall" method="0">
          <point x="0" y="0"/><point x="10" y="0"/><point x="10" y="10"/><point x="0" y="10"/>
        </polygon>
        <polygon name="shaft" method="1">
          <point x="8" y="8"/><point x="9" y="8"/><point x="9" y="9"/><point x="8" y="9"/>
        </polygon>
      </outline>
      <obstacles>
        <wall material="1" type="1" x1="0" y1="0" x2="10" y2="0">
          <door type="1" material="2" x01="0.5" width="1" heigth="2" lr="false" io="false"/>
        </wall>
        <wall material="3" type="1" x1="10" y1="0" x2="10" y2="10">
          <window material="4" x01="0.5" y="1" width="2" height="1.2"/>
        </wall>
        <wall material="0" type="1" x1="0" y1="10" x2="10" y2="10"/>
        <wall material="2" type="1" x1="0" y1="0" x2="0" y2="10"/>
      </obstacles>
      <pois><poi name="&lt;Lab &amp; Co&gt;" type="0" x="5" y="5"/></pois>
      <gtpoints><gtpoint id="7" x="1" y="2" z="1"/></gtpoints>
      <accesspoints><accesspoint name="ap1" mac="00:11:22:33:44:55" x="2" y="3" z="2"/></accesspoints>
      <beacons><beacon name="b1" mac="AA:BB" uuid="u1" major="1" minor="2" x="4" y="1" z="2"/></beacons>
      <fingerprints><location name="fp1" x="2" y="2" dz="1"/></fingerprints>
    </floor>
    <floor atHeight="4" height="3" name="upper">
      <obstacles>
        <wall material="1" type="1" x1="0" y1="0" x2="12" y2="0"/>
      </obstacles>
    </floor>
  </floors>
</map>`

func read(t *testing.T, listeners ...parser.Listener) {
	t.Helper()
	require.NoError(t, parser.New().Read(strings.NewReader(testMap), parser.MultiListener(listeners)))
}

func Test_SVGListener(t *testing.T) {
	svg := NewSVGListener()
	read(t, svg)
	out := svg.String()

	t.Run("frame", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
		assert.Contains(t, out, `viewBox="0 0 12 10"`)
		assert.Contains(t, out, `<g transform="translate(0, 10)">`)
		assert.True(t, strings.HasSuffix(out, "</svg>\n"))
		assert.Contains(t, out, `<g id="floor_ground">`)
		assert.Contains(t, out, `<g id="floor_upper">`)
		assert.Equal(t, strings.Count(out, "<g "), strings.Count(out, "</g>"))
	})

	t.Run("outline", func(t *testing.T) {
		assert.Contains(t, out, `<path d="M0 0 L10 0 L10 -10 L0 -10 Z" stroke="none" fill="#C8C8C8"/>`)
		assert.Contains(t, out, `fill="#FFFFFF"`)
	})

	t.Run("walls are stroked by material", func(t *testing.T) {
		assert.Contains(t, out, `<path d="M0 0 L5 0" stroke="#323232" stroke-width="0.15" fill="none"/>`)
		assert.Contains(t, out, `<path d="M10 0 L10 -4" stroke="#646464" stroke-width="0.15" fill="none"/>`)
	})

	t.Run("openings", func(t *testing.T) {
		assert.Contains(t, out, `<path d="M10 -4 L10 -6" stroke="#0000FF" stroke-width="0.05" stroke-dasharray="0.2, 0.1" fill="none"/>`)
		assert.Contains(t, out, `<path d="M5 0 L6 0" stroke="#000000" stroke-width="0.05" stroke-dasharray="0.2, 0.1" fill="none"/>`)
		assert.Contains(t, out, `d="M 5.9 0 A 0.9 0.9 0 0 0 5 -0.9"`)
		assert.Contains(t, out, `<path d="M5 0 L5 -1" stroke="#000000"`)
	})

	t.Run("points and labels", func(t *testing.T) {
		assert.Contains(t, out, `<circle cx="1" cy="-2" r="0.125" fill="#000000" stroke="none"/>`)
		assert.Contains(t, out, `>7</text>`)
		assert.Contains(t, out, `>ap1 (00:11:22:33:44:55)</text>`)
		assert.Contains(t, out, `>b1 (AA:BB)</text>`)
		assert.Contains(t, out, `text-anchor="middle">&lt;Lab &amp; Co&gt;</text>`)
	})

	t.Run("write to", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := svg.WriteTo(&buf)
		require.NoError(t, err)
		assert.Equal(t, int64(len(out)), n)
		assert.Equal(t, out, buf.String())
	})
}

func Test_SVGListener_Should_Drop_Floors_Vetoed_Later(t *testing.T) {
	svg := NewSVGListener()
	read(t, svg, parser.FloorFilter{Names: []string{"upper"}})
	out := svg.String()

	assert.NotContains(t, out, "floor_ground")
	assert.Contains(t, out, "floor_upper")
	assert.Contains(t, out, `viewBox="0 0 12 0"`)
}

func Test_SVGListener_SetMaterialColor(t *testing.T) {
	svg := NewSVGListener()
	svg.SetMaterialColor(models.MaterialConcrete, 300, -5, 16)
	read(t, svg)
	assert.Contains(t, svg.String(), `stroke="#FF0010"`)
}

func near(t *testing.T, want, got color.RGBA) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 2, "R of %v", got)
	assert.InDelta(t, want.G, got.G, 2, "G of %v", got)
	assert.InDelta(t, want.B, got.B, 2, "B of %v", got)
}

func Test_RasterListener(t *testing.T) {
	raster := NewRasterListener(100)
	read(t, parser.FloorFilter{Names: []string{"ground"}}, raster)
	img := raster.Image()

	require.Equal(t, 1201, img.Bounds().Dx())
	require.Equal(t, 1001, img.Bounds().Dy())

	// Pixel rows count down from the top of the map.
	near(t, colorIndoor, img.RGBAAt(250, 250))
	near(t, colorRemoved, img.RGBAAt(850, 150))
	near(t, color.RGBA{100, 100, 100, 255}, img.RGBAAt(1000, 800))
	near(t, colorWindow, img.RGBAAt(1000, 500))
	near(t, colorRemoved, img.RGBAAt(550, 1000))
	near(t, color.RGBA{50, 50, 50, 255}, img.RGBAAt(250, 1000))
	near(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(1150, 500))

	var buf bytes.Buffer
	require.NoError(t, raster.EncodePNG(&buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func Test_RasterListener_Should_Bound_Huge_Maps(t *testing.T) {
	raster := NewRasterListener(DefaultPixelsPerMeter)
	doc := `<map width="100000" depth="50000"><floors><floor name="f">
	  <obstacles><wall material="1" type="1" x1="0" y1="0" x2="100000" y2="50000"/></obstacles>
	</floor></floors></map>`
	require.NoError(t, parser.New().Read(strings.NewReader(doc), raster))

	b := raster.Image().Bounds()
	assert.LessOrEqual(t, b.Dx()*b.Dy(), maxRasterPixels)
	assert.LessOrEqual(t, b.Dx(), maxRasterSide)
	assert.InDelta(t, 2.0, float64(b.Dx())/float64(b.Dy()), 0.01, "aspect ratio is kept")
}

func Test_RasterListener_Defaults(t *testing.T) {
	raster := NewRasterListener(0)
	assert.Equal(t, DefaultPixelsPerMeter, raster.PixelsPerMeter)

	img := raster.Image()
	assert.Equal(t, 1, img.Bounds().Dx(), "empty map still yields an image")
}

func Test_GeoJSONListener(t *testing.T) {
	l := NewGeoJSONListener()
	read(t, l)
	fc := l.FeatureCollection()

	require.Len(t, fc.Features, 16)

	kinds := map[string]int{}
	for _, f := range fc.Features {
		kinds[f.Properties.MustString("kind")]++
	}
	assert.Equal(t, map[string]int{
		KindOutline:     2,
		"wall":          7,
		"door":          1,
		"window":        1,
		KindGroundtruth: 1,
		KindAccessPoint: 1,
		KindBeacon:      1,
		KindFingerprint: 1,
		KindPOI:         1,
	}, kinds)

	last := fc.Features[len(fc.Features)-1]
	assert.Equal(t, "upper", last.Properties["floor"])
	assert.Equal(t, "LineString", last.Geometry.GeoJSONType())

	for _, f := range fc.Features {
		if f.Properties["kind"] == "door" {
			assert.Equal(t, "swing", f.Properties["doorType"])
			assert.Equal(t, "wood", f.Properties["material"])
		}
		if f.Properties["kind"] == KindGroundtruth {
			assert.Equal(t, 7, f.Properties["id"])
			assert.Equal(t, 1.0, f.Properties["z"])
		}
	}

	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"FeatureCollection"`)
}

func Test_SceneListener(t *testing.T) {
	l := NewSceneListener()
	read(t, l)
	scene := l.Scene()
	require.NotNil(t, scene)

	assert.Equal(t, "cm", scene.Unit)
	assert.Equal(t, 1200.0, scene.Width)
	assert.Equal(t, 1000.0, scene.Height)
	require.Len(t, scene.Layers, 2)
	assert.Equal(t, "layer-1", scene.SelectedLayer)

	ground := scene.Layers["layer-1"]
	assert.Equal(t, "ground", ground.Name)
	assert.Len(t, ground.Lines, 4)
	assert.Len(t, ground.Vertices, 4, "walls and outline share the corners")

	require.Len(t, ground.Holes, 2)
	var door, window models.Hole
	for _, h := range ground.Holes {
		switch h.Type {
		case "door":
			door = h
		case "window":
			window = h
		}
	}
	assert.InDelta(t, 0.55, door.Offset, 1e-9)
	assert.Equal(t, models.LengthValue{Length: 100}, door.Properties["width"])
	assert.Equal(t, models.LengthValue{Length: 200}, door.Properties["height"])
	assert.InDelta(t, 0.5, window.Offset, 1e-9)
	assert.Equal(t, models.LengthValue{Length: 100}, window.Properties["altitude"])
	assert.Contains(t, ground.Lines[door.Line].Holes, door.ID)

	require.Len(t, ground.Areas, 1)
	for _, a := range ground.Areas {
		assert.Equal(t, "hall", a.Name)
		assert.Len(t, a.Vertices, 4)
		for _, vid := range a.Vertices {
			assert.Contains(t, ground.Vertices, vid)
		}
	}

	upper := scene.Layers["layer-2"]
	assert.Equal(t, 400.0, upper.Altitude)
	assert.Equal(t, 1, upper.Order)
	assert.Len(t, upper.Lines, 1)
	assert.Empty(t, upper.Areas)
}

func Test_RemapRing(t *testing.T) {
	rep := map[string]string{"v1": "v1", "v2": "v1", "v3": "v3", "v4": "v4"}
	assert.Equal(t, []string{"v1", "v3", "v4"}, remapRing([]string{"v1", "v2", "v3", "v4", "v1"}, rep))
}
