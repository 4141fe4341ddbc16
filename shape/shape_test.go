package shape

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/h3-runtime/codec"
	"github.com/wippyai/h3-runtime/errors"
	"github.com/wippyai/h3-runtime/value"
)

var square = codec.Loop{
	{Lat: 0, Lng: 0},
	{Lat: 0, Lng: 1},
	{Lat: 1, Lng: 1},
	{Lat: 1, Lng: 0},
}

func TestRingClosesAndSwapsAxes(t *testing.T) {
	r, err := Ring(codec.LoopValue(square))
	require.NoError(t, err)
	require.Len(t, r, 5)
	assert.True(t, r.Closed())
	assert.Equal(t, orb.Point{1, 0}, r[1])
}

func TestGeometryDetection(t *testing.T) {
	mp := codec.MultiPolygon{{square, square[:3]}, {square}}

	tests := []struct {
		name string
		in   value.Value
		want string
	}{
		{"point", codec.LatLngValue(codec.LatLng{Lat: 37.7, Lng: -122.4}), "Point"},
		{"boundary", codec.LoopValue(square), "Polygon"},
		{"outline", codec.MultiPolygonValue(mp), "MultiPolygon"},
		{"empty outline", value.Seq(), "MultiPolygon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Geometry(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.GeoJSONType())
		})
	}

	g, err := Geometry(codec.MultiPolygonValue(mp))
	require.NoError(t, err)
	multi := g.(orb.MultiPolygon)
	require.Len(t, multi, 2)
	assert.Len(t, multi[0], 2)
	assert.Len(t, multi[0][1], 4)
}

func TestGeometryRejectsCellSets(t *testing.T) {
	_, err := Geometry(value.Seq(value.Int(1), value.Int(2)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindTypeMismatch}))

	_, err = Geometry(value.Int(3))
	require.Error(t, err)
}

func TestGeoJSON(t *testing.T) {
	data, err := GeoJSON(codec.LoopValue(square))
	require.NoError(t, err)

	f, err := geojson.UnmarshalFeature(data)
	require.NoError(t, err)
	poly, ok := f.Geometry.(orb.Polygon)
	require.True(t, ok)
	assert.Len(t, poly[0], 5)
}

func TestWKT(t *testing.T) {
	s, err := WKT(codec.MultiPolygonValue(codec.MultiPolygon{{square}}))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s, "MULTIPOLYGON"), s)

	s, err = WKT(codec.LatLngValue(codec.LatLng{Lat: 2, Lng: 1}))
	require.NoError(t, err)
	assert.Equal(t, "POINT(1 2)", s)
}
