package polygon

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/h3-runtime/codec"
	"github.com/wippyai/h3-runtime/errors"
	"github.com/wippyai/h3-runtime/native"
	"github.com/wippyai/h3-runtime/value"
)

func checked(t *testing.T) *memory.CheckedAllocator {
	t.Helper()
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	t.Cleanup(func() { mem.AssertSize(t, 0) })
	return mem
}

const sanFrancisco = `{
	"geofence": [
		{"lat": 37.813318999983238, "lon": -122.4089866999972145},
		{"lat": 37.7866302000007224, "lon": -122.3805436999997056},
		{"lat": 37.7198061999978478, "lon": -122.3544736999993603},
		{"lat": 37.7076131999975672, "lon": -122.5123436999983966},
		{"lat": 37.7835871999971715, "lon": -122.5247187000021967},
		{"lat": 37.8151571999998453, "lon": -122.4798767000009008}
	],
	"holes": [
		[
			{"lat": 37.7869802, "lon": -122.4471197},
			{"lat": 37.7664102, "lon": -122.4590777},
			{"lat": 37.7710682, "lon": -122.4137097}
		],
		[
			{"lat": 37.7474, "lon": -122.4},
			{"lat": 37.74, "lon": -122.41},
			{"lat": 37.745, "lon": -122.42},
			{"lat": 37.75, "lon": -122.405}
		]
	]
}`

func TestEncodeDecodeRoundTrip(t *testing.T) {
	mem := checked(t)
	in := value.MustParse(sanFrancisco)

	enc, err := Encode(mem, in, nil)
	require.NoError(t, err)
	defer enc.Release()

	require.Len(t, enc.Polygon.Geofence.Verts, 6)
	require.Len(t, enc.Polygon.Holes, 2)
	assert.Len(t, enc.Polygon.Holes[0].Verts, 3)
	assert.Len(t, enc.Polygon.Holes[1].Verts, 4)
	assert.Equal(t, (6+3+4)*16, enc.Bytes())
	assert.Equal(t, enc.Bytes(), mem.CurrentAlloc())

	assert.InDelta(t, codec.Radians(37.813318999983238), enc.Polygon.Geofence.Verts[0].Lat, 1e-15)

	out := Decode(&enc.Polygon)
	assertSameShape(t, in, out)
}

func TestZeroHoles(t *testing.T) {
	mem := checked(t)

	for name, src := range map[string]string{
		"absent": `{"geofence": [{"lat": 1, "lon": 2}, {"lat": 3, "lon": 4}, {"lat": 5, "lon": 6}]}`,
		"empty":  `{"geofence": [{"lat": 1, "lon": 2}, {"lat": 3, "lon": 4}, {"lat": 5, "lon": 6}], "holes": []}`,
		"null":   `{"geofence": [{"lat": 1, "lon": 2}, {"lat": 3, "lon": 4}, {"lat": 5, "lon": 6}], "holes": null}`,
	} {
		t.Run(name, func(t *testing.T) {
			in := value.MustParse(src)
			enc, err := Encode(mem, in, nil)
			require.NoError(t, err)
			defer enc.Release()

			assert.NotNil(t, enc.Polygon.Holes)
			assert.Len(t, enc.Polygon.Holes, 0)

			out := Decode(&enc.Polygon)
			holes, ok := out.Field(FieldHoles)
			require.True(t, ok)
			assert.Equal(t, value.KindSeq, holes.Kind())
			assert.Equal(t, 0, holes.Len())

			fence, _ := out.Field(FieldGeofence)
			assert.Equal(t, 3, fence.Len())
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind errors.Kind
		path []string
	}{
		{"not a map", `[1, 2]`, errors.KindTypeMismatch, []string{"polygon"}},
		{"missing geofence", `{"holes": []}`, errors.KindFieldMissing, []string{"polygon"}},
		{"geofence not a seq", `{"geofence": 5}`, errors.KindTypeMismatch, []string{"polygon", "geofence"}},
		{"vertex missing lon", `{"geofence": [{"lat": 1}]}`, errors.KindFieldMissing, []string{"polygon", "geofence", "0"}},
		{"holes not a seq", `{"geofence": [], "holes": {}}`, errors.KindTypeMismatch, []string{"polygon", "holes"}},
		{"bad hole vertex", `{"geofence": [], "holes": [[], [{"lat": 1, "lon": 2}, {"lat": "x", "lon": 2}]]}`,
			errors.KindTypeMismatch, []string{"polygon", "holes", "1", "1", "lat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := checked(t)
			enc, err := Encode(mem, value.MustParse(tt.src), []string{"polygon"})
			require.Error(t, err)
			assert.Nil(t, enc)
			assert.Equal(t, 0, mem.CurrentAlloc(), "validation precedes allocation")

			var e *errors.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, errors.PhaseParam, e.Phase)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.path, e.Path)
		})
	}
}

func TestReleaseIdempotent(t *testing.T) {
	mem := checked(t)
	enc, err := Encode(mem, value.MustParse(sanFrancisco), nil)
	require.NoError(t, err)

	enc.Release()
	enc.Release()
	assert.Equal(t, 0, mem.CurrentAlloc())
	assert.Equal(t, 0, enc.Bytes())
}

func TestWith(t *testing.T) {
	mem := checked(t)
	in := value.MustParse(sanFrancisco)

	n, err := With(mem, in, nil, func(p *native.GeoPolygon) (int, error) {
		assert.NotZero(t, mem.CurrentAlloc(), "polygon is live during the call")
		return len(p.Geofence.Verts) + len(p.Holes), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	boom := errors.InvalidInput(errors.PhaseNative, "boom")
	_, err = With(mem, in, nil, func(*native.GeoPolygon) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
}

func TestLowerEmpty(t *testing.T) {
	mem := checked(t)
	_, err := Lower(mem, nil)
	assert.Error(t, err)
}

func assertSameShape(t *testing.T, want, got value.Value) {
	t.Helper()
	wantP, err := Parse(want, nil)
	require.NoError(t, err)
	gotP, err := Parse(got, nil)
	require.NoError(t, err)

	require.Len(t, gotP, len(wantP))
	for i := range wantP {
		require.Len(t, gotP[i], len(wantP[i]), "ring %d", i)
		for j := range wantP[i] {
			assert.InDelta(t, wantP[i][j].Lat, gotP[i][j].Lat, 1e-9)
			assert.InDelta(t, wantP[i][j].Lng, gotP[i][j].Lng, 1e-9)
		}
	}
}
