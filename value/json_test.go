package value

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"null", Null()},
		{"true", Bool(true)},
		{"false", Bool(false)},
		{`"abc"`, String("abc")},
		{"42", Int(42)},
		{"-7", Int(-7)},
		{"1.5", Float(1.5)},
		{"1e3", Float(1000)},
		{"9223372036854775807", Int(math.MaxInt64)},
		{"18446744073709551615", Int(-1)},
		{"617700169958293503", Int(617700169958293503)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse([]byte(tt.in))
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseContainers(t *testing.T) {
	v, err := Parse([]byte(`{"geofence":[{"lat":1,"lon":2.5}],"holes":[]}`))
	require.NoError(t, err)

	m, ok := v.AsMap()
	require.True(t, ok)
	assert.Equal(t, []string{"geofence", "holes"}, m.Keys())

	fence, _ := v.Field("geofence")
	require.Equal(t, 1, fence.Len())
	lat, _ := fence.Index(0).Field("lat")
	assert.True(t, lat.Equal(Int(1)))
	lon, _ := fence.Index(0).Field("lon")
	assert.True(t, lon.Equal(Float(2.5)))

	holes, _ := v.Field("holes")
	assert.Equal(t, KindSeq, holes.Kind())
	assert.Equal(t, 0, holes.Len())
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "{", "[1,", "nope", "12x", "1 2"} {
		_, err := Parse([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestMarshal(t *testing.T) {
	v := Fields("lat", 37.5, "lon", -122.0, "n", 3, "s", "x\"y")
	b, err := v.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"lat":37.5,"lon":-122.0,"n":3,"s":"x\"y"}`, string(b))
	assert.Equal(t, `{"lat":37.5,"lon":-122.0,"n":3,"s":"x\"y"}`, string(b))

	_, err = Float(math.Inf(1)).MarshalJSON()
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	cells := []uint64{0, 1, 0x8029fffffffffff, 0x8f283080dcb019d, math.MaxInt64, math.MaxUint64}
	for _, c := range cells {
		t.Run(strconv.FormatUint(c, 16), func(t *testing.T) {
			v := Int(int64(c))
			b, err := v.MarshalJSON()
			require.NoError(t, err)
			back, err := Parse(b)
			require.NoError(t, err)
			i, ok := back.AsInt()
			require.True(t, ok)
			assert.Equal(t, c, uint64(i))
		})
	}

	nested := Seq(Seq(Seq(Fields("lat", 1.25, "lon", 2.0))), Seq())
	b, err := nested.MarshalJSON()
	require.NoError(t, err)
	back, err := Parse(b)
	require.NoError(t, err)
	assert.True(t, nested.Equal(back), "got %s", back)
}
