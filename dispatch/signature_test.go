package dispatch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature(t *testing.T) {
	tbl, _ := newTable(t)

	tests := []struct {
		op   string
		want string
	}{
		{"kRing", "kRing(origin: s64, k: s64) -> list<s64>"},
		{"hexRange", "hexRange(origin: s64, k: s64) -> result<list<s64>>"},
		{"kRingDistances", "kRingDistances(origin: s64, k: s64) -> tuple<list<s64>, list<s32>>"},
		{"h3ToGeo", "h3ToGeo(h: s64) -> lat-lng"},
		{"pointDistKm", "pointDistKm(a: lat-lng, b: lat-lng) -> f64"},
		{"polyfill", "polyfill(polygon: polygon, res: s64) -> list<s64>"},
		{"h3SetToLinkedGeo", "h3SetToLinkedGeo(set: list<s64>) -> list<list<list<lat-lng>>>"},
		{"experimentalLocalIjToH3", "experimentalLocalIjToH3(origin: s64, ij: coord-ij) -> result<s64>"},
		{"res0IndexCount", "res0IndexCount() -> s64"},
		{"h3IsValid", "h3IsValid(h: s64) -> bool"},
		{"h3ToString", "h3ToString(h: s64) -> string"},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			d, ok := tbl.Lookup(tt.op)
			require.True(t, ok)
			assert.Equal(t, tt.want, Signature(d))
		})
	}
}

func TestSchema(t *testing.T) {
	tbl, _ := newTable(t)

	d, _ := tbl.Lookup("kRing")
	s := Schema(d)
	assert.Equal(t, "array", s.Type)
	require.Len(t, s.PrefixItems, 2)
	assert.Equal(t, "integer", s.PrefixItems[0].Type)
	assert.Equal(t, "origin", s.PrefixItems[0].Title)
	require.NotNil(t, s.MinItems)
	assert.Equal(t, uint64(2), *s.MinItems)

	d, _ = tbl.Lookup("polyfill")
	s = Schema(d)
	poly := s.PrefixItems[0]
	assert.Equal(t, "object", poly.Type)
	assert.Equal(t, []string{"geofence"}, poly.Required)
	fence, ok := poly.Properties.Get("geofence")
	require.True(t, ok)
	assert.Equal(t, "array", fence.Type)
	assert.Equal(t, "object", fence.Items.Type)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"prefixItems"`)
	assert.Contains(t, string(data), `"holes"`)
}

func TestSchemaEveryOperation(t *testing.T) {
	tbl, _ := newTable(t)
	for _, d := range tbl.Descriptors() {
		s := Schema(d)
		assert.Len(t, s.PrefixItems, len(d.Params), d.Name)
		_, err := json.Marshal(s)
		assert.NoError(t, err, d.Name)
	}
}
