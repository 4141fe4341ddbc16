package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/h3-runtime/dispatch"
	"github.com/wippyai/h3-runtime/internal/nativetest"
	"github.com/wippyai/h3-runtime/value"
)

func newTable(t *testing.T) *dispatch.Table {
	t.Helper()
	lib := nativetest.New()
	tbl, err := dispatch.New(lib)
	require.NoError(t, err)
	t.Cleanup(func() { lib.Mem.AssertSize(t, 0) })
	return tbl
}

func TestConfigDefaults(t *testing.T) {
	t.Setenv(envFormat, "")
	t.Setenv(envLogLevel, "")

	cfg := Config{List: true}
	require.NoError(t, cfg.resolve())
	assert.Equal(t, defaultFormat, cfg.Format)
	assert.Equal(t, defaultLogLevel, cfg.LogLevel)
}

func TestConfigEnvironment(t *testing.T) {
	t.Setenv(envFormat, "text")
	t.Setenv(envLogLevel, "debug")

	cfg := Config{Call: "kRing"}
	require.NoError(t, cfg.resolve())
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)

	cfg = Config{Call: "kRing", Format: "wkt"}
	require.NoError(t, cfg.resolve())
	assert.Equal(t, "wkt", cfg.Format)
}

func TestConfigEnvFile(t *testing.T) {
	t.Setenv(envFormat, "")
	os.Unsetenv(envFormat)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(envFormat+"=geojson\n"), 0o600))

	cfg := Config{Call: "h3ToGeoBoundary", EnvFile: path}
	require.NoError(t, cfg.resolve())
	assert.Equal(t, "geojson", cfg.Format)
}

func TestConfigValidation(t *testing.T) {
	t.Setenv(envFormat, "")
	t.Setenv(envLogLevel, "")

	tests := []struct {
		name string
		cfg  Config
	}{
		{"no mode", Config{}},
		{"bad format", Config{Call: "kRing", Format: "xml"}},
		{"bad log level", Config{Call: "kRing", LogLevel: "trace"}},
		{"bad args json", Config{Call: "kRing", Args: "[1,"}},
		{"missing env file", Config{List: true, EnvFile: "/nonexistent/.env"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			require.Error(t, cfg.resolve())
		})
	}
}

func TestParseArgs(t *testing.T) {
	args, err := parseArgs("")
	require.NoError(t, err)
	assert.Empty(t, args)

	args, err = parseArgs(`[617700169958293503, 2]`)
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.True(t, args[1].Equal(value.Int(2)))

	_, err = parseArgs(`{"k": 1}`)
	require.Error(t, err)
}

func TestExecuteCall(t *testing.T) {
	tbl := newTable(t)
	var out bytes.Buffer
	p := &printer{w: &out, format: "json"}

	cell := nativetest.MakeCell(5, 20)
	args, err := json.Marshal([]int64{int64(cell), 1})
	require.NoError(t, err)

	require.NoError(t, execute(&Config{Call: "kRing", Args: string(args)}, tbl, p))
	got, err := value.Parse(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 7, got.Len())
}

func TestExecuteFormats(t *testing.T) {
	tbl := newTable(t)
	cell := nativetest.MakeCell(5, 20)
	args, err := json.Marshal([]int64{int64(cell)})
	require.NoError(t, err)

	tests := []struct {
		format string
		prefix string
	}{
		{"json", "["},
		{"text", "[{"},
		{"geojson", `{"type":"Feature"`},
		{"wkt", "POLYGON"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			p := &printer{w: &out, format: tt.format}
			require.NoError(t, execute(&Config{Call: "h3ToGeoBoundary", Args: string(args)}, tbl, p))
			assert.True(t, strings.HasPrefix(out.String(), tt.prefix), out.String())
		})
	}
}

func TestExecuteReportsParamErrors(t *testing.T) {
	tbl := newTable(t)
	var out bytes.Buffer
	p := &printer{w: &out, format: "json"}

	err := execute(&Config{Call: "kRing", Args: `["x", 1]`}, tbl, p)
	require.Error(t, err)
	assert.Empty(t, out.String())
}

func TestExecuteList(t *testing.T) {
	tbl := newTable(t)
	var out bytes.Buffer
	p := &printer{w: &out, format: "json"}

	require.NoError(t, execute(&Config{List: true}, tbl, p))
	text := out.String()
	assert.Contains(t, text, "traversal\n")
	assert.Contains(t, text, "  kRing(origin: s64, k: s64) -> list<s64>\n")
	assert.Contains(t, text, "(experimental)")
}

func TestExecuteSchema(t *testing.T) {
	tbl := newTable(t)
	var out bytes.Buffer
	p := &printer{w: &out, format: "json"}

	require.NoError(t, execute(&Config{Schema: "kRing"}, tbl, p))
	assert.Contains(t, out.String(), `"prefixItems"`)

	require.Error(t, execute(&Config{Schema: "nope"}, tbl, p))
}

func TestInteractiveCall(t *testing.T) {
	tbl := newTable(t)
	m := newInteractiveModel(tbl)

	idx := -1
	for i, d := range m.ops {
		if d.Name == "h3GetResolution" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	m.selected = idx

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	require.Equal(t, stateInputArgs, m.state)
	require.Len(t, m.inputs, 1)
	assert.Equal(t, "s64", m.inputs[0].Placeholder)

	cell := nativetest.MakeCell(7, 3)
	m.inputs[0].SetValue(value.Int(int64(cell)).String())

	msg := m.callOperation()
	m.Update(msg)
	require.Equal(t, stateShowResult, m.state)
	require.NoError(t, m.err)
	assert.Equal(t, "7", m.result)
	assert.Contains(t, m.View(), "Result of")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateSelectOp, m.state)
}

func TestInteractiveNavigation(t *testing.T) {
	m := newInteractiveModel(newTable(t))
	m.height = 3

	for range 5 {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 5, m.selected)
	assert.Equal(t, 3, m.offset)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 4, m.selected)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
}

func TestConvertArg(t *testing.T) {
	tbl := newTable(t)
	res, ok := tbl.Lookup("h3GetResolution")
	require.True(t, ok)
	assert.True(t, convertArg("12", res.Params[0]).Equal(value.Int(12)))
	assert.True(t, convertArg("12x", res.Params[0]).IsNull())

	d, ok := tbl.Lookup("stringToH3")
	require.True(t, ok)
	assert.True(t, convertArg("8928308280fffff", d.Params[0]).Equal(value.String("8928308280fffff")))
	assert.True(t, convertArg(`"abc"`, d.Params[0]).Equal(value.String("abc")))
}
