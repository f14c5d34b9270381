package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Python3pkg/hip"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runString(t *testing.T, cmd string, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(cmd, args, strings.NewReader(input), &out)
	return out.String(), err
}

func TestRunVersion(t *testing.T) {
	out, err := runString(t, "version", "")
	require.NoError(t, err)
	assert.Equal(t, "hip "+version+"\n", out)
}

func TestRunUnknownCommand(t *testing.T) {
	_, err := runString(t, "frobnicate", "a: 1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUsage))

	_, err = runString(t, "fmt", "a: 1", "one", "two")
	assert.True(t, errors.Is(err, errUsage))
}

func TestRunFmt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{"mapping", "b:   1\na:\t\"x\",\n", nil, "b: 1\na: \"x\",\n"},
		{"scalar gets newline", "  42  ", nil, "42\n"},
		{"object list", "-\na: 1\n-", nil, "-\na: 1\n-\n"},
		{"indent flag", "a:\n    b: 1", []string{"-indent", "2"}, "a:\n  b: 1\n"},
		{"tabs", "a:\n    b: 1", []string{"-indent=0"}, "a:\n\tb: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runString(t, "fmt", tt.input, tt.args...)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, out); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.hip")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\nb 2\n"), 0o644))

	_, err := runString(t, "check", "", path)
	require.Error(t, err)
	assert.Equal(t, `Expected ':' found "2" on line 2 of <`+path+`>`, err.Error())

	_, err = runString(t, "fmt", "", filepath.Join(t.TempDir(), "missing.hip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open file")
}

func TestRunCheck(t *testing.T) {
	out, err := runString(t, "check", "a: 1")
	require.NoError(t, err)
	assert.Equal(t, "<stdin>: ok\n", out)

	_, err = runString(t, "check", "-\na: 1\n--\n-")
	var parseErr *hip.ParseError
	require.True(t, errors.As(err, &parseErr), "an empty entry must not pass check: %v", err)
	assert.Equal(t, "identifier", parseErr.Expected)

	_, err = runString(t, "check", "a: *")
	require.Error(t, err)
	var lexErr *hip.LexError
	assert.True(t, errors.As(err, &lexErr))
}

func TestRunTokens(t *testing.T) {
	out, err := runString(t, "tokens", "a: 1\n  b: yes")
	require.NoError(t, err)
	want := "1\t0\tIDENT  a\n" +
		"1\t0\t:      :\n" +
		"1\t0\tINT    1\n" +
		"2\t2\tIDENT  b\n" +
		"2\t2\t:      :\n" +
		"2\t2\tBOOL   yes\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONBridge(t *testing.T) {
	src := `{"zeta": 1, "alpha": [1.5, "x", null, true], "mid": {"k": 100.0, "big": 99999999999999999999}}`
	out, err := runString(t, "from-json", src)
	require.NoError(t, err)
	want := "zeta: 1\nalpha: 1.5, \"x\", nil, yes\nmid:\n    k: 100.0\n    big: 1e+20\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	back, err := runString(t, "to-json", out, "-indent", "2")
	require.NoError(t, err)
	assert.Less(t, strings.Index(back, `"zeta"`), strings.Index(back, `"alpha"`))
	assert.Less(t, strings.Index(back, `"alpha"`), strings.Index(back, `"mid"`))
	assert.Contains(t, back, "100.0")

	orig, err := decodeJSON([]byte(src))
	require.NoError(t, err)
	again, err := decodeJSON([]byte(back))
	require.NoError(t, err)
	assert.Truef(t, orig.Equal(again), "got %s want %s", again, orig)
}

func TestJSONErrors(t *testing.T) {
	_, err := decodeJSON([]byte(`{"a": `))
	assert.Error(t, err)

	_, err = runString(t, "from-json", `{"a": {}}`)
	require.Error(t, err)
	var encErr *hip.EncodeError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, "a", encErr.Path)
}

func TestYAMLBridge(t *testing.T) {
	src := "zeta: 1\nalpha:\n  - 1.5\n  - x\n  - null\nmid:\n  k: true\n  ref: &r 7\n  copy: *r\n"
	got, err := decodeYAML([]byte(src))
	require.NoError(t, err)

	want := hip.Map(
		hip.Field("zeta", hip.Int(1)),
		hip.Field("alpha", hip.Seq(hip.Float(1.5), hip.Str("x"), hip.Null())),
		hip.Field("mid", hip.Map(
			hip.Field("k", hip.Bool(true)),
			hip.Field("ref", hip.Int(7)),
			hip.Field("copy", hip.Int(7)),
		)),
	)
	assert.Truef(t, got.Equal(want), "got %s want %s", got, want)

	text, err := encodeYAML(want, 2)
	require.NoError(t, err)
	again, err := decodeYAML(text)
	require.NoError(t, err)
	assert.Truef(t, again.Equal(want), "yaml round trip:\n%s", text)
	assert.Less(t, bytes.Index(text, []byte("zeta")), bytes.Index(text, []byte("alpha")))
}

func TestYAMLFromHip(t *testing.T) {
	out, err := runString(t, "to-yaml", "b: 1\na: 2.0\n")
	require.NoError(t, err)
	assert.Equal(t, "b: 1\na: 2.0\n", out)
}

func TestTOMLBridge(t *testing.T) {
	src := `title = "demo"
zeta = 1

[owner]
name = "x"

[[items]]
id = 1
ratio = 0.5

[[items]]
id = 2
ratio = 1.5
`
	got, err := decodeTOML([]byte(src))
	require.NoError(t, err)

	want := hip.Map(
		hip.Field("title", hip.Str("demo")),
		hip.Field("zeta", hip.Int(1)),
		hip.Field("owner", hip.Map(hip.Field("name", hip.Str("x")))),
		hip.Field("items", hip.Seq(
			hip.Map(hip.Field("id", hip.Int(1)), hip.Field("ratio", hip.Float(0.5))),
			hip.Map(hip.Field("id", hip.Int(2)), hip.Field("ratio", hip.Float(1.5))),
		)),
	)
	assert.Truef(t, got.Equal(want), "got %s want %s", got, want)

	_, err = decodeTOML([]byte("= broken"))
	assert.Error(t, err)
}
