package hip

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtures(t *testing.T) {
	dir := filepath.Join("testdata", "valid")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read valid dir: %v", err)
	}

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".hip") {
			continue
		}

		baseName := strings.TrimSuffix(entry.Name(), ".hip")
		t.Run(baseName, func(t *testing.T) {
			input, err := os.ReadFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				t.Fatalf("failed to read %s: %v", entry.Name(), err)
			}
			golden, err := os.ReadFile(filepath.Join(dir, baseName+".golden"))
			if err != nil {
				t.Fatalf("failed to read golden: %v", err)
			}

			got, err := UnmarshalFile(input, entry.Name())
			if err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			out, err := Marshal(got)
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}
			if diff := cmp.Diff(string(golden), string(out)); diff != "" {
				t.Errorf("canonical output mismatch (-want +got):\n%s", diff)
			}

			again, err := Unmarshal(golden)
			if err != nil {
				t.Fatalf("golden does not decode: %v", err)
			}
			if !again.Equal(got) {
				t.Errorf("golden decodes differently\ngot:  %s\nwant: %s", again, got)
			}
		})
	}
}

func TestErrorCases(t *testing.T) {
	dir := filepath.Join("testdata", "invalid")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read invalid dir: %v", err)
	}

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".hip") {
			continue
		}

		baseName := strings.TrimSuffix(entry.Name(), ".hip")
		t.Run(baseName, func(t *testing.T) {
			input, err := os.ReadFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				t.Fatalf("failed to read %s: %v", entry.Name(), err)
			}
			expectedError, err := os.ReadFile(filepath.Join(dir, baseName+".error"))
			if err != nil {
				t.Fatalf("failed to read expected error: %v", err)
			}
			expectedPattern := strings.TrimSpace(string(expectedError))

			_, parseErr := UnmarshalFile(input, entry.Name())
			if parseErr == nil {
				t.Fatalf("expected error containing %q, got success", expectedPattern)
			}
			if !strings.Contains(parseErr.Error(), expectedPattern) {
				t.Errorf("error mismatch\ngot:  %s\nwant: contains %q", parseErr.Error(), expectedPattern)
			}
			if !strings.HasSuffix(parseErr.Error(), "<"+entry.Name()+">") {
				t.Errorf("error %q does not name the file", parseErr.Error())
			}
		})
	}
}

func roundTrip(t *testing.T, v Value) {
	t.Helper()
	text, err := Encode(v)
	require.NoError(t, err)
	got, err := Decode(text)
	require.NoError(t, err, "decoding:\n%s", text)
	assert.Truef(t, got.Equal(v), "round trip changed the value\ntext:\n%s\ngot:  %s\nwant: %s", text, got, v)
}

func TestRoundTrip(t *testing.T) {
	tests := map[string]Value{
		"int":            Int(-76),
		"float":          Float(-987.654e-321),
		"true":           Bool(true),
		"false":          Bool(false),
		"null":           Null(),
		"string":         Str("a string"),
		"escapes":        Str("a\tdifferent\nstring"),
		"quotes":         Str(`"so" 'many'\nstringy\tthings`),
		"unicode":        Str("naïve café ☕"),
		"control":        Str("bell\a nul\x00"),
		"literal list":   Seq(Int(1), Int(2), Float(4.3), Int(555), Str("hi"), Bool(true), Null(), Bool(false), Str("yo")),
		"nested lists":   Seq(Int(1), Seq(Int(2), Int(2), Seq(Int(3), Int(3), Int(3)), Int(2), Int(2)), Int(1)),
		"single nested":  Seq(Int(1), Seq(Int(4)), Int(6)),
		"one element":    Seq(Str("alone")),
		"empty list":     Seq(),
		"whole float":    Float(100),
		"large int":      Int(9223372036854775807),
		"object list":    Seq(Map(Field("a", Int(1))), Map(Field("b", Int(2)))),
		"nested mapping": Map(Field("a", Map(Field("b", Map(Field("c", Int(1))))))),
		"object": Map(
			Field("true", Bool(true)),
			Field("false", Bool(false)),
			Field("null", Null()),
			Field("int", Int(12)),
			Field("float", Float(1.2)),
			Field("string", Str("hai")),
		),
		"deep mapping": Map(Field("a", Map(Field("b", Map(
			Field("c", Seq(Int(1), Int(2), Float(3.3), Int(4))),
			Field("d", Bool(true)),
		))))),
		"object list values": Seq(
			Map(
				Field("a", Seq(Int(1), Int(2), Int(3))),
				Field("b", Null()),
				Field("c", Map(Field("a", Int(1)))),
			),
			Map(Field("a", Int(1)), Field("y", Int(5))),
		),
		"empty values": Map(
			Field("none", Seq()),
			Field("one", Seq(Int(1))),
			Field("objects", Seq(Map(Field("x", Seq())), Map(Field("x", Seq(Null()))))),
		),
		"nested list value": Map(
			Field("grid", Seq(Int(0), Seq(Int(1), Int(2)), Int(3), Seq(Int(4), Seq(Int(5), Int(6))))),
			Field("after", Str("x")),
		),
	}

	for name, v := range tests {
		t.Run(name, func(t *testing.T) {
			roundTrip(t, v)
		})
	}
}

func TestRoundTripIndentStyles(t *testing.T) {
	v := Map(
		Field("bands", Seq(
			Map(
				Field("name", Str("Muse")),
				Field("members", Seq(
					Map(Field("name", Str("Matthew Bellamy")), Field("role", Seq(Str("Vocalist"), Str("Guitarist")))),
					Map(Field("name", Str("Dominic Howard")), Field("role", Str("Drummer"))),
				)),
			),
		)),
		Field("count", Int(1)),
	)

	for _, indent := range []int{-1, 0, 1, 2, 4, 8} {
		text, err := EncodeIndent(v, indent)
		require.NoError(t, err)
		got, err := Decode(text)
		require.NoError(t, err, "indent %d:\n%s", indent, text)
		assert.Truef(t, got.Equal(v), "indent %d changed the value:\n%s", indent, text)
	}
}

func TestCollapsing(t *testing.T) {
	list, err := Encode(Seq(Int(7)))
	require.NoError(t, err)
	bare, err := Encode(Int(7))
	require.NoError(t, err)
	assert.NotEqual(t, list, bare)

	got, err := Decode(list)
	require.NoError(t, err)
	assert.True(t, got.Equal(Seq(Int(7))), "got %s", got)

	got, err = Decode(bare)
	require.NoError(t, err)
	assert.True(t, got.Equal(Int(7)), "got %s", got)
}

func TestMarshalIndentTabs(t *testing.T) {
	out, err := MarshalIndent(Map(Field("a", Map(Field("b", Int(1))))), 0)
	require.NoError(t, err)
	assert.Equal(t, "a:\n\tb: 1\n", string(out))
}
