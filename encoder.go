package hip

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Options configures an Encoder.
type Options struct {
	// Indent is the number of spaces per nesting level. Zero or less
	// indents with one tab per level.
	Indent int
}

// DefaultOptions returns the options used by Encode.
func DefaultOptions() Options {
	return Options{Indent: 4}
}

// Encoder renders value trees as canonical Hip text. An Encoder keeps no
// state between calls but is not meant to be shared across goroutines.
type Encoder struct {
	unit string
}

// NewEncoder returns an Encoder using opts.
func NewEncoder(opts Options) *Encoder {
	unit := "\t"
	if opts.Indent > 0 {
		unit = strings.Repeat(" ", opts.Indent)
	}
	return &Encoder{unit: unit}
}

// Encode renders v. The output decodes back to a Value equal to v.
func (e *Encoder) Encode(v Value) (string, error) {
	w := &writer{unit: e.unit}
	if err := w.root(v); err != nil {
		return "", err
	}
	return w.sb.String(), nil
}

type writer struct {
	sb   strings.Builder
	unit string
}

func (w *writer) prefix(level int) {
	for i := 0; i < level; i++ {
		w.sb.WriteString(w.unit)
	}
}

// ============================================================================
// Dispatch
// ============================================================================

func (w *writer) root(v Value) error {
	switch v.kind {
	case KindMapping:
		return w.block(v, 0, "")
	case KindSequence:
		switch v.shape {
		case ShapeObjects:
			return w.objectList(v, 0, "")
		case ShapeScalars:
			if !isFlat(v) {
				return w.newlineList(v, 0, false, "")
			}
		}
	}
	return w.inline(v, "")
}

// inline writes a value that fits on the rest of the current line.
func (w *writer) inline(v Value, path string) error {
	if v.IsScalar() {
		return w.literal(v, path)
	}
	if v.kind == KindMapping {
		return &EncodeError{Path: path, Reason: "mapping cannot be written inline"}
	}

	switch v.shape {
	case ShapeEmpty:
		w.sb.WriteString("--")
		return nil
	case ShapeMixed:
		return &EncodeError{Path: path, Reason: "list mixes scalars and mappings"}
	case ShapeObjects:
		return &EncodeError{Path: path, Reason: "object list cannot be written inline"}
	}
	if !isFlat(v) {
		return &EncodeError{Path: path, Reason: "nested list cannot be written inline"}
	}
	return w.commaList(v, path)
}

// ============================================================================
// Literals
// ============================================================================

func (w *writer) literal(v Value, path string) error {
	switch v.kind {
	case KindNull:
		w.sb.WriteString("nil")
	case KindBool:
		if v.b {
			w.sb.WriteString("yes")
		} else {
			w.sb.WriteString("no")
		}
	case KindInt:
		w.sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return &EncodeError{Path: path, Reason: "float " + formatFloat(v.f) + " has no literal"}
		}
		w.sb.WriteString(formatFloat(v.f))
	case KindString:
		w.sb.WriteString(strconv.Quote(v.s))
	}
	return nil
}

// formatFloat returns the shortest text that reads back as the same float,
// keeping a fraction or exponent so it does not read back as an integer.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// ============================================================================
// Mappings
// ============================================================================

// keyRe matches keys that scan back as a single identifier token.
var keyRe = regexp.MustCompile(`^[A-Za-z_]\w*$`)

func validKey(key string) bool {
	switch key {
	case "yes", "no", "nil":
		return false
	}
	return keyRe.MatchString(key)
}

// block writes the entries of m at level, one "key: value" per line.
func (w *writer) block(m Value, level int, path string) error {
	if len(m.entries) == 0 {
		return &EncodeError{Path: path, Reason: "empty mapping has no representation"}
	}

	for _, e := range m.entries {
		at := joinKey(path, e.Key)
		if !validKey(e.Key) {
			return &EncodeError{Path: at, Reason: "key " + strconv.Quote(e.Key) + " is not an identifier"}
		}
		w.prefix(level)
		w.sb.WriteString(e.Key)
		w.sb.WriteByte(':')

		v := e.Value
		switch {
		case v.kind == KindMapping:
			w.sb.WriteByte('\n')
			if err := w.block(v, level+1, at); err != nil {
				return err
			}
		case v.kind == KindSequence && v.shape == ShapeObjects:
			w.sb.WriteByte('\n')
			if err := w.objectList(v, level+1, at); err != nil {
				return err
			}
			w.sb.WriteByte('\n')
		case v.kind == KindSequence && v.shape == ShapeScalars && !isFlat(v):
			w.sb.WriteByte('\n')
			if err := w.newlineList(v, level+1, false, at); err != nil {
				return err
			}
		default:
			w.sb.WriteByte(' ')
			if err := w.inline(v, at); err != nil {
				return err
			}
			w.sb.WriteByte('\n')
		}
	}
	return nil
}

// objectList writes fenced mappings at level:
//
//	-
//	a: 1
//	--
//	a: 2
//	-
func (w *writer) objectList(v Value, level int, path string) error {
	w.prefix(level)
	w.sb.WriteString("-\n")
	for i, item := range v.items {
		if i > 0 {
			w.prefix(level)
			w.sb.WriteString("--\n")
		}
		if err := w.block(item, level, joinIndex(path, i)); err != nil {
			return err
		}
	}
	w.prefix(level)
	w.sb.WriteByte('-')
	return nil
}

// ============================================================================
// Scalar Lists
// ============================================================================

// isFlat reports whether every item of a sequence is a scalar.
func isFlat(v Value) bool {
	for _, item := range v.items {
		if !item.IsScalar() {
			return false
		}
	}
	return true
}

// commaList writes a flat list on one line. A single item keeps a
// trailing comma so it does not collapse to a bare scalar.
func (w *writer) commaList(v Value, path string) error {
	for i, item := range v.items {
		if i > 0 {
			w.sb.WriteString(", ")
		}
		if err := w.literal(item, joinIndex(path, i)); err != nil {
			return err
		}
	}
	if len(v.items) == 1 {
		w.sb.WriteByte(',')
	}
	return nil
}

// newlineList writes one item per line at level. Flat nested lists of two
// or more items become comma lines; other nested lists move one level
// deeper. Two deeper lists in a row would read back as one, and a list
// that is not itself nested must start with a scalar for the parser to
// recognise it, so both are rejected.
func (w *writer) newlineList(v Value, level int, nested bool, path string) error {
	deeper := false
	for i, item := range v.items {
		at := joinIndex(path, i)
		switch {
		case item.IsScalar():
			w.prefix(level)
			if err := w.literal(item, at); err != nil {
				return err
			}
			w.sb.WriteByte('\n')
			deeper = false
		case item.kind != KindSequence:
			return &EncodeError{Path: at, Reason: "list mixes scalars and mappings"}
		case len(item.items) == 0:
			return &EncodeError{Path: at, Reason: "empty list inside a scalar list"}
		case isFlat(item) && len(item.items) > 1:
			if i == 0 && !nested {
				return &EncodeError{Path: at, Reason: "list must start with a scalar"}
			}
			w.prefix(level)
			if err := w.commaList(item, at); err != nil {
				return err
			}
			w.sb.WriteByte('\n')
			deeper = false
		default:
			if i == 0 {
				return &EncodeError{Path: at, Reason: "list must start with a scalar"}
			}
			if deeper {
				return &EncodeError{Path: at, Reason: "adjacent nested lists need a scalar between them"}
			}
			if err := w.newlineList(item, level+1, true, at); err != nil {
				return err
			}
			deeper = true
		}
	}
	return nil
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func joinIndex(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
