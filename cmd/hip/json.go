package main

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Python3pkg/hip"
	"github.com/sugawarayuuta/sonnet"
)

// ============================================================================
// Hip -> JSON
// ============================================================================

func hipToJSON(data []byte, name string, indent int) ([]byte, error) {
	v, err := hip.UnmarshalFile(data, name)
	if err != nil {
		return nil, err
	}
	return encodeJSON(v, indent)
}

// encodeJSON writes mappings field by field so that key order survives;
// going through map[string]any would sort the keys.
func encodeJSON(v hip.Value, indent int) ([]byte, error) {
	var compact bytes.Buffer
	if err := writeJSON(&compact, v); err != nil {
		return nil, err
	}

	unit := "\t"
	if indent > 0 {
		unit = strings.Repeat(" ", indent)
	}
	var out bytes.Buffer
	if err := sonnet.Indent(&out, compact.Bytes(), "", unit); err != nil {
		return nil, fmt.Errorf("indent json: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v hip.Value) error {
	switch v.Kind() {
	case hip.KindSequence:
		items, _ := v.AsSeq()
		buf.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case hip.KindMapping:
		entries, _ := v.AsMap()
		buf.WriteByte('{')
		for i, e := range entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := sonnet.Marshal(e.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, e.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case hip.KindFloat:
		f, _ := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("json has no literal for %v", f)
		}
		buf.WriteString(jsonFloat(f))
		return nil
	}

	b, err := sonnet.Marshal(v.Interface())
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// jsonFloat keeps a fraction or exponent on whole floats so that they read
// back as floats rather than integers.
func jsonFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// ============================================================================
// JSON -> Hip
// ============================================================================

func jsonToHip(data []byte, _ string, indent int) ([]byte, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return encodeHip(v, indent)
}

// decodeJSON reads one JSON value token by token, keeping object members
// in document order. Numbers that fit int64 become integers.
func decodeJSON(data []byte) (hip.Value, error) {
	dec := sonnet.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return hip.Value{}, fmt.Errorf("json: %w", err)
	}
	return readJSON(dec, tok)
}

func readJSON(dec *sonnet.Decoder, tok sonnet.Token) (hip.Value, error) {
	switch t := tok.(type) {
	case nil:
		return hip.Null(), nil
	case bool:
		return hip.Bool(t), nil
	case string:
		return hip.Str(t), nil
	case float64:
		return hip.Float(t), nil
	case sonnet.Number:
		if i, err := t.Int64(); err == nil {
			return hip.Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return hip.Value{}, fmt.Errorf("json: number %s: %w", t, err)
		}
		return hip.Float(f), nil
	case sonnet.Delim:
		switch t {
		case '[':
			return readJSONArray(dec)
		case '{':
			return readJSONObject(dec)
		}
	}
	return hip.Value{}, fmt.Errorf("json: unexpected token %v", tok)
}

func readJSONArray(dec *sonnet.Decoder) (hip.Value, error) {
	var items []hip.Value
	for {
		tok, err := dec.Token()
		if err != nil {
			return hip.Value{}, fmt.Errorf("json: %w", err)
		}
		if tok == sonnet.Delim(']') {
			return hip.Seq(items...), nil
		}
		item, err := readJSON(dec, tok)
		if err != nil {
			return hip.Value{}, err
		}
		items = append(items, item)
	}
}

func readJSONObject(dec *sonnet.Decoder) (hip.Value, error) {
	var entries []hip.Entry
	for {
		tok, err := dec.Token()
		if err != nil {
			return hip.Value{}, fmt.Errorf("json: %w", err)
		}
		if tok == sonnet.Delim('}') {
			return hip.Map(entries...), nil
		}
		key, ok := tok.(string)
		if !ok {
			return hip.Value{}, fmt.Errorf("json: expected object key, got %v", tok)
		}

		tok, err = dec.Token()
		if err != nil {
			return hip.Value{}, fmt.Errorf("json: %w", err)
		}
		value, err := readJSON(dec, tok)
		if err != nil {
			return hip.Value{}, err
		}
		entries = append(entries, hip.Field(key, value))
	}
}
