// Package hip implements encoding and decoding of Hip documents.
//
// Hip is an indentation-sensitive, human-readable serialization format in
// the spirit of YAML. It encodes scalars, ordered mappings, lists of
// scalars and lists of mappings:
//
//	# a comment
//	name: "Muse"
//	active: yes
//	genre: "Alternative Rock", "New Prog"
//	members:
//	    -
//	    name: "Matthew Bellamy"
//	    role:
//	        "Vocalist"
//	        "Guitarist"
//	    --
//	    name: "Dominic Howard"
//	    role: "Drummer"
//	    -
//
// # Parsing Pipeline
//
// Decoding runs in two phases:
//
//  1. Tokenizer: Converts source text into tokens. Comments, whitespace and
//     line breaks are dropped; each token remembers the indent and line of
//     the source line it starts on.
//
//  2. Parser: Recursively parses the token sequence into a Value, using
//     indent changes and one token of lookahead in place of delimiters.
//
// Encoding is the structural inverse: Encode output always decodes to an
// equal Value.
//
// # Collapsing
//
// A list of one scalar written without a list marker is just that scalar:
// "a: 1" holds 1, while "a: 1," holds [1]. Encode writes one-element lists
// with the trailing comma so they survive a round trip.
package hip

// ============================================================================
// Public API
// ============================================================================

// Decode parses a Hip document.
//
// The mapping between Hip and Value kinds is:
//   - nil -> KindNull
//   - yes, no -> KindBool
//   - 12, -3 -> KindInt (integers outside int64 become floats)
//   - 1.5, 2e3 -> KindFloat
//   - "text", 'text' -> KindString
//   - comma, newline and fenced lists -> KindSequence
//   - key: value blocks -> KindMapping
func Decode(text string) (Value, error) {
	return decode(text, "")
}

// Unmarshal parses Hip-encoded data and returns the result.
func Unmarshal(data []byte) (Value, error) {
	return decode(string(data), "")
}

// UnmarshalFile parses Hip-encoded data with a filename for error messages.
func UnmarshalFile(data []byte, filename string) (Value, error) {
	return decode(string(data), filename)
}

// Encode returns the Hip encoding of v, indented four spaces per level.
func Encode(v Value) (string, error) {
	return NewEncoder(DefaultOptions()).Encode(v)
}

// EncodeIndent is like Encode with indent spaces per level, or tabs if
// indent is not positive.
func EncodeIndent(v Value, indent int) (string, error) {
	return NewEncoder(Options{Indent: indent}).Encode(v)
}

// Marshal returns the Hip encoding of v.
func Marshal(v Value) ([]byte, error) {
	return MarshalIndent(v, DefaultOptions().Indent)
}

// MarshalIndent is like Marshal with a custom indent.
func MarshalIndent(v Value, indent int) ([]byte, error) {
	s, err := EncodeIndent(v, indent)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func decode(text, filename string) (Value, error) {
	tokens, err := tokenize(text, filename)
	if err != nil {
		return Value{}, err
	}

	p := NewParser(tokens)
	p.file = filename
	return p.Parse()
}
