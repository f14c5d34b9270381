package hip

import (
	"errors"
	"fmt"
)

// ErrInvariant is matched by every InvariantError.
var ErrInvariant = errors.New("hip: internal invariant violated")

// locSuffix formats the location part of an error message.
// Lines are stored zero-based and printed one-based.
func locSuffix(file string, line int) string {
	return fmt.Sprintf(" on line %d%s", line+1, fileSuffix(file))
}

func fileSuffix(file string) string {
	if file == "" {
		return ""
	}
	return fmt.Sprintf(" of <%s>", file)
}

// LexError reports a position where no token rule matches, or a literal
// that matched a rule but could not be decoded.
type LexError struct {
	Line   int  // zero-based
	Char   rune // offending character
	Reason string
	File   string
}

func (e *LexError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s%s", e.Reason, locSuffix(e.File, e.Line))
	}
	return fmt.Sprintf("Unknown character %q%s", e.Char, locSuffix(e.File, e.Line))
}

// ParseError reports a token stream that does not match the grammar.
// Found is the raw text of the offending token; it is empty when the
// stream ended early.
type ParseError struct {
	Expected string
	Found    string
	Line     int // zero-based, -1 at end of input
	File     string
}

func (e *ParseError) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("Expected %s found end of input%s", e.Expected, fileSuffix(e.File))
	}
	return fmt.Sprintf("Expected %s found %q%s", e.Expected, e.Found, locSuffix(e.File, e.Line))
}

// InvariantError reports an impossible parser state. It indicates a defect
// in the parser's indent accounting rather than a malformed document and is
// never returned as a *ParseError.
type InvariantError struct {
	Line   int // zero-based
	Reason string
	File   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("Parser invariant violated: %s%s", e.Reason, locSuffix(e.File, e.Line))
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}

// EncodeError reports a value tree that has no Hip rendering.
// Path locates the offending value, e.g. "bands[1].members".
type EncodeError struct {
	Path   string
	Reason string
}

func (e *EncodeError) Error() string {
	if e.Path == "" {
		return "hip: cannot encode value: " + e.Reason
	}
	return fmt.Sprintf("hip: cannot encode %s: %s", e.Path, e.Reason)
}
