package hip

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ============================================================================
// Rule Table
// ============================================================================
//
// The scanner tries each rule in order at the current position and the first
// match wins. The table is never modified after initialisation, so scanners
// running on different goroutines can share it.

type rule struct {
	kind TokenKind
	re   *regexp.Regexp
}

var rules = []rule{
	{TokenString, regexp.MustCompile(`^"(?:[^\\"]|\\.)*"`)},
	{TokenString, regexp.MustCompile(`^'(?:[^\\']|\\.)*'`)},
	{TokenFloat, regexp.MustCompile(`^[-+]?(?:[0-9]+\.[0-9]*|[0-9]*\.[0-9]+|[0-9]+)(?:[eE][-+]?[0-9]+)?`)},
	{TokenBool, regexp.MustCompile(`^yes\b`)},
	{TokenBool, regexp.MustCompile(`^no\b`)},
	{TokenNull, regexp.MustCompile(`^nil\b`)},
	{tokenComment, regexp.MustCompile(`^#[^\r\n]*`)},
	{tokenBreak, regexp.MustCompile(`^(?:\r\n|\r|\n)\s*`)},
	{tokenSpace, regexp.MustCompile(`^[ \f\v]+`)},
	{TokenHyphen, regexp.MustCompile(`^-`)},
	{TokenColon, regexp.MustCompile(`^:`)},
	{TokenComma, regexp.MustCompile(`^,`)},
	{TokenIdent, regexp.MustCompile(`^\w+`)},
}

// ============================================================================
// Scanner
// ============================================================================

// scanner holds the state of one tokenization. Nothing outside the scanner
// observes or shares it.
type scanner struct {
	src    string
	file   string
	pos    int
	line   int
	indent int
}

// Tokenize converts a Hip document into its token sequence. Comments,
// whitespace and line breaks are consumed; their effect survives only as
// the Indent and Line of the tokens that follow them.
func Tokenize(src string) ([]Token, error) {
	return tokenize(src, "")
}

func tokenize(src, file string) ([]Token, error) {
	s := &scanner{
		src:  strings.TrimSpace(strings.ReplaceAll(src, "\t", " ")),
		file: file,
	}

	var tokens []Token
	for {
		t, err := s.next()
		if err != nil {
			return nil, err
		}
		if t.Kind == tokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, t)
	}
}

// next returns the next emitted token, skipping discarded matches.
func (s *scanner) next() (Token, error) {
	for s.pos < len(s.src) {
		t, err := s.match()
		if err != nil {
			return Token{}, err
		}
		switch t.Kind {
		case tokenComment, tokenSpace:
			continue
		case tokenBreak:
			n, last := countBreaks(t.Text)
			s.line += n
			s.indent = len(t.Text) - last
			continue
		case TokenString:
			// Quoted literals may hold raw line breaks.
			n, _ := countBreaks(t.Text)
			s.line += n
		}
		return t, nil
	}
	return Token{Kind: tokenEOF, Line: s.line, Indent: s.indent}, nil
}

// match applies the rule table at the current position.
func (s *scanner) match() (Token, error) {
	rest := s.src[s.pos:]
	for _, r := range rules {
		loc := r.re.FindStringIndex(rest)
		if loc == nil {
			continue
		}
		text := rest[:loc[1]]
		t := Token{Kind: r.kind, Text: text, Indent: s.indent, Line: s.line}
		if err := s.decode(&t); err != nil {
			return Token{}, err
		}
		s.pos += loc[1]
		return t, nil
	}

	ch, _ := utf8.DecodeRuneInString(rest)
	return Token{}, &LexError{Line: s.line, Char: ch, File: s.file}
}

// countBreaks returns the number of line breaks in text and the offset
// just past the last one. "\r\n" counts once.
func countBreaks(text string) (n, last int) {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			n++
			last = i + 1
		case '\n':
			n++
			last = i + 1
		}
	}
	return n, last
}

// decode fills in the literal value of scalar tokens.
func (s *scanner) decode(t *Token) error {
	switch t.Kind {
	case TokenString:
		str, err := unquote(t.Text)
		if err != nil {
			return &LexError{Line: s.line, Char: rune(t.Text[0]), Reason: "Bad escape in string", File: s.file}
		}
		t.Value = Str(str)
	case TokenFloat:
		if n, err := strconv.ParseInt(t.Text, 10, 64); err == nil {
			t.Kind = TokenInt
			t.Value = Int(n)
			return nil
		}
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return &LexError{Line: s.line, Char: rune(t.Text[0]), Reason: "Number out of range " + strconv.Quote(t.Text), File: s.file}
		}
		t.Value = Float(f)
	case TokenBool:
		t.Value = Bool(t.Text == "yes")
	case TokenNull:
		t.Value = Null()
	}
	return nil
}

// ============================================================================
// String Literals
// ============================================================================

var errBadEscape = errors.New("bad escape")

// unquote strips the delimiters of a quoted literal and decodes its
// backslash escapes. Either quote character may be escaped inside either
// kind of literal.
func unquote(lit string) (string, error) {
	body := lit[1 : len(lit)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var out strings.Builder
	out.Grow(len(body))
	for len(body) > 0 {
		if body[0] != '\\' {
			i := strings.IndexByte(body, '\\')
			if i < 0 {
				i = len(body)
			}
			out.WriteString(body[:i])
			body = body[i:]
			continue
		}
		if strings.HasPrefix(body, `\'`) || strings.HasPrefix(body, `\"`) {
			out.WriteByte(body[1])
			body = body[2:]
			continue
		}
		r, multibyte, tail, err := strconv.UnquoteChar(body, 0)
		if err != nil {
			return "", errBadEscape
		}
		if !multibyte {
			out.WriteByte(byte(r))
		} else {
			out.WriteRune(r)
		}
		body = tail
	}
	return out.String(), nil
}
