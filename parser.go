package hip

// ============================================================================
// Parser
// ============================================================================
//
// The parser is recursive descent over the token slice. Hip has no block
// delimiters besides the object list fences, so block boundaries come from
// comparing the Indent of the current token with the indent a production
// started at:
//
//	Value         := KeyValueBlock | ObjectList | EmptyList | LiteralList | Scalar
//	KeyValueBlock := (Identifier ':' Value)+
//	ObjectList    := '-' KeyValueBlock ('-' '-' KeyValueBlock)* '-'
//	EmptyList     := '-' '-'
//	LiteralList   := CommaList | NewlineList

// Parser turns a token sequence into a single root Value.
//
// Parse is one-shot: the first outcome, value or error, is kept and
// returned by every later call. A Parser is not safe for concurrent use.
type Parser struct {
	tokens []Token
	file   string
	pos    int

	done  bool
	value Value
	err   error
}

// NewParser returns a parser over tokens, as produced by Tokenize.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse returns the root value of the document.
func (p *Parser) Parse() (Value, error) {
	if !p.done {
		p.value, p.err = p.parseRoot()
		if p.err != nil {
			p.value = Value{}
		}
		p.done = true
	}
	return p.value, p.err
}

// Reset discards the remembered outcome so the next Parse starts again
// from the first token.
func (p *Parser) Reset() {
	p.pos = 0
	p.done = false
	p.value = Value{}
	p.err = nil
}

// parseRoot parses the document value and checks nothing follows it.
func (p *Parser) parseRoot() (Value, error) {
	v, err := p.parseValue()
	if err != nil {
		return Value{}, err
	}
	if t := p.cur(); t.Kind != tokenEOF {
		return Value{}, p.errorAt(t, "end of input")
	}
	return v, nil
}

// ============================================================================
// Token Access
// ============================================================================

// cur returns the current token, or an EOF token past the end.
func (p *Parser) cur() Token {
	return p.peek(0)
}

// peek returns the token n positions ahead of the current one.
func (p *Parser) peek(n int) Token {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i]
	}
	return Token{Kind: tokenEOF, Line: -1}
}

func (p *Parser) errorAt(t Token, expected string) error {
	return &ParseError{Expected: expected, Found: t.Text, Line: t.Line, File: p.file}
}

// ============================================================================
// Value Parsing
// ============================================================================

// parseValue dispatches on the current token.
func (p *Parser) parseValue() (Value, error) {
	t := p.cur()
	switch {
	case t.Kind == TokenIdent:
		return p.parseKeyValueBlock()
	case t.Kind == TokenHyphen:
		if p.peek(1).Kind == TokenHyphen {
			p.pos += 2
			return Seq(), nil
		}
		return p.parseObjectList()
	case t.Kind == TokenComma:
		// Nothing precedes the comma: an empty list.
		p.pos++
		return Seq(), nil
	case t.IsScalar():
		return p.parseLiteralList(), nil
	default:
		return Value{}, p.errorAt(t, "value")
	}
}

// parseKeyValueBlock parses consecutive "key: value" pairs that start at
// the indent of the first key. It stops, without consuming anything, at a
// fence hyphen, at a dedent or at the end of input.
func (p *Parser) parseKeyValueBlock() (Value, error) {
	start := p.cur().Indent
	var entries []Entry
	seen := make(map[string]bool)

	for {
		t := p.cur()
		if t.Kind == TokenHyphen || t.Kind == tokenEOF || t.Indent < start {
			break
		}
		if t.Kind != TokenIdent {
			return Value{}, p.errorAt(t, "identifier or '-'")
		}
		if t.Indent > start {
			return Value{}, &InvariantError{
				Line:   t.Line,
				Reason: "key indented past its block without a nested value consuming it",
				File:   p.file,
			}
		}
		if next := p.peek(1); next.Kind != TokenColon {
			return Value{}, p.errorAt(next, "':'")
		}
		if seen[t.Text] {
			return Value{}, p.errorAt(t, "unique key")
		}
		seen[t.Text] = true
		p.pos += 2

		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, Entry{Key: t.Text, Value: v})
	}

	return Map(entries...), nil
}

// parseObjectList parses fenced mappings. All fences share the indent of
// the opening hyphen; "--" closes one entry and opens the next.
func (p *Parser) parseObjectList() (Value, error) {
	start := p.cur().Indent
	var items []Value

	for {
		p.pos++ // opening fence

		entry, err := p.parseKeyValueBlock()
		if err != nil {
			return Value{}, err
		}
		if entry.Len() == 0 {
			return Value{}, p.errorAt(p.cur(), "identifier")
		}
		items = append(items, entry)

		t := p.cur()
		if t.Kind != TokenHyphen || t.Indent != start {
			return Value{}, p.errorAt(t, "'-'")
		}
		p.pos++ // closing fence

		if next := p.cur(); next.Kind != TokenHyphen || next.Indent != start {
			return Seq(items...), nil
		}
	}
}

// ============================================================================
// Literal Lists
// ============================================================================

// parseLiteralList decides between a comma list, a newline list and a bare
// scalar by looking at the token after the current scalar.
func (p *Parser) parseLiteralList() Value {
	t, next := p.cur(), p.peek(1)
	switch {
	case next.Kind == TokenComma:
		return p.parseCommaRun()
	case next.IsScalar() && next.Indent >= t.Indent:
		return p.parseNewlineRun()
	default:
		p.pos++
		return t.Value
	}
}

// parseCommaRun collects scalars while each one is followed by a comma.
// The result is always a sequence, so "1," is a list of one.
func (p *Parser) parseCommaRun() Value {
	var items []Value
	for p.cur().IsScalar() {
		items = append(items, p.cur().Value)
		p.pos++
		if p.cur().Kind != TokenComma {
			break
		}
		p.pos++
	}
	return Seq(items...)
}

// parseNewlineRun collects scalars at or past the indent of the current
// token. Deeper lines form a nested list, and a scalar followed by a comma
// starts a nested comma list.
func (p *Parser) parseNewlineRun() Value {
	start := p.cur().Indent
	var items []Value

	for t := p.cur(); t.IsScalar() && t.Indent >= start; t = p.cur() {
		switch {
		case t.Indent > start:
			items = append(items, p.parseNewlineRun())
		case p.peek(1).Kind == TokenComma:
			items = append(items, p.parseCommaRun())
		default:
			items = append(items, t.Value)
			p.pos++
		}
	}
	return Seq(items...)
}
