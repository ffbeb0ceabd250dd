package keyvalues

import (
	"fmt"
	"io"
	"strings"
)

// ParseError reports a structural problem in a KeyValues document.
type ParseError struct {
	Offset int // byte offset into the input
	Line   int // 1-based
	Column int // 1-based, in bytes
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("keyvalues: %s at line %d, column %d", e.Reason, e.Line, e.Column)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokString
	tokOpen
	tokClose
	tokCondition
)

type token struct {
	kind   tokenKind
	text   string
	offset int
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) position(offset int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < offset && i < len(l.src); i++ {
		if l.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func (l *lexer) errorAt(offset int, format string, args ...any) *ParseError {
	line, col := l.position(offset)
	return &ParseError{
		Offset: offset,
		Line:   line,
		Column: col,
		Reason: fmt.Sprintf(format, args...),
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case isSpace(c):
			l.pos++
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			nl := strings.IndexByte(l.src[l.pos:], '\n')
			if nl < 0 {
				l.pos = len(l.src)
			} else {
				l.pos += nl + 1
			}
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, offset: start}, nil
	}

	switch l.src[l.pos] {
	case '{':
		l.pos++
		return token{kind: tokOpen, offset: start}, nil
	case '}':
		l.pos++
		return token{kind: tokClose, offset: start}, nil
	case '"':
		return l.quoted()
	case '[':
		end := strings.IndexByte(l.src[l.pos:], ']')
		if end < 0 {
			return token{}, l.errorAt(start, "unterminated conditional")
		}
		l.pos += end + 1
		return token{kind: tokCondition, text: l.src[start:l.pos], offset: start}, nil
	}

	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isSpace(c) || c == '"' || c == '{' || c == '}' {
			break
		}
		l.pos++
	}
	return token{kind: tokString, text: l.src[start:l.pos], offset: start}, nil
}

func (l *lexer) quoted() (token, error) {
	start := l.pos
	l.pos++ // opening quote

	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '"':
			l.pos++
			return token{kind: tokString, text: b.String(), offset: start}, nil
		case '\\':
			if l.pos+1 >= len(l.src) {
				return token{}, l.errorAt(start, "unterminated string")
			}
			switch esc := l.src[l.pos+1]; esc {
			case '"', '\\':
				b.WriteByte(esc)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
			l.pos += 2
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return token{}, l.errorAt(start, "unterminated string")
}

type frame struct {
	key    string
	node   *Node
	offset int
}

// Parse reads a KeyValues document and returns its top level as a
// container node.
//
// Open blocks are tracked on an explicit stack, so deeply nested input
// cannot exhaust the goroutine stack.
func Parse(text string) (*Node, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	lex := &lexer{src: text}
	stack := []frame{{node: NewContainer()}}

	var (
		key       string
		keyOffset int
		haveKey   bool
	)
	for {
		tok, err := lex.next()
		if err != nil {
			return nil, err
		}
		top := stack[len(stack)-1].node

		switch tok.kind {
		case tokString:
			if !haveKey {
				key, keyOffset, haveKey = tok.text, tok.offset, true
				continue
			}
			top.Set(key, NewLeaf(tok.text))
			haveKey = false

		case tokCondition:
			// platform conditionals such as [$WIN32] are not evaluated

		case tokOpen:
			if !haveKey {
				return nil, lex.errorAt(tok.offset, "unexpected '{' where a key was expected")
			}
			child, ok := top.Get(key)
			if !ok || child.IsLeaf() {
				child = NewContainer()
				top.Set(key, child)
			}
			stack = append(stack, frame{key: key, node: child, offset: keyOffset})
			haveKey = false

		case tokClose:
			if haveKey {
				return nil, lex.errorAt(keyOffset, "key %q has no value", key)
			}
			if len(stack) == 1 {
				return nil, lex.errorAt(tok.offset, "unexpected '}'")
			}
			stack = stack[:len(stack)-1]

		case tokEOF:
			if haveKey {
				return nil, lex.errorAt(keyOffset, "key %q has no value", key)
			}
			if len(stack) > 1 {
				open := stack[len(stack)-1]
				line, _ := lex.position(open.offset)
				return nil, lex.errorAt(tok.offset, "unterminated block %q opened at line %d", open.key, line)
			}
			return stack[0].node, nil
		}
	}
}

// ParseReader reads all of r and parses it.
func ParseReader(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}
