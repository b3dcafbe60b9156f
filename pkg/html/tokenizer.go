package html

import (
	"fmt"
	gohtml "html"
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenStartTag TokenType = iota
	TokenEndTag
	TokenText
	TokenEOF
)

type Token struct {
	Type       TokenType
	TagName    string
	Attributes map[string]string
	Text       string
}

type Tokenizer struct {
	input string
	pos   int
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

func (t *Tokenizer) NextToken() (Token, error) {
	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF}, nil
	}
	// Whitespace before text is significant and handled by readText;
	// only markup starts with '<'.
	if t.input[t.pos] == '<' {
		return t.readTag()
	}
	return t.readText()
}

func (t *Tokenizer) readTag() (Token, error) {
	t.pos++

	// Comments, doctype, and processing instructions produce no tokens.
	if t.pos < len(t.input) {
		switch t.input[t.pos] {
		case '!':
			if strings.HasPrefix(t.input[t.pos:], "!--") {
				t.skipComment()
			} else {
				t.skipPast('>')
			}
			return t.NextToken()
		case '?':
			t.skipPast('>')
			return t.NextToken()
		}
	}

	isEndTag := false
	if t.pos < len(t.input) && t.input[t.pos] == '/' {
		isEndTag = true
		t.pos++
	}

	tagName := t.readTagName()
	if tagName == "" {
		return Token{}, fmt.Errorf("expected tag name at position %d", t.pos)
	}

	if isEndTag {
		t.skipPast('>')
		return Token{Type: TokenEndTag, TagName: tagName}, nil
	}

	attributes := make(map[string]string)
	for {
		t.skipWhitespace()
		if t.pos >= len(t.input) {
			return Token{}, fmt.Errorf("unexpected EOF in <%s>", tagName)
		}
		ch := t.input[t.pos]
		if ch == '>' {
			t.pos++
			break
		}
		if ch == '/' {
			// XHTML self-closing syntax: treat like a plain start tag,
			// void elements are handled by the parser.
			t.pos++
			continue
		}
		name, value, err := t.readAttribute()
		if err != nil {
			return Token{}, err
		}
		attributes[name] = value
	}
	return Token{Type: TokenStartTag, TagName: tagName, Attributes: attributes}, nil
}

func (t *Tokenizer) skipComment() {
	t.pos += 3
	for t.pos+2 < len(t.input) {
		if t.input[t.pos:t.pos+3] == "-->" {
			t.pos += 3
			return
		}
		t.pos++
	}
	t.pos = len(t.input)
}

func (t *Tokenizer) readTagName() string {
	start := t.pos
	for t.pos < len(t.input) && isNameChar(t.input[t.pos]) {
		t.pos++
	}
	return strings.ToLower(t.input[start:t.pos])
}

func (t *Tokenizer) readAttribute() (string, string, error) {
	start := t.pos
	for t.pos < len(t.input) && isNameChar(t.input[t.pos]) {
		t.pos++
	}
	name := strings.ToLower(t.input[start:t.pos])
	if name == "" {
		return "", "", fmt.Errorf("expected attribute name at position %d", t.pos)
	}

	t.skipWhitespace()
	if t.pos >= len(t.input) || t.input[t.pos] != '=' {
		return name, "", nil
	}
	t.pos++
	t.skipWhitespace()

	if t.pos >= len(t.input) {
		return "", "", fmt.Errorf("expected attribute value at position %d", t.pos)
	}
	if quote := t.input[t.pos]; quote == '"' || quote == '\'' {
		t.pos++
		start = t.pos
		for t.pos < len(t.input) && t.input[t.pos] != quote {
			t.pos++
		}
		if t.pos >= len(t.input) {
			return "", "", fmt.Errorf("unterminated attribute value")
		}
		value := t.input[start:t.pos]
		t.pos++
		return name, value, nil
	}

	start = t.pos
	for t.pos < len(t.input) && !unicode.IsSpace(rune(t.input[t.pos])) && t.input[t.pos] != '>' {
		t.pos++
	}
	return name, t.input[start:t.pos], nil
}

func (t *Tokenizer) readText() (Token, error) {
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '<' {
		t.pos++
	}
	raw := t.input[start:t.pos]

	// Pure inter-tag whitespace (indentation) carries no content.
	if strings.TrimSpace(raw) == "" {
		if t.pos < len(t.input) {
			return t.NextToken()
		}
		return Token{Type: TokenEOF}, nil
	}

	text := normalizeWhitespace(raw)
	text = gohtml.UnescapeString(text)
	return Token{Type: TokenText, Text: text}, nil
}

// normalizeWhitespace collapses runs of whitespace to a single space while
// preserving a single boundary space, so word gaps around elements survive.
func normalizeWhitespace(s string) string {
	hasLeading := len(s) > 0 && unicode.IsSpace(rune(s[0]))
	hasTrailing := len(s) > 0 && unicode.IsSpace(rune(s[len(s)-1]))

	fields := strings.Fields(s)
	if len(fields) == 0 {
		if hasLeading || hasTrailing {
			return " "
		}
		return ""
	}

	result := strings.Join(fields, " ")
	if hasLeading {
		result = " " + result
	}
	if hasTrailing {
		result = result + " "
	}
	return result
}

// ReadRawUntil consumes raw content up to the closing end tag, for raw text
// elements like <style> and <script> where '<' does not start a tag.
func (t *Tokenizer) ReadRawUntil(endTag string) string {
	needle := "</" + strings.ToLower(endTag) + ">"
	start := t.pos
	for t.pos+len(needle) <= len(t.input) {
		if strings.ToLower(t.input[t.pos:t.pos+len(needle)]) == needle {
			content := t.input[start:t.pos]
			t.pos += len(needle)
			return content
		}
		t.pos++
	}
	content := t.input[start:]
	t.pos = len(t.input)
	return content
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && unicode.IsSpace(rune(t.input[t.pos])) {
		t.pos++
	}
}

// skipPast advances beyond the next occurrence of target, or to EOF.
func (t *Tokenizer) skipPast(target byte) {
	for t.pos < len(t.input) && t.input[t.pos] != target {
		t.pos++
	}
	if t.pos < len(t.input) {
		t.pos++
	}
}

func isNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == ':'
}
