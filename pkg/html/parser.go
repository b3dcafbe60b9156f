package html

import (
	"fmt"
	"net/url"
	"strings"
)

type Parser struct {
	tokenizer *Tokenizer
	doc       *Document
	stack     []*Node
}

func NewParser(input string) *Parser {
	return &Parser{
		tokenizer: NewTokenizer(input),
		doc:       NewDocument(),
	}
}

func Parse(input string) (*Document, error) {
	return NewParser(input).Parse()
}

func (p *Parser) Parse() (*Document, error) {
	p.stack = []*Node{p.doc.Root}

	for {
		token, err := p.tokenizer.NextToken()
		if err != nil {
			return nil, fmt.Errorf("tokenizer error: %w", err)
		}
		if token.Type == TokenEOF {
			break
		}

		switch token.Type {
		case TokenStartTag:
			// Raw text elements never enter the tree: <style> feeds the
			// stylesheet list, <script> content is discarded (page scripts
			// are not executed here).
			if token.TagName == "style" {
				p.doc.Stylesheets = append(p.doc.Stylesheets, p.tokenizer.ReadRawUntil("style"))
				continue
			}
			if token.TagName == "script" {
				p.tokenizer.ReadRawUntil("script")
				continue
			}

			if isBlockElement(token.TagName) {
				p.autoCloseP()
			}

			node := &Node{
				Type:       ElementNode,
				TagName:    token.TagName,
				Attributes: token.Attributes,
				Children:   make([]*Node, 0),
			}
			p.currentParent().AddChild(node)

			if token.TagName == "link" {
				p.captureLinkStylesheet(token.Attributes)
			}

			if !isVoidElement(token.TagName) {
				p.stack = append(p.stack, node)
			}

		case TokenText:
			if token.Text != "" {
				p.currentParent().AppendText(token.Text)
			}

		case TokenEndTag:
			p.closeTag(token.TagName)
		}
	}

	return p.doc, nil
}

func (p *Parser) currentParent() *Node {
	if len(p.stack) == 0 {
		return p.doc.Root
	}
	return p.stack[len(p.stack)-1]
}

// closeTag pops the stack until the matching tag is found and closed.
// An unmatched end tag is ignored.
func (p *Parser) closeTag(tagName string) {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == tagName {
			p.stack = p.stack[:i]
			return
		}
	}
}

// autoCloseP closes an open <p> element when a block-level sibling starts.
func (p *Parser) autoCloseP() {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == "p" {
			p.stack = p.stack[:i]
			return
		}
		if isBlockElement(p.stack[i].TagName) {
			return
		}
	}
}

// captureLinkStylesheet records CSS from <link rel="stylesheet"> elements
// whose href is a data URI. File and network stylesheets are out of scope
// for fixture parsing.
func (p *Parser) captureLinkStylesheet(attrs map[string]string) {
	if rel, ok := attrs["rel"]; !ok || !strings.Contains(rel, "stylesheet") {
		return
	}
	href := strings.TrimSpace(attrs["href"])
	if !strings.HasPrefix(href, "data:text/css,") {
		return
	}
	encoded := href[len("data:text/css,"):]
	decoded, err := url.PathUnescape(encoded)
	if err != nil {
		decoded = encoded
	}
	p.doc.Stylesheets = append(p.doc.Stylesheets, decoded)
}

// isBlockElement reports tags that auto-close an open <p>.
func isBlockElement(tagName string) bool {
	switch tagName {
	case "address", "article", "aside", "blockquote", "details", "dialog",
		"dd", "div", "dl", "dt", "fieldset", "figcaption", "figure",
		"footer", "form", "h1", "h2", "h3", "h4", "h5", "h6",
		"header", "hgroup", "hr", "li", "main", "nav", "ol",
		"p", "pre", "section", "table", "ul":
		return true
	}
	return false
}

func isVoidElement(tagName string) bool {
	switch tagName {
	case "br", "hr", "img", "input", "meta", "link", "area", "base",
		"col", "embed", "param", "source", "track", "wbr":
		return true
	}
	return false
}
