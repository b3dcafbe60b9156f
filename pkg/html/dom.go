package html

// Node is one element or text node in the document tree.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Document is a parsed page: the element tree plus the CSS text collected
// from <style> tags and stylesheet links.
type Document struct {
	Root        *Node
	Stylesheets []string
}

func NewDocument() *Document {
	return &Document{
		Root: &Node{
			Type:     ElementNode,
			TagName:  "document",
			Children: make([]*Node, 0),
		},
		Stylesheets: make([]string, 0),
	}
}

// GetAttribute returns the attribute value, or "" when the attribute is
// absent. Indexing handles a nil attribute map.
func (n *Node) GetAttribute(name string) string {
	return n.Attributes[name]
}

// AddChild adds a child node and sets up the parent relationship.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child.
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.Children = append(n.Children, &Node{
		Type:   TextNode,
		Text:   text,
		Parent: n,
	})
}
