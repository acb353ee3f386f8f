// Package xml builds, splices, validates and queries XML documents on top
// of xmlquery node trees.
//
// Documents are assembled as trees rather than strings so that rendered
// fragments (MathML, highlighted code) can be parsed and grafted in as real
// structure. Serialization never indents: mixed content must round-trip
// exactly.
//
// Security Notes:
//   - XXE (External Entity) attacks are mitigated by using Go's xml.Decoder
//     which doesn't fetch external entities by default, and we explicitly
//     disable entity expansion in validation functions.
//   - The xmlquery library is used for parsing, which uses Go's encoding/xml
//     internally and inherits its security properties.
package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/quizpack/core/encoding"
)

// fragmentRoot wraps a fragment so that multi-rooted markup parses.
const fragmentRoot = "fragment"

// Document represents an XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an XML node (element, text, attribute, etc.).
type Node struct {
	node *xmlquery.Node
}

// ValidationResult contains the result of XML validation.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError represents a single validation error.
type ValidationError struct {
	Line    int
	Column  int
	Message string
}

func (e ValidationError) String() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// NewDocument returns an empty document carrying an
// <?xml version="1.0" encoding="UTF-8"?> declaration.
func NewDocument() *Document {
	root := &xmlquery.Node{Type: xmlquery.DocumentNode}
	decl := &xmlquery.Node{
		Type: xmlquery.DeclarationNode,
		Data: "xml",
		Attr: []xmlquery.Attr{
			{Name: xml.Name{Local: "version"}, Value: "1.0"},
			{Name: xml.Name{Local: "encoding"}, Value: "UTF-8"},
		},
	}
	xmlquery.AddChild(root, decl)
	return &Document{root: root}
}

// SetRoot appends the document element.
func (d *Document) SetRoot(name string, attrs ...string) *xmlquery.Node {
	return AppendElement(d.root, name, attrs...)
}

// Element creates a detached element. attrs are name/value pairs in
// output order; a trailing unpaired name is ignored. Characters XML cannot
// carry are replaced in values.
func Element(name string, attrs ...string) *xmlquery.Node {
	n := &xmlquery.Node{Type: xmlquery.ElementNode, Data: name}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, xmlquery.Attr{
			Name:  xml.Name{Local: attrs[i]},
			Value: encoding.SanitizeXML(attrs[i+1]),
		})
	}
	return n
}

// AppendElement creates an element and appends it to parent.
func AppendElement(parent *xmlquery.Node, name string, attrs ...string) *xmlquery.Node {
	n := Element(name, attrs...)
	xmlquery.AddChild(parent, n)
	return n
}

// AppendText appends a text node. Escaping happens on output; characters
// XML cannot carry are replaced with U+FFFD here.
func AppendText(parent *xmlquery.Node, text string) {
	xmlquery.AddChild(parent, &xmlquery.Node{Type: xmlquery.TextNode, Data: encoding.SanitizeXML(text)})
}

// ParseFragment parses markup that may hold several top-level nodes and
// returns the detached nodes in order.
func ParseFragment(fragment string) ([]*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(strings.NewReader("<" + fragmentRoot + ">" + fragment + "</" + fragmentRoot + ">"))
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}

	var wrapper *xmlquery.Node
	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			wrapper = child
			break
		}
	}
	if wrapper == nil || wrapper.Data != fragmentRoot || wrapper.NextSibling != nil {
		return nil, fmt.Errorf("parsing fragment: unbalanced markup")
	}

	var nodes []*xmlquery.Node
	for child := wrapper.FirstChild; child != nil; {
		next := child.NextSibling
		xmlquery.RemoveFromTree(child)
		nodes = append(nodes, child)
		child = next
	}
	return nodes, nil
}

// SpliceFragment parses fragment and appends its nodes to parent. On error
// parent is left untouched.
func SpliceFragment(parent *xmlquery.Node, fragment string) error {
	nodes, err := ParseFragment(fragment)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		xmlquery.AddChild(parent, n)
	}
	return nil
}

// Parse parses XML data and returns a Document.
func Parse(data []byte) (*Document, error) {
	reader := bytes.NewReader(data)
	root, err := xmlquery.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// Validate checks XML data for well-formedness.
// If schema is nil, only well-formedness is checked; schema validation is
// not supported and a non-nil schema is reported as an error.
//
// Security: This function is protected against XXE (XML External Entity) attacks
// by disabling entity expansion. Go's xml.Decoder does not fetch external entities
// by default, and we explicitly disable internal entity expansion as well.
func Validate(data []byte, schema []byte) ValidationResult {
	result := ValidationResult{Valid: true}
	if schema != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Message: "schema validation is not supported"})
		return result
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Entity = map[string]string{}

	sawRoot := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			line, col := decoder.InputPos()
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Line:    line,
				Column:  col,
				Message: err.Error(),
			})
			return result
		}
		if _, ok := tok.(xml.StartElement); ok {
			sawRoot = true
		}
	}

	if !sawRoot {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Line: 1, Message: "document has no root element"})
	}
	return result
}

// Root returns the root element of the document.
func (d *Document) Root() *Node {
	if d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// XPath executes an XPath query and returns matching nodes.
func (d *Document) XPath(expr string) ([]*Node, error) {
	// Compile the expression to check for errors
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	nodes := xmlquery.QuerySelectorAll(d.root, compiled)
	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result, nil
}

// XPathFirst executes an XPath query and returns the first matching node.
func (d *Document) XPathFirst(expr string) (*Node, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	node := xmlquery.QuerySelector(d.root, compiled)
	if node == nil {
		return nil, nil
	}
	return &Node{node: node}, nil
}

// Count evaluates a numeric XPath expression such as count(//item).
func (d *Document) Count(expr string) (int, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return 0, fmt.Errorf("invalid xpath: %w", err)
	}
	v, ok := compiled.Evaluate(xmlquery.CreateXPathNavigator(d.root)).(float64)
	if !ok {
		return 0, fmt.Errorf("xpath %q is not numeric", expr)
	}
	return int(v), nil
}

// Serialize converts the document to XML bytes. Empty elements are written
// self-closed and whitespace is preserved.
func (d *Document) Serialize() []byte {
	if d.root == nil {
		return nil
	}
	return []byte(d.root.OutputXMLWithOptions(xmlquery.WithEmptyTagSupport()))
}

// Name returns the element name.
func (n *Node) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Data
}

// Text returns all text content of the node and its descendants.
func (n *Node) Text() string {
	if n.node == nil {
		return ""
	}
	return n.node.InnerText()
}

// InnerXML returns the inner XML of the node.
func (n *Node) InnerXML() string {
	if n.node == nil {
		return ""
	}
	var buf bytes.Buffer
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		buf.WriteString(child.OutputXMLWithOptions(xmlquery.WithOutputSelf(), xmlquery.WithEmptyTagSupport()))
	}
	return buf.String()
}

// Children returns the child element nodes.
func (n *Node) Children() []*Node {
	if n.node == nil {
		return nil
	}

	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &Node{node: child})
		}
	}
	return children
}

// Attributes returns all attributes of the node.
func (n *Node) Attributes() map[string]string {
	if n.node == nil {
		return nil
	}

	attrs := make(map[string]string)
	for _, attr := range n.node.Attr {
		attrs[attr.Name.Local] = attr.Value
	}
	return attrs
}

// Attr returns the value of a specific attribute.
func (n *Node) Attr(name string) string {
	if n.node == nil {
		return ""
	}
	return n.node.SelectAttr(name)
}
