// file: internal/xmltree/xmltree.go
// version: 1.0.0
// guid: 9b0c1d2e-3f4a-5b6c-7d8e-9f0a1b2c3d4e

// Package xmltree parses an XML payload into a read-only node tree and
// provides dotted-path access with absent-not-error semantics: a lookup
// through any missing segment yields nil/false rather than failing.
package xmltree

import (
	"encoding/xml"
	"io"
	"strings"
	"time"
)

// Node is one element of a parsed document. Implementations are
// immutable after Parse returns.
type Node interface {
	// Name returns the element's local name.
	Name() string
	// Child returns the first child element with the given name, or nil.
	Child(name string) Node
	// Children returns all child elements with the given name.
	Children(name string) []Node
	// Text returns the element's character data, untrimmed.
	Text() string
	// Attr returns the named attribute value, or "" when absent.
	Attr(name string) string
}

type element struct {
	name     string
	attrs    map[string]string
	children []*element
	text     string
}

func (e *element) Name() string { return e.name }

func (e *element) Child(name string) Node {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (e *element) Children(name string) []Node {
	var out []Node
	for _, c := range e.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func (e *element) Text() string { return e.text }

func (e *element) Attr(name string) string { return e.attrs[name] }

// Parse reads one XML document and returns its root element.
func Parse(r io.Reader) (Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	var root *element
	var stack []*element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local}
			if len(t.Attr) > 0 {
				el.attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					el.attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			} else if root == nil {
				root = el
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				cur := stack[len(stack)-1]
				cur.text += string(t)
			}
		}
	}
	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

// Get walks the dotted path one segment at a time starting at root.
// Any absent segment short-circuits to nil for the whole path.
func Get(root Node, path string) Node {
	if root == nil || path == "" {
		return nil
	}
	cur := root
	for _, segment := range strings.Split(path, ".") {
		cur = cur.Child(segment)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// GetText resolves the path and returns the node's text with surrounding
// whitespace trimmed. An empty string counts as absent.
func GetText(root Node, path string) (string, bool) {
	n := Get(root, path)
	if n == nil {
		return "", false
	}
	text := strings.TrimSpace(n.Text())
	if text == "" {
		return "", false
	}
	return text, true
}

// GetDate resolves the path and parses its text strictly as YYYY-MM-DD.
// A parse failure yields absent, not an error.
func GetDate(root Node, path string) (time.Time, bool) {
	text, ok := GetText(root, path)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", text)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
