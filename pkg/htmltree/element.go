package htmltree

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a mutable HTML node. Elements created with Tagless render only
// their children, which makes them handy as fragments: appending a tagless
// element to another element moves its children over.
type Element struct {
	node *html.Node
}

// New creates an element for the given tag name.
func New(tag string) *Element {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return &Element{node: &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}}
}

// Tagless creates an element without a tag of its own.
func Tagless() *Element {
	return &Element{node: &html.Node{Type: html.DocumentNode}}
}

// Tag returns the element tag name, or an empty string for tagless elements.
func (e *Element) Tag() string {
	if e == nil || e.node.Type != html.ElementNode {
		return ""
	}
	return e.node.Data
}

// IsTagless reports whether the element renders only its children.
func (e *Element) IsTagless() bool {
	return e != nil && e.node.Type == html.DocumentNode
}

// Empty reports whether the element is tagless and has no content.
func (e *Element) Empty() bool {
	return e == nil || (e.IsTagless() && e.node.FirstChild == nil)
}

// Len returns the number of direct child nodes.
func (e *Element) Len() int {
	if e == nil {
		return 0
	}
	n := 0
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		n++
	}
	return n
}

// SetAttr sets an attribute. Attribute names accept the short aliases "css"
// (class), "uid" (id) and "label_for" (for); underscores become dashes so
// data_parent_uid is written as data-parent-uid.
//
// A nil value removes the attribute. Booleans on data-* attributes are written
// as "true"/"false"; on any other attribute true sets an empty boolean
// attribute and false removes it.
func (e *Element) SetAttr(name string, value any) *Element {
	if e == nil || e.IsTagless() {
		return e
	}
	key := attrName(name)
	if key == "" {
		return e
	}

	if value == nil {
		e.removeAttr(key)
		return e
	}

	var val string
	switch v := value.(type) {
	case bool:
		if strings.HasPrefix(key, "data-") {
			val = strconv.FormatBool(v)
		} else if !v {
			e.removeAttr(key)
			return e
		}
	case string:
		val = v
	case fmt.Stringer:
		val = v.String()
	default:
		val = fmt.Sprint(v)
	}

	for i := range e.node.Attr {
		if e.node.Attr[i].Key == key {
			e.node.Attr[i].Val = val
			return e
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: val})
	return e
}

// Attr returns an attribute value.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	key := attrName(name)
	for _, attr := range e.node.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// AddCSS appends class tokens, skipping tokens already present.
func (e *Element) AddCSS(classes string) *Element {
	tokens := strings.Fields(classes)
	if len(tokens) == 0 {
		return e
	}
	current, _ := e.Attr("class")
	existing := strings.Fields(current)
	seen := make(map[string]struct{}, len(existing))
	for _, token := range existing {
		seen[token] = struct{}{}
	}
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		existing = append(existing, token)
	}
	return e.SetAttr("class", strings.Join(existing, " "))
}

// Append adds children in order. Tagless children are unwrapped.
func (e *Element) Append(children ...*Element) *Element {
	if e == nil {
		return e
	}
	for _, child := range children {
		if child == nil || child == e {
			continue
		}
		if child.IsTagless() {
			for c := child.node.FirstChild; c != nil; {
				next := c.NextSibling
				child.node.RemoveChild(c)
				e.node.AppendChild(c)
				c = next
			}
			continue
		}
		if child.node.Parent != nil {
			child.node.Parent.RemoveChild(child.node)
		}
		e.node.AppendChild(child.node)
	}
	return e
}

// Text appends an escaped text node. Empty strings are ignored.
func (e *Element) Text(content string) *Element {
	if e == nil || content == "" {
		return e
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: content})
	return e
}

// Render serialises the element and its subtree to markup.
func (e *Element) Render() (string, error) {
	if e == nil {
		return "", nil
	}
	var b strings.Builder
	if err := html.Render(&b, e.node); err != nil {
		return "", fmt.Errorf("htmltree: render <%s>: %w", e.node.Data, err)
	}
	return b.String(), nil
}

// String renders the element, returning an empty string on error.
func (e *Element) String() string {
	out, err := e.Render()
	if err != nil {
		return ""
	}
	return out
}

func (e *Element) removeAttr(key string) {
	attrs := e.node.Attr[:0]
	for _, attr := range e.node.Attr {
		if attr.Key != key {
			attrs = append(attrs, attr)
		}
	}
	e.node.Attr = attrs
}

func attrName(name string) string {
	name = strings.TrimSpace(name)
	switch name {
	case "css":
		return "class"
	case "uid":
		return "id"
	case "label_for":
		return "for"
	}
	return strings.ToLower(strings.ReplaceAll(name, "_", "-"))
}
