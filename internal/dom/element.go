package dom

import (
	"slices"
	"strings"

	"github.com/dgallion1/pinetree/internal/pine"
	"golang.org/x/net/html"
)

// Element wraps an element node and implements pine.Element.
type Element struct {
	n *html.Node
}

// Text returns the concatenated text content, trimmed.
func (e *Element) Text() string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(e.n)
	return strings.TrimSpace(buf.String())
}

// Classes returns the class tokens in attribute order.
func (e *Element) Classes() []string {
	return classes(e.n)
}

// Parent returns the enclosing element, or nil at the top of the tree.
func (e *Element) Parent() pine.Element {
	p := e.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return &Element{n: p}
}

// HasClass reports whether class is one of the element's class tokens.
func (e *Element) HasClass(class string) bool {
	return hasClass(e.n, class)
}

// AddClass appends class unless it is already present.
func (e *Element) AddClass(class string) {
	cs := classes(e.n)
	if slices.Contains(cs, class) {
		return
	}
	setAttr(e.n, "class", strings.Join(append(cs, class), " "))
}

// RemoveClass drops class, keeping the order of the other tokens.
func (e *Element) RemoveClass(class string) {
	cs := classes(e.n)
	if !slices.Contains(cs, class) {
		return
	}
	cs = slices.DeleteFunc(cs, func(c string) bool { return c == class })
	setAttr(e.n, "class", strings.Join(cs, " "))
}

// Attr returns the value of attribute name and whether it is set.
func (e *Element) Attr(name string) (string, bool) {
	return attr(e.n, name)
}

// SetAttr sets attribute name, overwriting any previous value.
func (e *Element) SetAttr(name, value string) {
	setAttr(e.n, name, value)
}

// RemoveAttr deletes attribute name if present.
func (e *Element) RemoveAttr(name string) {
	e.n.Attr = slices.DeleteFunc(e.n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == name
	})
}

func classes(n *html.Node) []string {
	v, _ := attr(n, "class")
	return strings.Fields(v)
}

func hasClass(n *html.Node, class string) bool {
	return n.Type == html.ElementNode && slices.Contains(classes(n), class)
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}
