// Package dom is an in-memory host document for pine widgets, built on the
// golang.org/x/net/html node tree.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/pinetree/internal/pine"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document owns one container element whose inner content a widget renders
// into.
type Document struct {
	container *html.Node
}

// NewDocument creates an empty <div> container with the given id attribute.
func NewDocument(containerID string) *Document {
	c := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	if containerID != "" {
		c.Attr = []html.Attribute{{Key: "id", Val: containerID}}
	}
	return &Document{container: c}
}

// Container returns the container element.
func (d *Document) Container() *Element {
	return &Element{n: d.container}
}

// SetContent replaces the container's children with the nodes of markup.
// The markup is tokenized and assembled directly, so nesting depth is not
// bounded by the parser's open-element limit. Unclosed elements are closed
// at the end of input; stray end tags are ignored.
func (d *Document) SetContent(markup string) error {
	nodes, err := buildFragment(markup)
	if err != nil {
		return err
	}
	for c := d.container.FirstChild; c != nil; {
		next := c.NextSibling
		d.container.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		d.container.AppendChild(n)
	}
	return nil
}

func buildFragment(markup string) ([]*html.Node, error) {
	top := &html.Node{Type: html.DocumentNode}
	stack := []*html.Node{top}
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		cur := stack[len(stack)-1]
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("tokenize markup: %w", err)
			}
			var out []*html.Node
			for c := top.FirstChild; c != nil; {
				next := c.NextSibling
				top.RemoveChild(c)
				out = append(out, c)
				c = next
			}
			return out, nil
		case html.TextToken:
			cur.AppendChild(&html.Node{Type: html.TextNode, Data: string(z.Text())})
		case html.CommentToken:
			cur.AppendChild(&html.Node{Type: html.CommentNode, Data: string(z.Text())})
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			n := &html.Node{Type: html.ElementNode, Data: tok.Data, DataAtom: tok.DataAtom, Attr: tok.Attr}
			cur.AppendChild(n)
			if tt == html.StartTagToken && !voidElements[tok.DataAtom] {
				stack = append(stack, n)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].Data == string(name) {
					stack = stack[:i]
					break
				}
			}
		}
	}
}

var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true,
}

// Find returns the first element in document order carrying class, or nil.
func (d *Document) Find(class string) pine.Element {
	var found *html.Node
	d.walk(func(n *html.Node) bool {
		if hasClass(n, class) {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return &Element{n: found}
}

// FindAll returns every element carrying class, in document order.
func (d *Document) FindAll(class string) []*Element {
	var out []*Element
	d.walk(func(n *html.Node) bool {
		if hasClass(n, class) {
			out = append(out, &Element{n: n})
		}
		return true
	})
	return out
}

// Part locates the element with class belonging to the node whose container
// carries data-id = id. The container itself matches when it carries class.
func (d *Document) Part(id int64, class string) (*Element, bool) {
	want := strconv.FormatInt(id, 10)
	var container *html.Node
	d.walk(func(n *html.Node) bool {
		if v, ok := attr(n, pine.AttrID); ok && v == want {
			container = n
			return false
		}
		return true
	})
	if container == nil {
		return nil, false
	}
	if hasClass(container, class) {
		return &Element{n: container}, true
	}
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if hasClass(c, class) {
			return &Element{n: c}, true
		}
	}
	return nil, false
}

// InnerHTML serializes the container's children.
func (d *Document) InnerHTML() (string, error) {
	var buf bytes.Buffer
	for c := d.container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return buf.String(), nil
}

// OuterHTML serializes the container and its content.
func (d *Document) OuterHTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.container); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// walk visits element nodes under the container in document order until fn
// returns false.
func (d *Document) walk(fn func(*html.Node) bool) {
	var visit func(*html.Node) bool
	visit = func(n *html.Node) bool {
		if n.Type == html.ElementNode && !fn(n) {
			return false
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !visit(c) {
				return false
			}
		}
		return true
	}
	for c := d.container.FirstChild; c != nil; c = c.NextSibling {
		if !visit(c) {
			return
		}
	}
}
