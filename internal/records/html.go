package records

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/pinetree/internal/pine"
	"golang.org/x/net/html"
)

// HTMLLoader turns nested <ul>/<ol> lists into records. Each <li> becomes a
// record named by its own text, excluding nested lists. An <li> carrying
// data-id keeps that id; the rest are numbered around the ids already taken.
type HTMLLoader struct{}

func (l *HTMLLoader) Load(r io.Reader, filename string) ([]pine.Record, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	seq := sequence{taken: make(map[int64]bool)}
	var items []*html.Node
	collectItems(doc, &items)
	for _, li := range items {
		id, ok, err := itemID(li)
		if err != nil {
			return nil, err
		}
		if ok {
			seq.taken[id] = true
		}
	}

	var walk func(n *html.Node, parent int64)
	walk = func(n *html.Node, parent int64) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "head":
				return
			case "ul", "ol":
				for li := n.FirstChild; li != nil; li = li.NextSibling {
					if li.Type != html.ElementNode || li.Data != "li" {
						continue
					}
					var id int64
					if v, ok, _ := itemID(li); ok {
						id = seq.addWithID(v, parent, itemText(li))
					} else {
						id = seq.add(parent, itemText(li))
					}
					for c := li.FirstChild; c != nil; c = c.NextSibling {
						walk(c, id)
					}
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, parent)
		}
	}
	walk(doc, pine.RootID)

	return seq.records, nil
}

// collectItems gathers every <li> that sits directly in a list the walk
// would visit.
func collectItems(n *html.Node, out *[]*html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "head":
			return
		case "ul", "ol":
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == "li" {
					*out = append(*out, c)
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectItems(c, out)
	}
}

// itemID reads the data-id attribute of li.
func itemID(li *html.Node) (int64, bool, error) {
	for _, a := range li.Attr {
		if a.Namespace != "" || a.Key != pine.AttrID {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(a.Val), 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("invalid %s %q: %w", pine.AttrID, a.Val, err)
		}
		return id, true, nil
	}
	return 0, false, nil
}

// itemText collects the text of an <li>, skipping nested lists.
func itemText(li *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "ul" || n.Data == "ol") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		extract(c)
	}
	return strings.Join(strings.Fields(buf.String()), " ")
}
