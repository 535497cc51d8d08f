package main

import (
	"fmt"
	"io"

	"github.com/ddddddO/gtree"
	"github.com/dgallion1/pinetree/internal/dom"
	"github.com/dgallion1/pinetree/internal/pine"
	"github.com/dgallion1/pinetree/internal/records"
)

// App carries what subcommands share.
type App struct {
	Stdout io.Writer
}

type RenderCmd struct {
	File      string `arg:"" type:"existingfile" help:"Record file (.json, .yaml, .csv, .md, .html, .txt)."`
	Prefix    string `default:"pine" help:"Class name prefix."`
	Indent    int    `default:"4" help:"Spaces per indentation level."`
	Container string `help:"Wrap the markup in a host <div> with this id."`
}

func (c *RenderCmd) Run(app *App) error {
	if c.Container != "" {
		return c.runHosted(app)
	}
	root, err := buildFile(c.File)
	if err != nil {
		return err
	}
	r, err := pine.NewRenderer(c.Prefix, c.Indent)
	if err != nil {
		return err
	}
	_, err = io.WriteString(app.Stdout, r.Render(root))
	return err
}

// runHosted installs the widget into a host document and prints the whole
// container.
func (c *RenderCmd) runHosted(app *App) error {
	recs, err := records.LoadFile(c.File)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.File, err)
	}
	doc := dom.NewDocument(c.Container)
	if _, err := pine.New(doc, recs, pine.WithPrefix(c.Prefix), pine.WithIndent(c.Indent)); err != nil {
		return fmt.Errorf("build %s: %w", c.File, err)
	}
	out, err := doc.OuterHTML()
	if err != nil {
		return err
	}
	_, err = io.WriteString(app.Stdout, out+"\n")
	return err
}

type TreeCmd struct {
	File string `arg:"" type:"existingfile" help:"Record file (.json, .yaml, .csv, .md, .html, .txt)."`
}

func (c *TreeCmd) Run(app *App) error {
	root, err := buildFile(c.File)
	if err != nil {
		return err
	}
	return gtree.OutputFromRoot(app.Stdout, asciiTree(root))
}

func buildFile(path string) (*pine.Node, error) {
	recs, err := records.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	root, err := pine.Build(recs)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}
	return root, nil
}

// asciiTree mirrors the pine tree into gtree nodes. Labels carry the id so
// siblings with equal names stay distinct.
func asciiTree(root *pine.Node) *gtree.Node {
	out := gtree.NewRoot(root.Name)
	var add func(dst *gtree.Node, n *pine.Node)
	add = func(dst *gtree.Node, n *pine.Node) {
		for _, c := range n.Children {
			add(dst.Add(fmt.Sprintf("%s (#%d)", c.Name, c.ID)), c)
		}
	}
	add(out, root)
	return out
}
