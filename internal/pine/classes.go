package pine

import (
	"errors"
	"fmt"
	"regexp"
)

// DefaultPrefix is the block name used in class names when none is given.
const DefaultPrefix = "pine"

// Structural attributes written on every node container.
const (
	AttrID     = "data-id"
	AttrFolded = "data-folded"
)

// ClassNames holds the class vocabulary of the rendered markup, derived from
// a block prefix in BEM style ("pine__element--folded").
type ClassNames struct {
	Element      string
	Root         string
	First        string
	WithChildren string
	Folded       string
	Unfolded     string

	Icon     string
	HLine    string
	VLine    string
	Name     string
	Selected string
	Children string
}

// MaxPrefixLen bounds the block prefix length.
const MaxPrefixLen = 32

// ErrInvalidPrefix is returned for a prefix that cannot start a class name.
var ErrInvalidPrefix = errors.New("invalid class prefix")

var prefixPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidatePrefix checks that prefix is a usable block name: a letter
// followed by letters, digits, '-' or '_'. The empty prefix selects
// DefaultPrefix and is accepted.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if len(prefix) > MaxPrefixLen || !prefixPattern.MatchString(prefix) {
		return fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}
	return nil
}

// NewClassNames derives the class vocabulary for prefix. Callers validate
// prefix first; NewRenderer does.
func NewClassNames(prefix string) ClassNames {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	element := prefix + "__element"
	name := prefix + "__name"
	return ClassNames{
		Element:      element,
		Root:         element + "--root",
		First:        element + "--first",
		WithChildren: element + "--with-children",
		Folded:       element + "--folded",
		Unfolded:     element + "--unfolded",

		Icon:     prefix + "__icon",
		HLine:    prefix + "__hline",
		VLine:    prefix + "__vline",
		Name:     name,
		Selected: name + "--selected",
		Children: prefix + "__children",
	}
}

// Part maps a short part name ("icon", "name", "hline", "vline", "children",
// "element") to its class.
func (c ClassNames) Part(part string) (string, bool) {
	switch part {
	case "element":
		return c.Element, true
	case "icon":
		return c.Icon, true
	case "hline":
		return c.HLine, true
	case "vline":
		return c.VLine, true
	case "name":
		return c.Name, true
	case "children":
		return c.Children, true
	}
	return "", false
}

// nodeClasses computes the container classes for n before any interaction.
func (c ClassNames) nodeClasses(n *Node) []string {
	classes := []string{c.Element}
	if n.IsRoot() {
		classes = append(classes, c.Root)
	}
	if n.IsFirst() {
		classes = append(classes, c.First)
	}
	if n.HasChildren() {
		classes = append(classes, c.WithChildren)
	}
	if startsFolded(n) {
		classes = append(classes, c.Folded)
	}
	return classes
}

// startsFolded reports the initial fold state of n. The root is always
// expanded and never carries a fold modifier or marker.
func startsFolded(n *Node) bool {
	return !n.IsRoot() && n.HasChildren()
}
