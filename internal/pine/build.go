package pine

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

var (
	ErrReservedID    = errors.New("item id 0 is reserved for the root")
	ErrDuplicateID   = errors.New("duplicate item id")
	ErrNoParent      = errors.New("item has no parent id")
	ErrUnknownParent = errors.New("parent id does not resolve")
	ErrCycle         = errors.New("parent links form a cycle")
	ErrTooDeep       = errors.New("item nested too deep")
)

// BuildError identifies the record that made Build fail.
type BuildError struct {
	ID       int64 // Offending item id
	ParentID int64 // Parent id involved, when relevant
	Err      error // One of the Err* sentinels
}

func (e *BuildError) Error() string {
	switch e.Err {
	case ErrUnknownParent:
		return fmt.Sprintf("item %d: %v (%d)", e.ID, e.Err, e.ParentID)
	default:
		return fmt.Sprintf("item %d: %v", e.ID, e.Err)
	}
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Build converts flat records into a tree under the synthetic root.
// Children keep the order their records appear in. Any malformed input
// fails the whole build; no partial tree is returned.
func Build(records []Record) (*Node, error) {
	root := newRoot()
	lookup := make(map[int64]*Node, len(records)+1)
	lookup[RootID] = root

	nodes := make([]*Node, 0, len(records))
	for _, r := range records {
		if r.ItemID == RootID {
			return nil, &BuildError{ID: r.ItemID, Err: ErrReservedID}
		}
		if _, dup := lookup[r.ItemID]; dup {
			return nil, &BuildError{ID: r.ItemID, Err: ErrDuplicateID}
		}
		if r.ItemParentID == nil {
			return nil, &BuildError{ID: r.ItemID, Err: ErrNoParent}
		}
		n := NewNode(r)
		lookup[n.ID] = n
		nodes = append(nodes, n)
	}

	for _, n := range nodes {
		if _, ok := lookup[n.ParentID]; !ok {
			return nil, &BuildError{ID: n.ID, ParentID: n.ParentID, Err: ErrUnknownParent}
		}
	}

	if err := checkAcyclic(nodes); err != nil {
		return nil, err
	}

	// Iterate the input slice, not the map, so sibling order is input order.
	for _, n := range nodes {
		parent := lookup[n.ParentID]
		parent.Children = append(parent.Children, n)
	}

	return root, nil
}

// checkAcyclic loads parent->child edges into a directed graph and reports
// the smallest id taking part in any cycle.
func checkAcyclic(nodes []*Node) error {
	g := simple.NewDirectedGraph()
	g.AddNode(simple.Node(RootID))
	for _, n := range nodes {
		g.AddNode(simple.Node(n.ID))
	}
	for _, n := range nodes {
		if n.ParentID == n.ID {
			return &BuildError{ID: n.ID, ParentID: n.ParentID, Err: ErrCycle}
		}
		g.SetEdge(g.NewEdge(simple.Node(n.ParentID), simple.Node(n.ID)))
	}

	_, err := topo.Sort(g)
	if err == nil {
		return nil
	}
	var cycles topo.Unorderable
	if !errors.As(err, &cycles) {
		return fmt.Errorf("order nodes: %w", err)
	}

	first := true
	var minID int64
	for _, component := range cycles {
		for _, gn := range component {
			if first || gn.ID() < minID {
				minID = gn.ID()
				first = false
			}
		}
	}
	return &BuildError{ID: minID, Err: ErrCycle}
}

// CheckDepth fails on the first node, in depth-first order, that sits more
// than limit levels below the root. The root's children are at level 1.
func CheckDepth(root *Node, limit int) error {
	var visit func(n *Node, level int) error
	visit = func(n *Node, level int) error {
		if level > limit {
			return &BuildError{ID: n.ID, ParentID: n.ParentID, Err: ErrTooDeep}
		}
		for _, c := range n.Children {
			if err := visit(c, level+1); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(root, 0)
}
