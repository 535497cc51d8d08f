package pine

// RootID is the id of the synthetic root. Records must not use it.
const RootID int64 = 0

// RootName is the label rendered for the synthetic root.
const RootName = "#ROOT"

// Record is one flat, parent-referencing input row.
type Record struct {
	ItemID       int64  `json:"itemId" yaml:"itemId"`
	ItemParentID *int64 `json:"itemParentId" yaml:"itemParentId"`
	ItemName     string `json:"itemName" yaml:"itemName"`
}

// Parent returns a pointer to id, for building records inline.
func Parent(id int64) *int64 {
	return &id
}

// Node is a record with its resolved children.
type Node struct {
	ID       int64   // Record id (RootID for the synthetic root)
	ParentID int64   // Parent id; meaningless for the root
	Name     string  // Label text, unescaped
	Children []*Node // In input order
}

// NewNode maps a record to a childless node. A nil parent maps to RootID;
// Build rejects that case before it gets here.
func NewNode(r Record) *Node {
	n := &Node{ID: r.ItemID, Name: r.ItemName}
	if r.ItemParentID != nil {
		n.ParentID = *r.ItemParentID
	}
	return n
}

func newRoot() *Node {
	return &Node{ID: RootID, Name: RootName}
}

// IsRoot reports whether n is the synthetic root.
func (n *Node) IsRoot() bool {
	return n.ID == RootID
}

// IsFirst reports whether n is a top-level data node.
func (n *Node) IsFirst() bool {
	return !n.IsRoot() && n.ParentID == RootID
}

// HasChildren reports whether n has any children.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Len returns the number of nodes in the subtree rooted at n, n included.
func (n *Node) Len() int {
	count := 0
	n.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}
