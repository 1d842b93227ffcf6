package window

import (
	"math/rand"
	"time"

	"github.com/wavelength-fm/kiosk/internal/easing"
	"github.com/wavelength-fm/kiosk/internal/errors"
)

// ContentFunc pulls the current content for a source-backed node. It must
// be non-blocking; in practice it wraps a resilient container's Snapshot.
type ContentFunc func() Content

// Change describes one content-change event emitted by an update pass.
type Change struct {
	NodeID string
	Old    Content
	New    Content
}

// Node is one window in the composition tree. Nodes are created at
// tree-build time and never reparented: each node has a single owner and
// the tree is acyclic by construction (children are attached exactly once,
// at creation).
type Node struct {
	id       string
	layout   Layout
	source   ContentFunc
	children []*Node

	cached     Content
	bounds     Rect
	transition *easing.Transition
	skipDraw   bool
}

// NewNode builds a node with static content. Children are owned by the new
// node from this point on.
func NewNode(id string, layout Layout, content Content, children ...*Node) (*Node, error) {
	if err := layout.Validate(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrLayout,
			"Invalid layout for window "+id, "")
	}
	return &Node{
		id:       id,
		layout:   layout,
		cached:   content,
		children: children,
	}, nil
}

// NewSourcedNode builds a node whose content is pulled from a source each
// update pass. The initial content is pulled immediately, so the node never
// renders empty.
func NewSourcedNode(id string, layout Layout, source ContentFunc, children ...*Node) (*Node, error) {
	n, err := NewNode(id, layout, source(), children...)
	if err != nil {
		return nil, err
	}
	n.source = source
	return n, nil
}

// ID returns the node's identifier.
func (n *Node) ID() string { return n.id }

// Contents returns the content currently used to render this node. This is
// the read-only accessor the rendering collaborator diffs against.
func (n *Node) Contents() Content { return n.cached }

// Children returns the node's ordered children.
func (n *Node) Children() []*Node { return n.children }

// Bounds returns the node's box from the last Resolve pass.
func (n *Node) Bounds() Rect { return n.bounds }

// SetSkipDraw toggles whether the node (and its subtree) is rendered.
// Surprise windows flicker by toggling this.
func (n *Node) SetSkipDraw(skip bool) { n.skipDraw = skip }

// SkipDraw reports whether drawing is currently skipped.
func (n *Node) SkipDraw() bool { return n.skipDraw }

// Transitioning reports whether a transition is currently running.
func (n *Node) Transitioning() bool { return n.transition != nil }

// Renderable returns the node's current visual parameters: mid-transition
// values while a transition runs, otherwise the settled content's own.
func (n *Node) Renderable() easing.Renderable {
	if n.transition != nil {
		return n.transition.Current()
	}
	return n.cached.Renderable()
}

// Resolve lays out this node and its subtree from the parent's resolved
// box. Single-pass and top-down: a node's box depends only on its parent's,
// never on a sibling or descendant.
func (n *Node) Resolve(parent Rect) {
	n.bounds = n.layout.Resolve(parent)
	for _, child := range n.children {
		child.Resolve(n.bounds)
	}
}

// Walk visits the node and its subtree depth-first.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, child := range n.children {
		child.Walk(visit)
	}
}

// Find returns the node with the given id in this subtree, or nil.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(node *Node) {
		if found == nil && node.id == id {
			found = node
		}
	})
	return found
}

// Tree owns a window hierarchy and runs its per-tick update pass.
type Tree struct {
	root *Node

	fps                int
	transitionDuration time.Duration
	rng                *rand.Rand
}

// NewTree wraps a root node. The rand source picks transition styles; pass
// a seeded one for reproducible behavior in tests.
func NewTree(root *Node, fps int, transitionDuration time.Duration, rng *rand.Rand) *Tree {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Tree{
		root:               root,
		fps:                fps,
		transitionDuration: transitionDuration,
		rng:                rng,
	}
}

// Root returns the tree's root node.
func (t *Tree) Root() *Node { return t.root }

// Resolve lays out the whole tree within the given screen box.
func (t *Tree) Resolve(screen Rect) {
	t.root.Resolve(screen)
}

// Update runs one update pass: every source-backed node pulls a fresh
// snapshot; nodes whose content is unchanged do nothing (no re-layout, no
// texture regeneration, no transition); changed nodes swap their cache,
// start a transition from old to new, and contribute a change event.
// Running transitions advance by one tick and are discarded on completion.
func (t *Tree) Update() []Change {
	var changes []Change

	t.root.Walk(func(n *Node) {
		if n.source != nil {
			fresh := n.source()
			if !fresh.Equal(n.cached) {
				old := n.cached
				n.cached = fresh
				n.transition = easing.NewTransition(
					old.Renderable(), fresh.Renderable(),
					easing.RandomStyle(t.rng),
					t.transitionDuration, t.fps,
				)
				changes = append(changes, Change{NodeID: n.id, Old: old, New: fresh})
			}
		}

		if n.transition != nil {
			n.transition.Advance()
			if n.transition.Done() {
				// Settled: the transition is discarded and the node
				// renders its cached content directly.
				n.transition = nil
			}
		}
	})

	return changes
}
