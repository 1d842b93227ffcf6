package window

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree(t *testing.T, root *Node) *Tree {
	t.Helper()
	return NewTree(root, 30, 100*time.Millisecond, rand.New(rand.NewSource(1)))
}

func TestContent_Equal(t *testing.T) {
	a := TextContent("Now Playing", "Night Moves - Bob Seger")
	b := TextContent("Now Playing", "Night Moves - Bob Seger")
	c := TextContent("Now Playing", "Hollywood Nights - Bob Seger")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Spacer()))
	assert.False(t, ImageContent("a.png", 1).Equal(ImageContent("a.png", 1.5)))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "image", KindImage.String())
	assert.Equal(t, "spacer", KindSpacer.String())
	assert.Equal(t, "composite", KindComposite.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestNewNode_RejectsBadLayout(t *testing.T) {
	_, err := NewNode("bad", Fraction(0.9, 0, 0.5, 1), Spacer())
	assert.Error(t, err)
}

func TestTree_ResolveTopDown(t *testing.T) {
	leaf, err := NewNode("leaf", Fraction(0, 0, 0.5, 1), TextContent("", "hi"))
	require.NoError(t, err)
	mid, err := NewNode("mid", Fraction(0.5, 0, 0.5, 1), Composite(), leaf)
	require.NoError(t, err)
	root, err := NewNode("root", Fill(), Composite(), mid)
	require.NoError(t, err)

	tree := testTree(t, root)
	tree.Resolve(Rect{X: 0, Y: 0, W: 100, H: 40})

	assert.Equal(t, Rect{X: 0, Y: 0, W: 100, H: 40}, root.Bounds())
	assert.Equal(t, Rect{X: 50, Y: 0, W: 50, H: 40}, mid.Bounds())
	assert.Equal(t, Rect{X: 50, Y: 0, W: 25, H: 40}, leaf.Bounds())
}

func TestTree_UpdateDiffsContent(t *testing.T) {
	current := TextContent("Now Playing", "first")
	node, err := NewSourcedNode("spins", Fill(), func() Content { return current })
	require.NoError(t, err)
	tree := testTree(t, node)

	// Identical content: no change event, no transition.
	changes := tree.Update()
	assert.Empty(t, changes)
	assert.False(t, node.Transitioning())

	// Changed content: cache swaps, one event, transition starts.
	current = TextContent("Now Playing", "second")
	changes = tree.Update()
	require.Len(t, changes, 1)
	assert.Equal(t, "spins", changes[0].NodeID)
	assert.Equal(t, "first", changes[0].Old.Text)
	assert.Equal(t, "second", changes[0].New.Text)
	assert.Equal(t, "second", node.Contents().Text)
	assert.True(t, node.Transitioning())
}

func TestTree_IdenticalContentDoesNotRestartTransition(t *testing.T) {
	current := TextContent("", "one")
	node, err := NewSourcedNode("messages", Fill(), func() Content { return current })
	require.NoError(t, err)
	tree := testTree(t, node)

	current = TextContent("", "two")
	tree.Update()
	require.True(t, node.Transitioning())
	progress := node.transition.Progress()

	// Re-supplying identical content must not reset the running transition.
	tree.Update()
	require.True(t, node.Transitioning())
	assert.Greater(t, node.transition.Progress(), progress)
}

func TestTree_TransitionSettlesAtNewContent(t *testing.T) {
	current := ImageContent("old.png", 1.78)
	node, err := NewSourcedNode("art", Fill(), func() Content { return current })
	require.NoError(t, err)
	tree := testTree(t, node)

	current = ImageContent("new.png", 0.75)
	tree.Update()
	require.True(t, node.Transitioning())

	// Advance to completion regardless of tick count.
	for i := 0; node.Transitioning(); i++ {
		require.Less(t, i, 10000, "transition never settled")

		// Mid-transition parameters stay within the endpoint bounds.
		r := node.Renderable()
		assert.GreaterOrEqual(t, r.Opacity, 0.0)
		assert.LessOrEqual(t, r.Opacity, 1.0)
		assert.GreaterOrEqual(t, r.AspectRatio, 0.75)
		assert.LessOrEqual(t, r.AspectRatio, 1.78)

		tree.Update()
	}

	// Settled exactly at the new content's parameters.
	assert.Equal(t, current.Renderable(), node.Renderable())
}

func TestTree_UpdateSkipsStaticNodes(t *testing.T) {
	static, err := NewNode("label", Fill(), TextContent("", "WVLN 91.1 FM"))
	require.NoError(t, err)
	tree := testTree(t, static)

	assert.Empty(t, tree.Update())
	assert.False(t, static.Transitioning())
	assert.Equal(t, "WVLN 91.1 FM", static.Contents().Text)
}

func TestNode_FindAndWalk(t *testing.T) {
	a, err := NewNode("a", Fill(), Spacer())
	require.NoError(t, err)
	b, err := NewNode("b", Fill(), Spacer())
	require.NoError(t, err)
	root, err := NewNode("root", Fill(), Composite(), a, b)
	require.NoError(t, err)

	assert.Equal(t, b, root.Find("b"))
	assert.Nil(t, root.Find("zzz"))

	var order []string
	root.Walk(func(n *Node) { order = append(order, n.ID()) })
	assert.Equal(t, []string{"root", "a", "b"}, order)
}

func TestNode_SkipDraw(t *testing.T) {
	n, err := NewNode("surprise", Fill(), ImageContent("bird.txt", 1))
	require.NoError(t, err)

	assert.False(t, n.SkipDraw())
	n.SetSkipDraw(true)
	assert.True(t, n.SkipDraw())
}
