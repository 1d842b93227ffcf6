// Package window implements the hierarchical window-composition engine: a
// tree of typed content nodes that lays out bounding boxes top-down, diffs
// freshly pulled content against what is on screen, and drives bounded
// visual transitions when content really changes.
package window

import "github.com/wavelength-fm/kiosk/internal/easing"

// Kind discriminates the closed set of content variants. Polymorphism here
// is a tagged struct with value equality, not an interface hierarchy: the
// set is fixed, and equality is what the diffing pass is built on.
type Kind int

const (
	// KindSpacer renders nothing; it exists to shape the layout.
	KindSpacer Kind = iota
	// KindText is a block of text with an optional title.
	KindText
	// KindImage is picture-like content identified by path, rendered at
	// a declared aspect ratio.
	KindImage
	// KindComposite draws nothing itself; its children carry the content.
	KindComposite
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindSpacer:
		return "spacer"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Content is one renderable unit of window content. Only the fields
// relevant to the Kind are set; Equal compares everything, so a zero field
// never aliases a set one across kinds.
type Content struct {
	Kind Kind

	// Title is an optional heading, used by text content.
	Title string

	// Text is the body for KindText.
	Text string

	// ImagePath identifies the picture for KindImage.
	ImagePath string

	// AspectRatio is the width/height the content wants. Zero means
	// "no preference" and renders as the node's box shape.
	AspectRatio float64
}

// TextContent builds a text variant.
func TextContent(title, text string) Content {
	return Content{Kind: KindText, Title: title, Text: text}
}

// ImageContent builds an image variant.
func ImageContent(path string, aspect float64) Content {
	return Content{Kind: KindImage, ImagePath: path, AspectRatio: aspect}
}

// Spacer builds the empty variant.
func Spacer() Content {
	return Content{Kind: KindSpacer}
}

// Composite builds the container variant.
func Composite() Content {
	return Content{Kind: KindComposite}
}

// Equal reports structural equality. The update pass skips all layout and
// transition work for a node whose fresh content is Equal to the cached one.
func (c Content) Equal(o Content) bool {
	return c == o
}

// Renderable returns the descriptor handed to the transition engine for
// this content: fully opaque, at the content's preferred aspect ratio
// (defaulting to square when it has none).
func (c Content) Renderable() easing.Renderable {
	aspect := c.AspectRatio
	if aspect == 0 {
		aspect = 1
	}
	return easing.Renderable{Opacity: 1, AspectRatio: aspect}
}
