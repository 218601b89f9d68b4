package render

import (
	"fmt"
	"strings"

	"resume-builder/resume/style"
)

// BlockKind is the paragraph role of a block.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindHeading
	KindBullet
)

func (k BlockKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindBullet:
		return "bullet"
	default:
		return "paragraph"
	}
}

// Alignment is the horizontal justification of a block.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
)

// Run is a span of text sharing one set of attributes.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Color  *style.RGB
	SizePt int
}

// Block is one paragraph-level element of a rendered document.
type Block struct {
	Kind  BlockKind
	Align Alignment
	Runs  []Run
}

// Text concatenates the text of all runs.
func (b Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Document is the ordered block sequence produced for one resume.
type Document struct {
	FontFamily string
	Blocks     []Block
}

// Headings returns the text of every heading block in order.
func (d Document) Headings() []string {
	var out []string
	for _, b := range d.Blocks {
		if b.Kind == KindHeading {
			out = append(out, b.Text())
		}
	}
	return out
}

// Section returns the blocks between the heading titled name and the next heading.
func (d Document) Section(name string) ([]Block, bool) {
	start := -1
	for i, b := range d.Blocks {
		if b.Kind == KindHeading && b.Text() == name {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, false
	}
	end := len(d.Blocks)
	for i := start; i < len(d.Blocks); i++ {
		if d.Blocks[i].Kind == KindHeading {
			end = i
			break
		}
	}
	return d.Blocks[start:end], true
}

// RenderError reports a structural problem while emitting a section.
type RenderError struct {
	Section string
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Section, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
