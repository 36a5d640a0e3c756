// Package overlay lays out quote, author and balance text against the
// safe area of a wallpaper, rasterizes it, and blends it onto the
// background.
//
// Layout uses a nested padding model: the base padding is halved at
// each nesting level, so the quote sits one level inside the safe area,
// the author one level inside the quote, and so on. Text width is
// estimated with a monospace heuristic (0.6 of the font size per
// character); the rendered fonts are monospace, so the estimate is
// close enough for right-aligned placement.
package overlay

import (
	"fmt"
	"html"
	"iter"
	"strings"

	"quotepaper/internal/geometry"
)

// DefaultPadding is the base padding when the configuration does not
// set one.
const DefaultPadding = 15

const (
	quoteFontSize   = 28
	quoteLineHeight = 34 // 28px * 1.2
	authorFontSize  = 21
	balanceFontSize = 20
)

// Anchor is the horizontal alignment of a text block relative to its
// x coordinate, matching SVG text-anchor semantics.
type Anchor string

const (
	AnchorStart Anchor = "start"
	AnchorEnd   Anchor = "end"
)

// TextBlock is one positioned block of text. X and Y locate the
// baseline of the first line; subsequent lines stack by LineHeight.
type TextBlock struct {
	Lines      []string
	FontSize   int
	LineHeight int
	X          int
	Y          int
	Anchor     Anchor
	Class      string
}

// Params are the inputs to LayoutText. Author and Balance may be empty.
// A zero Padding selects DefaultPadding.
type Params struct {
	Text     string
	Author   string
	Balance  string
	Width    int
	Height   int
	SafeArea geometry.SafeArea
	Padding  int
}

// Layout is the placed result: blocks in draw order plus the markup
// form the vector renderer understands.
type Layout struct {
	Width   int
	Height  int
	Padding [5]int

	blocks []TextBlock
}

// PaddingLevels derives the nesting margins from one base value. Each
// level is half the previous one, integer division.
func PaddingLevels(base int) [5]int {
	return [5]int{base, base / 2, base / 4, base / 8, base / 16}
}

func charWidth(fontSize int) int {
	return int(float64(fontSize) * 0.6)
}

func maxLineLen(lines []string) int {
	longest := 0
	for _, l := range lines {
		if len(l) > longest {
			longest = len(l)
		}
	}
	return longest
}

// LayoutText places the quote in the top-right corner of the safe area,
// the author below it, and the balance below the whole quote group, all
// right-aligned to the same edge. An empty quote still lays out as a
// single empty line; callers validate "no quote configured" themselves.
func LayoutText(p Params) *Layout {
	padding := p.Padding
	if padding == 0 {
		padding = DefaultPadding
	}

	l := &Layout{
		Width:   p.Width,
		Height:  p.Height,
		Padding: PaddingLevels(padding),
	}

	quoteLines := strings.Split(p.Text, "\n")
	quoteWidth := maxLineLen(quoteLines) * charWidth(quoteFontSize)

	rightEdge := p.SafeArea.X + p.SafeArea.Width - l.Padding[0]
	quoteX := rightEdge - quoteWidth
	quoteY := p.SafeArea.Y + l.Padding[0]*2
	quoteHeight := len(quoteLines) * quoteLineHeight

	l.blocks = append(l.blocks, TextBlock{
		Lines:      quoteLines,
		FontSize:   quoteFontSize,
		LineHeight: quoteLineHeight,
		X:          quoteX,
		Y:          quoteY,
		Anchor:     AnchorStart,
		Class:      "quote",
	})

	// The author nests one level inside the quote; the balance hangs
	// off the whole quote group at the outer padding level.
	groupBottom := quoteY + quoteHeight + l.Padding[0]
	if p.Author != "" {
		authorY := quoteY + quoteHeight + l.Padding[1]
		authorLineHeight := float64(authorFontSize) * 1.2
		l.blocks = append(l.blocks, TextBlock{
			Lines:      []string{"© " + p.Author},
			FontSize:   authorFontSize,
			LineHeight: int(authorLineHeight),
			X:          rightEdge,
			Y:          authorY,
			Anchor:     AnchorEnd,
			Class:      "author",
		})
		groupBottom = authorY + authorFontSize + l.Padding[0]
	}

	if p.Balance != "" {
		balanceLines := strings.Split(p.Balance, "\n")
		balanceWidth := maxLineLen(balanceLines) * charWidth(balanceFontSize)
		l.blocks = append(l.blocks, TextBlock{
			Lines:      balanceLines,
			FontSize:   balanceFontSize,
			LineHeight: int(float64(balanceFontSize) * 1.2),
			X:          rightEdge - balanceWidth,
			Y:          groupBottom,
			Anchor:     AnchorStart,
			Class:      "balance",
		})
	}

	return l
}

// Blocks yields the text blocks in draw order.
func (l *Layout) Blocks() iter.Seq[TextBlock] {
	return func(yield func(TextBlock) bool) {
		for _, b := range l.blocks {
			if !yield(b) {
				return
			}
		}
	}
}

// SVG serializes the layout as markup for a vector renderer. All
// user-supplied text is entity-escaped here, not during placement, so
// escape sequences do not distort the width estimate.
func (l *Layout) SVG() string {
	var b strings.Builder

	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <style>
`, l.Width, l.Height)
	for _, blk := range l.blocks {
		anchor := "start"
		if blk.Anchor == AnchorEnd {
			anchor = "end"
		}
		fmt.Fprintf(&b, `      .%s {
        font-family: 'DejaVu Sans Mono';
        font-size: %dpx;
        fill: white;
        text-anchor: %s;
      }
`, blk.Class, blk.FontSize, anchor)
	}
	b.WriteString("    </style>\n  </defs>\n")

	for _, blk := range l.blocks {
		fmt.Fprintf(&b, `  <text class=%q x="%d" y="%d">`, blk.Class, blk.X, blk.Y)
		if len(blk.Lines) == 1 {
			b.WriteString(html.EscapeString(blk.Lines[0]))
		} else {
			b.WriteString("\n")
			for i, line := range blk.Lines {
				dy := "1.2em"
				if i == 0 {
					dy = "0"
				}
				fmt.Fprintf(&b, "      <tspan x=\"%d\" dy=%q>%s</tspan>\n", blk.X, dy, html.EscapeString(line))
			}
			b.WriteString("  ")
		}
		b.WriteString("</text>\n")
	}
	b.WriteString("</svg>\n")

	return b.String()
}
