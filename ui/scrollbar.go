package ui

import (
	"strings"
)

// Scrollbar represents a vertical scrollbar displayed on the right side of
// the pixel table. Positions are in terminal lines of table extent.
type Scrollbar struct {
	height  int
	enabled bool
	ascii   bool
	styles  Styles
}

// NewScrollbar creates a new scrollbar instance
func NewScrollbar(styles Styles) *Scrollbar {
	return &Scrollbar{
		height:  24,
		enabled: true,
		styles:  styles,
	}
}

// Width returns the scrollbar width (1 character, or 0 if disabled)
func (s *Scrollbar) Width() int {
	if !s.enabled {
		return 0
	}
	return 1
}

// SetHeight sets the scrollbar height
func (s *Scrollbar) SetHeight(height int) {
	if height > 0 {
		s.height = height
	}
}

// Height returns the scrollbar height
func (s *Scrollbar) Height() int {
	return s.height
}

// SetEnabled enables or disables the scrollbar
func (s *Scrollbar) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// IsEnabled returns whether the scrollbar is enabled
func (s *Scrollbar) IsEnabled() bool {
	return s.enabled
}

// Toggle toggles the scrollbar on/off
func (s *Scrollbar) Toggle() bool {
	s.enabled = !s.enabled
	return s.enabled
}

// SetASCII switches to '#' and '|' for terminals without UTF-8
func (s *Scrollbar) SetASCII(ascii bool) {
	s.ascii = ascii
}

// SetStyles updates the styles for runtime theme changes
func (s *Scrollbar) SetStyles(styles Styles) {
	s.styles = styles
}

// thumb returns the first row of the thumb and its size.
func (s *Scrollbar) thumb(offset, viewport, total int) (start, size int) {
	viewport = max(1, viewport)
	if total <= viewport {
		return 0, s.height
	}

	// int64 keeps million-row tables from overflowing
	size = int((int64(viewport) * int64(s.height)) / int64(total))
	size = min(max(size, 1), s.height)

	maxScroll := total - viewport
	offset = min(max(offset, 0), maxScroll)
	thumbRange := s.height - size
	if thumbRange <= 0 {
		return 0, size
	}
	start = int((int64(offset) * int64(thumbRange)) / int64(maxScroll))
	return min(max(start, 0), thumbRange), size
}

// Render renders the scrollbar as a slice of strings, one per row.
// offset is the scroll position, viewport the visible extent and total the
// full extent of the table.
func (s *Scrollbar) Render(offset, viewport, total int) []string {
	if !s.enabled || s.height <= 0 {
		return nil
	}

	tbl := s.styles.Theme.Table
	trackColor := ColorToANSIFg(tbl.Scrollbar)
	thumbColor := ColorToANSIFg(tbl.ScrollThumb)
	trackChar, thumbChar := "│", "┃"
	if s.ascii {
		trackChar, thumbChar = "|", "#"
	}

	thumbStart, thumbSize := s.thumb(offset, viewport, max(total, 1))
	thumbEnd := thumbStart + thumbSize

	result := make([]string, s.height)
	for row := range s.height {
		var sb strings.Builder
		if row >= thumbStart && row < thumbEnd {
			sb.WriteString(thumbColor)
			sb.WriteString(thumbChar)
		} else {
			sb.WriteString(trackColor)
			sb.WriteString(trackChar)
		}
		sb.WriteString(Reset)
		result[row] = sb.String()
	}
	return result
}

// RowToOffset converts a clicked scrollbar row into a scroll offset that
// puts the thumb's top at that row. This is the inverse of Render.
func (s *Scrollbar) RowToOffset(row, viewport, total int) int {
	if total <= viewport || s.height <= 0 {
		return 0
	}
	row = min(max(row, 0), s.height-1)

	_, size := s.thumb(0, viewport, total)
	thumbRange := s.height - size
	maxScroll := total - viewport
	if thumbRange <= 0 {
		return 0
	}
	return min(int((int64(row)*int64(maxScroll))/int64(thumbRange)), maxScroll)
}
