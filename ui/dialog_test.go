package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestDialogBuilderLinesHaveFullWidth(t *testing.T) {
	for _, box := range []BoxChars{UnicodeBox, ASCIIBox} {
		db := NewDialogBuilder(DefaultStyles(), box, 30)
		db.AddTitleBorder(" Jump to Pixel ")
		db.AddText("Enter coordinates")
		db.AddCenteredText("centered")
		db.AddField("X:", "12", 8, true)
		db.AddField("Y:", "a very long value that scrolls", 8, false)
		db.AddErrorText("y must be a non-negative integer, really")
		db.AddSwatch(10, 20, 30, "#0a141e")
		db.AddSelectableItem("OK", true)
		db.AddSeparator()
		db.AddEmptyLine()
		db.AddBottomBorder()

		if db.Height() != 11 {
			t.Errorf("Height() = %d, want 11", db.Height())
		}
		for i, line := range db.Lines() {
			if w := ansi.StringWidth(line); w != 30 {
				t.Errorf("line %d %q has width %d, want 30", i, ansi.Strip(line), w)
			}
		}
	}
}

func TestDialogFieldShowsTail(t *testing.T) {
	db := NewDialogBuilder(DefaultStyles(), ASCIIBox, 20)
	db.AddField("X:", "123456789", 5, true)
	got := ansi.Strip(db.Lines()[0])
	if !strings.Contains(got, "6789_") {
		t.Errorf("focused field = %q, want the typed tail and cursor", got)
	}
}

func TestOverlay(t *testing.T) {
	db := NewDialogBuilder(DefaultStyles(), ASCIIBox, 6)
	db.AddTitleBorder("")
	db.AddBottomBorder()

	content := strings.Join([]string{
		"aaaaaaaaaa",
		"bbbbbbbbbb",
		"cccccccccc",
		"dddddddddd",
	}, "\n")
	x, y := db.Position(10, 4)
	if x != 2 || y != 1 {
		t.Fatalf("Position() = %d,%d, want 2,1", x, y)
	}

	got := strings.Split(ansi.Strip(db.Overlay(content, 10, 4)), "\n")
	want := []string{"aaaaaaaaaa", "bb+----+bb", "cc+----+cc", "dddddddddd"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOverlayPastShortLine(t *testing.T) {
	got := ansi.Strip(OverlayLines("ab", []string{"XY"}, 4, 0))
	if got != "ab  XY" {
		t.Errorf("overlay past the end = %q", got)
	}
}
