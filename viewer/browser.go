package viewer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rgbmatrix/imagefile"
)

// fileEntry is one line of the open dialog's file list
type fileEntry struct {
	Name  string
	IsDir bool
	Size  int64
}

// fileBrowser lists the directories and image files of one directory.
type fileBrowser struct {
	dir      string
	entries  []fileEntry
	selected int
	scroll   int
	err      string
}

// startDir picks where the browser opens: next to the current image, then
// the most recent file, then the working directory.
func startDir(current string, recent []string) string {
	if current != "" {
		return filepath.Dir(current)
	}
	if len(recent) > 0 {
		if st, err := os.Stat(filepath.Dir(recent[0])); err == nil && st.IsDir() {
			return filepath.Dir(recent[0])
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "/"
}

// load reads path. On error the previous listing stays and err is set.
func (b *fileBrowser) load(path string) bool {
	entries, err := os.ReadDir(path)
	if err != nil {
		b.err = "Cannot open: " + err.Error()
		return false
	}
	b.err = ""

	path = filepath.Clean(path)
	list := make([]fileEntry, 0, len(entries)+1)
	if filepath.Dir(path) != path {
		list = append(list, fileEntry{Name: "..", IsDir: true})
	}

	// Info() is only called for files; it can hang on stale mounts
	var dirs, files []fileEntry
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, fileEntry{Name: e.Name(), IsDir: true})
			continue
		}
		if !imagefile.HasImageExt(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, fileEntry{Name: e.Name(), Size: info.Size()})
	}
	byName := func(s []fileEntry) {
		sort.Slice(s, func(i, j int) bool {
			return strings.ToLower(s[i].Name) < strings.ToLower(s[j].Name)
		})
	}
	byName(dirs)
	byName(files)

	b.entries = append(append(list, dirs...), files...)
	b.dir = path
	b.selected = 0
	b.scroll = 0
	return true
}

// current returns the selected entry
func (b *fileBrowser) current() (fileEntry, bool) {
	if b.selected < 0 || b.selected >= len(b.entries) {
		return fileEntry{}, false
	}
	return b.entries[b.selected], true
}

func (b *fileBrowser) fileCount() int {
	n := 0
	for _, e := range b.entries {
		if !e.IsDir {
			n++
		}
	}
	return n
}

// activate enters the selected directory, or returns the selected file's
// path.
func (b *fileBrowser) activate() (file string, ok bool) {
	e, ok := b.current()
	if !ok {
		return "", false
	}
	if !e.IsDir {
		return filepath.Join(b.dir, e.Name), true
	}
	target := filepath.Join(b.dir, e.Name)
	if e.Name == ".." {
		target = filepath.Dir(b.dir)
	}
	b.load(target)
	return "", false
}

// parent moves to the enclosing directory
func (b *fileBrowser) parent() {
	if up := filepath.Dir(b.dir); up != b.dir {
		b.load(up)
	}
}

// move shifts the selection by delta and scrolls it into a window of
// visible lines.
func (b *fileBrowser) move(delta, visible int) {
	if len(b.entries) == 0 {
		return
	}
	b.selected = min(max(b.selected+delta, 0), len(b.entries)-1)
	b.reveal(visible)
}

func (b *fileBrowser) home() { b.selected, b.scroll = 0, 0 }

func (b *fileBrowser) end(visible int) { b.move(len(b.entries), visible) }

func (b *fileBrowser) reveal(visible int) {
	visible = max(1, visible)
	if b.selected < b.scroll {
		b.scroll = b.selected
	}
	if b.selected >= b.scroll+visible {
		b.scroll = b.selected - visible + 1
	}
}

// scrollBy scrolls the list by delta lines, dragging the selection along
// so it stays visible.
func (b *fileBrowser) scrollBy(delta, visible int) {
	maxScroll := max(0, len(b.entries)-visible)
	b.scroll = min(max(b.scroll+delta, 0), maxScroll)
	if b.selected < b.scroll {
		b.selected = b.scroll
	}
	if b.selected >= b.scroll+visible {
		b.selected = b.scroll + visible - 1
	}
}
