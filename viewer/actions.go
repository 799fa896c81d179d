package viewer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"rgbmatrix/config"
	"rgbmatrix/imagefile"
	"rgbmatrix/logging"
	"rgbmatrix/pixel"
	"rgbmatrix/table"
	"rgbmatrix/ui"
	"rgbmatrix/worker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// executeAction executes a key binding or menu action
func (m *Model) executeAction(action string) (tea.Model, tea.Cmd) {
	switch action {
	case config.ActionOpen:
		m.showOpen()
	case config.ActionProcess:
		return m, m.process()
	case config.ActionExport:
		return m, m.export()
	case config.ActionQuit:
		return m.quit()
	case config.ActionJump:
		m.showJump()
	case config.ActionToggleMode:
		return m, m.toggleMode()
	case config.ActionZoomIn:
		return m, m.setZoom(m.view.Layout.Zoom().In())
	case config.ActionZoomOut:
		return m, m.setZoom(m.view.Layout.Zoom().Out())
	case config.ActionZoomReset:
		return m, m.setZoom(table.DefaultZoom)
	case config.ActionCopy:
		m.copyHex()
	case config.ActionStats:
		m.showStats()
	case config.ActionToggleScrollbar:
		return m, m.toggleScrollbar()
	case config.ActionTogglePreview:
		return m, m.togglePreview()
	case config.ActionHelp:
		m.mode = ModeHelp
	case config.ActionMenu:
		m.menubar.OpenMenu(0)
		m.mode = ModeMenu
	case ui.ActionAbout:
		m.mode = ModeAbout
	}
	return m, nil
}

// load decodes path in the background
func (m *Model) load(path string) tea.Cmd {
	maxBytes := m.config.Viewer.MaxFileBytes()
	m.statusbar.SetMessage("Loading "+filepath.Base(path)+"...", ui.MessageInfo)
	return func() tea.Msg {
		img, err := imagefile.Load(path, maxBytes)
		return imageLoadedMsg{path: path, image: img, err: err}
	}
}

func (m *Model) imageLoaded(msg imageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.WarnContext(m.ctx, "image rejected", slog.String("path", msg.path), slog.Any("err", msg.err))
		m.statusbar.SetMessage(msg.err.Error(), ui.MessageError)
		return m, nil
	}

	img := msg.image
	m.image = img
	m.ctx = logging.AppendCtx(m.baseCtx, slog.String("image", filepath.Base(msg.path)))
	// A running extraction belongs to the previous image; its response is
	// discarded when it arrives.
	m.request = uuid.Nil
	m.state = StateLoaded
	m.setSequence(pixel.Empty)
	m.preview.SetBitmap(img.Bitmap)
	m.statusbar.SetImage(msg.path, img.Info.Dims)
	m.statusbar.SetMessage(fmt.Sprintf("%s image, %s. Press %s to extract pixels",
		img.Info.Format, imagefile.FormatFileSize(img.Info.Size),
		config.FormatKeyForDisplay(m.config.Keys.Process.Primary)), ui.MessageInfo)
	m.updateMenuState()
	m.updateLayout()

	m.config.AddRecentFile(msg.path)
	return m, m.persist()
}

// process hands the loaded bitmap to the worker
func (m *Model) process() tea.Cmd {
	switch m.state {
	case StateEmpty:
		m.statusbar.SetMessage("Open an image first", ui.MessageError)
		return nil
	case StateProcessing:
		return nil
	case StateReady:
		m.statusbar.SetMessage("Pixels already extracted", ui.MessageInfo)
		return nil
	}

	id, err := m.worker.Submit(m.image.Bitmap)
	if err != nil {
		if errors.Is(err, worker.ErrBusy) {
			m.statusbar.SetMessage("The previous extraction is still running, try again shortly", ui.MessageError)
		} else {
			m.statusbar.SetMessage("Cannot extract: "+err.Error(), ui.MessageError)
		}
		return nil
	}

	m.request = id
	m.state = StateProcessing
	m.updateMenuState()
	m.statusbar.SetMessage("Extracting "+ui.FormatCount(m.image.Info.Dims.Area())+" pixels...", ui.MessageInfo)
	return m.waitForExtraction()
}

// waitForExtraction blocks, off the UI goroutine, until the worker answers
func (m *Model) waitForExtraction() tea.Cmd {
	ctx, w := m.baseCtx, m.worker
	return func() tea.Msg {
		resp, ok := w.Next(ctx)
		return extractionMsg{resp: resp, ok: ok}
	}
}

func (m *Model) extractionDone(msg extractionMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		return m, nil
	}
	resp := msg.resp
	if resp.ID != m.request {
		m.logger.DebugContext(m.ctx, "stale extraction discarded", slog.String("request", resp.ID.String()))
		return m, nil
	}

	switch resp.Kind {
	case worker.KindProgress:
		return m, m.waitForExtraction()

	case worker.KindFailed:
		m.request = uuid.Nil
		m.state = StateLoaded
		m.logger.ErrorContext(m.ctx, "extraction failed",
			slog.String("request", resp.ID.String()), slog.Any("err", resp.Err))
		m.statusbar.SetMessage("Extraction failed: "+errorText(resp.Err), ui.MessageError)

	case worker.KindComplete:
		m.request = uuid.Nil
		seq := resp.Pixels
		m.logger.InfoContext(m.ctx, "extraction completed",
			slog.String("request", resp.ID.String()),
			slog.Int("pixels", seq.Len()),
			slog.Duration("elapsed", resp.Elapsed))
		if seq.IsEmpty() {
			m.state = StateLoaded
			m.statusbar.SetMessage("The image has no pixels", ui.MessageError)
			break
		}
		m.state = StateReady
		m.setSequence(seq)
		m.statusbar.SetMessage(fmt.Sprintf("Extracted %s pixels in %s",
			ui.FormatCount(seq.Len()), resp.Elapsed.Round(time.Millisecond)), ui.MessageSuccess)
	}

	m.updateMenuState()
	m.updateLayout()
	return m, nil
}

// errorText unwraps an ExtractionError down to its cause for display.
func errorText(err error) string {
	var ee *worker.ExtractionError
	if errors.As(err, &ee) && ee.Err != nil {
		return ee.Err.Error()
	}
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// ExportCSV writes seq to a new file at path and returns the number of data
// rows written.
func ExportCSV(path string, seq *pixel.Sequence) (rows int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return pixel.WriteCSV(f, seq)
}

func (m *Model) export() tea.Cmd {
	seq := m.view.Layout.Sequence()
	if m.state != StateReady || seq.IsEmpty() {
		m.statusbar.SetMessage("Nothing to export", ui.MessageError)
		return nil
	}
	path := m.config.Viewer.ExportPath(pixel.ExportFilename(m.now()))
	m.statusbar.SetMessage("Exporting "+filepath.Base(path)+"...", ui.MessageInfo)
	return func() tea.Msg {
		rows, err := ExportCSV(path, seq)
		return exportedMsg{path: path, rows: rows, err: err}
	}
}

func (m *Model) exported(msg exportedMsg) {
	if msg.err != nil {
		m.logger.ErrorContext(m.ctx, "csv export failed", slog.String("path", msg.path), slog.Any("err", msg.err))
		m.statusbar.SetMessage("Export failed: "+msg.err.Error(), ui.MessageError)
		return
	}
	m.logger.InfoContext(m.ctx, "csv exported", slog.String("path", msg.path), slog.Int("rows", msg.rows))
	m.statusbar.SetMessage(fmt.Sprintf("Exported %s rows to %s", ui.FormatCount(msg.rows), msg.path), ui.MessageSuccess)
}

func (m *Model) copyHex() {
	p, ok := m.Selected()
	if !ok {
		m.statusbar.SetMessage("No pixel selected", ui.MessageError)
		return
	}
	method, err := m.clipboard.Copy(p.Hex)
	if err != nil {
		m.statusbar.SetMessage("Copy failed: "+err.Error(), ui.MessageError)
		return
	}
	m.statusbar.SetMessage(fmt.Sprintf("Copied %s to %s", p.Hex, method), ui.MessageSuccess)
}

// toggleMode switches between List and Matrix, keeping the selection in
// view
func (m *Model) toggleMode() tea.Cmd {
	mode := m.view.Layout.Mode().Toggle()
	m.view.SetMode(mode)
	m.updateLayout()
	if m.selected >= 0 {
		m.view.Reveal(m.selected)
	}
	m.statusbar.SetMessage("Layout: "+mode.String(), ui.MessageInfo)

	m.config.Viewer.DefaultMode = mode.String()
	return m.persist()
}

// setZoom changes the Matrix cell size. List rows are one line at any zoom.
func (m *Model) setZoom(z table.Zoom) tea.Cmd {
	if m.view.Layout.Mode() != table.ModeMatrix {
		m.statusbar.SetMessage("Zoom applies to the matrix layout", ui.MessageInfo)
		return nil
	}
	m.view.SetZoom(z)
	m.updateLayout()
	if m.selected >= 0 {
		m.view.Reveal(m.selected)
	}
	m.statusbar.SetMessage("Zoom "+m.view.Layout.Zoom().String(), ui.MessageInfo)

	m.config.Viewer.DefaultZoom = int(m.view.Layout.Zoom())
	return m.persist()
}

func (m *Model) toggleScrollbar() tea.Cmd {
	on := m.scrollbar.Toggle()
	m.menubar.SetItemChecked(config.ActionToggleScrollbar, on)
	m.updateLayout()
	if on {
		m.statusbar.SetMessage("Scrollbar enabled", ui.MessageInfo)
	} else {
		m.statusbar.SetMessage("Scrollbar disabled", ui.MessageInfo)
	}

	m.config.Viewer.Scrollbar = on
	return m.persist()
}

func (m *Model) togglePreview() tea.Cmd {
	on := m.preview.Toggle()
	m.menubar.SetItemChecked(config.ActionTogglePreview, on)
	m.updateLayout()
	if on {
		m.statusbar.SetMessage("Preview enabled", ui.MessageInfo)
	} else {
		m.statusbar.SetMessage("Preview disabled", ui.MessageInfo)
	}

	m.config.Viewer.Preview = on
	return m.persist()
}

// quit terminates the worker and the program
func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.worker.Stop()
	m.quitting = true
	m.logger.InfoContext(m.ctx, "viewer closed")
	return m, tea.Quit
}

func (m *Model) showOpen() {
	m.mode = ModeOpen
	m.openInput = ""
	m.recentIndex = -1
	m.openFocusList = false
	current := ""
	if m.image != nil {
		current = m.image.Info.Path
		m.openInput = current
	}
	if !m.browser.load(startDir(current, m.config.RecentFiles)) {
		m.browser.load(startDir("", nil))
	}
}

func (m *Model) showJump() {
	if m.state != StateReady {
		m.statusbar.SetMessage("Process an image first", ui.MessageError)
		return
	}
	m.mode = ModeJump
	m.jumpField = 0
	m.jumpErr = ""
	if p, ok := m.Selected(); ok {
		m.jumpX, m.jumpY = fmt.Sprint(p.X), fmt.Sprint(p.Y)
	}
}

// submitJump validates the fields and starts a smooth scroll to the pixel.
// Errors keep the dialog open.
func (m *Model) submitJump() (tea.Model, tea.Cmd) {
	p, err := m.view.Jump(m.jumpX, m.jumpY)
	if err != nil {
		m.jumpErr = err.Error()
		var ve *table.ValidationError
		if errors.As(err, &ve) && ve.Field == "Y" {
			m.jumpField = 1
		} else if ve != nil {
			m.jumpField = 0
		}
		return m, nil
	}

	m.selected, _ = pixel.ToIndex(p.X, p.Y, m.view.Layout.Sequence().Dimensions())
	m.mode = ModeNormal
	m.jumpErr = ""
	m.statusbar.SetMessage(fmt.Sprintf("Jumped to (%d, %d)", p.X, p.Y), ui.MessageInfo)
	return m, m.startTicking()
}

func (m *Model) showStats() {
	if m.state != StateReady {
		m.statusbar.SetMessage("No pixel data", ui.MessageError)
		return
	}
	if m.stats == nil {
		s := pixel.Summarize(m.view.Layout.Sequence())
		m.stats = &s
	}
	m.mode = ModeStats
}
