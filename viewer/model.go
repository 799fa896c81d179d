package viewer

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"time"

	"rgbmatrix/clipboard"
	"rgbmatrix/config"
	"rgbmatrix/imagefile"
	"rgbmatrix/pixel"
	"rgbmatrix/table"
	"rgbmatrix/ui"
	"rgbmatrix/worker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// State is where the loaded image is in the load → process pipeline
type State int

const (
	StateEmpty      State = iota // no image
	StateLoaded                  // bitmap decoded, preview shown
	StateProcessing              // extraction running on the worker
	StateReady                   // pixel table shown
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "Loaded"
	case StateProcessing:
		return "Processing..."
	case StateReady:
		return "Ready"
	default:
		return ""
	}
}

// Mode represents which input surface has the keyboard
type Mode int

const (
	ModeNormal Mode = iota
	ModeMenu
	ModeOpen
	ModeJump
	ModeStats
	ModeHelp
	ModeAbout
	ModeError
)

// Screen rows above the table body: menu bar and column header.
const bodyTop = 2

// frameInterval paces smooth scrolling.
const frameInterval = 16 * time.Millisecond

type imageLoadedMsg struct {
	path  string
	image *imagefile.Image
	err   error
}

type extractionMsg struct {
	resp worker.Response
	ok   bool
}

type exportedMsg struct {
	path string
	rows int
	err  error
}

type configSavedMsg struct {
	err error
}

type tickMsg time.Time

// Model is the bubbletea model for the pixel browser
type Model struct {
	// Collaborators
	baseCtx    context.Context
	ctx        context.Context // baseCtx plus the current image's log attributes
	logger     *slog.Logger
	worker     *worker.Worker
	clipboard  *clipboard.Clipboard
	caps       *config.TermCapabilities
	saveConfig func(*config.Config) error
	now        func() time.Time

	// UI components
	menubar    *ui.MenuBar
	statusbar  *ui.StatusBar
	scrollbar  *ui.Scrollbar
	preview    *ui.Preview
	renderer   *ui.TableRenderer
	styles     ui.Styles
	box        ui.BoxChars
	ascii      bool
	forceASCII bool

	// Data
	image    *imagefile.Image
	view     *table.View
	stats    *pixel.Stats // computed on first use
	request  uuid.UUID    // extraction we are waiting for, uuid.Nil if none
	selected int          // linear index of the selected record, -1 if none

	// State
	state      State
	mode       Mode
	width      int
	height     int
	ticking    bool
	quitting   bool
	kittyShown bool

	// Open dialog state
	openInput     string
	recentIndex   int // -1 when the input was typed
	browser       fileBrowser
	openFocusList bool
	browserTop    int // dialog line of the first file list entry

	// Jump dialog state
	jumpX, jumpY string
	jumpField    int // 0 = X, 1 = Y
	jumpErr      string

	// Error dialog state
	errorTitle string
	errorText  string

	initialPath string
	config      *config.Config
}

// Option configures a Model
type Option func(*Model)

// WithContext sets the context that bounds background waits and carries
// log attributes.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.baseCtx = ctx }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithWorker replaces the extraction worker.
func WithWorker(w *worker.Worker) Option {
	return func(m *Model) { m.worker = w }
}

// WithClipboard replaces the clipboard used for Copy Hex.
func WithClipboard(c *clipboard.Clipboard) Option {
	return func(m *Model) { m.clipboard = c }
}

// WithCapabilities overrides terminal capability detection.
func WithCapabilities(caps *config.TermCapabilities) Option {
	return func(m *Model) { m.caps = caps }
}

// WithConfigSaver replaces how settings are persisted.
func WithConfigSaver(fn func(*config.Config) error) Option {
	return func(m *Model) { m.saveConfig = fn }
}

// WithClock replaces time.Now for export file names.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithInitialImage opens path as soon as the program starts.
func WithInitialImage(path string) Option {
	return func(m *Model) { m.initialPath = path }
}

// WithASCII forces ASCII box drawing and swatches regardless of the
// terminal and the config file.
func WithASCII() Option {
	return func(m *Model) { m.forceASCII = true }
}

// WithStartupError shows err in a dialog on the first frame, e.g. a broken
// config file.
func WithStartupError(title string, err error) Option {
	return func(m *Model) {
		if err != nil {
			m.errorTitle = title
			m.errorText = err.Error()
			m.mode = ModeError
		}
	}
}

// New creates a viewer for cfg
func New(cfg *config.Config, opts ...Option) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &Model{
		baseCtx:     context.Background(),
		logger:      slog.Default(),
		saveConfig:  (*config.Config).Save,
		now:         time.Now,
		selected:    -1,
		recentIndex: -1,
		width:       80,
		height:      24,
		config:      cfg,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.ctx = m.baseCtx
	if m.caps == nil {
		m.caps = config.GetCapabilities()
	}
	if m.worker == nil {
		m.worker = worker.New(worker.WithLogger(m.logger))
	}
	if m.clipboard == nil {
		m.clipboard = clipboard.New(os.Stdout)
	}

	m.ascii = m.forceASCII || m.caps.ShouldUseASCII(cfg.Viewer.AsciiMode)
	m.box = ui.Box(m.ascii)
	m.styles = ui.NewStyles(cfg.Theme.GetResolved())

	m.menubar = ui.NewMenuBar(m.styles, &cfg.Keys)
	m.menubar.SetBox(m.box)
	m.statusbar = ui.NewStatusBar(m.styles)
	m.scrollbar = ui.NewScrollbar(m.styles)
	m.scrollbar.SetASCII(m.ascii)
	m.scrollbar.SetEnabled(cfg.Viewer.Scrollbar)
	m.preview = ui.NewPreview(m.caps.KittyGraphics)
	m.preview.SetASCII(m.ascii)
	m.preview.SetEnabled(cfg.Viewer.Preview)
	m.renderer = ui.NewTableRenderer(m.styles)
	m.renderer.SetASCII(m.ascii)

	m.view = table.NewView(cfg.Viewer.Metrics(), cfg.Viewer.Overscan)
	m.view.SetMode(cfg.Viewer.Mode())
	m.view.SetZoom(cfg.Viewer.Zoom())

	m.menubar.SetItemChecked(config.ActionToggleScrollbar, m.scrollbar.IsEnabled())
	m.menubar.SetItemChecked(config.ActionTogglePreview, m.preview.IsEnabled())
	m.updateMenuState()
	m.updateLayout()
	return m
}

// State returns the pipeline state.
func (m *Model) State() State { return m.state }

// Mode returns the input mode.
func (m *Model) Mode() Mode { return m.mode }

// Selected returns the selected record.
func (m *Model) Selected() (pixel.Record, bool) {
	if m.state != StateReady {
		return pixel.Record{}, false
	}
	return m.view.Layout.Sequence().At(m.selected)
}

// Sequence returns the extracted pixels, empty until processing finishes.
func (m *Model) Sequence() *pixel.Sequence { return m.view.Layout.Sequence() }

// TableView exposes the windowed table for inspection.
func (m *Model) TableView() *table.View { return m.view }

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen, tea.EnableMouseCellMotion}
	if m.initialPath != "" {
		cmds = append(cmds, m.load(m.initialPath))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		if m.selected >= 0 {
			m.view.Reveal(m.selected)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case imageLoadedMsg:
		return m.imageLoaded(msg)

	case extractionMsg:
		return m.extractionDone(msg)

	case exportedMsg:
		m.exported(msg)
		return m, nil

	case configSavedMsg:
		if msg.err != nil {
			m.logger.WarnContext(m.ctx, "config save failed", slog.Any("err", msg.err))
		}
		return m, nil

	case tickMsg:
		if m.view.Step() {
			return m, tick()
		}
		m.ticking = false
		return m, nil
	}

	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// startTicking schedules animation frames while a smooth scroll runs.
func (m *Model) startTicking() tea.Cmd {
	if m.ticking || !m.view.Animating() {
		return nil
	}
	m.ticking = true
	return tick()
}

// bodyHeight is the number of table lines between the header and the
// status bar.
func (m *Model) bodyHeight() int {
	return max(1, m.height-bodyTop-1)
}

// previewWidth is the width of the preview panel next to the table,
// including its one column gap.
func (m *Model) previewWidth() int {
	if m.state != StateReady || !m.preview.Visible() || m.width < 60 {
		return 0
	}
	return min(40, m.width/3)
}

// tableWidth includes the scrollbar.
func (m *Model) tableWidth() int {
	return max(0, m.width-m.previewWidth())
}

func (m *Model) contentWidth() int {
	return max(0, m.tableWidth()-m.scrollbar.Width())
}

// updateLayout recalculates component sizes after a resize or toggle
func (m *Model) updateLayout() {
	m.menubar.SetWidth(m.width)
	m.statusbar.SetWidth(m.width)
	h := m.bodyHeight()
	m.scrollbar.SetHeight(h)
	m.view.Resize(h, max(0, m.contentWidth()-m.renderer.Gutter(m.view)))
}

// updateMenuState enables the menu items that make sense in the current
// state
func (m *Model) updateMenuState() {
	ready := m.state == StateReady
	m.menubar.SetItemDisabled(config.ActionProcess, m.state != StateLoaded)
	m.menubar.SetItemDisabled(config.ActionExport, !ready)
	m.menubar.SetItemDisabled(config.ActionJump, !ready)
	m.menubar.SetItemDisabled(config.ActionCopy, !ready)
	m.menubar.SetItemDisabled(config.ActionStats, !ready)
}

// setSequence installs a new snapshot and resets the selection.
func (m *Model) setSequence(seq *pixel.Sequence) {
	m.view.SetSequence(seq)
	m.stats = nil
	m.selected = -1
	if !seq.IsEmpty() {
		m.selected = 0
	}
	m.updateLayout()
}

// persist saves a snapshot of the config in the background
func (m *Model) persist() tea.Cmd {
	snapshot := *m.config
	snapshot.RecentFiles = slices.Clone(m.config.RecentFiles)
	save := m.saveConfig
	return func() tea.Msg {
		return configSavedMsg{err: save(&snapshot)}
	}
}
