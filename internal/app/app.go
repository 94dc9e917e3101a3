// Package app contains the root application model. It owns the document,
// routes input between the editor and the active overlay, and drives the
// highlight debounce and autosave timer chains.
package app

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/texit/internal/autosave"
	"github.com/zjrosen/texit/internal/config"
	"github.com/zjrosen/texit/internal/document"
	"github.com/zjrosen/texit/internal/highlight"
	"github.com/zjrosen/texit/internal/history"
	"github.com/zjrosen/texit/internal/keys"
	"github.com/zjrosen/texit/internal/log"
	"github.com/zjrosen/texit/internal/ui/confirm"
	"github.com/zjrosen/texit/internal/ui/editor"
	"github.com/zjrosen/texit/internal/ui/finddialog"
	"github.com/zjrosen/texit/internal/ui/help"
	"github.com/zjrosen/texit/internal/ui/overlay"
	"github.com/zjrosen/texit/internal/ui/prompt"
	"github.com/zjrosen/texit/internal/ui/statusbar"
	"github.com/zjrosen/texit/internal/ui/styles"
	"github.com/zjrosen/texit/internal/ui/toolbar"
	"github.com/zjrosen/texit/internal/watcher"
)

// chromeHeight is the rows taken by the toolbar and statusbar.
const chromeHeight = 2

// Options configures the application model.
type Options struct {
	Config     config.Config
	ConfigPath string

	// InitialPath is the optional file to open at startup. An unreadable
	// path is ignored, matching an editor that starts empty rather than
	// refusing to start.
	InitialPath string

	// History is optional; nil disables recent-file and snapshot
	// recording.
	History *history.Store

	// Tracer is optional; nil uses a noop tracer.
	Tracer oteltrace.Tracer
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	keymap     keys.KeyMap
	theme      styles.Theme

	doc       *document.Document
	editor    editor.Model
	statusBar statusbar.Model
	toolBar   toolbar.Model

	overlay  overlayKind
	find     finddialog.Model
	input    prompt.Model
	gate     confirm.Model
	helpView help.Model

	// pending is the action parked behind the unsaved-changes gate; it
	// resumes after a save or a discard.
	pending pendingAction

	highlighter  *highlight.Highlighter
	highlightSeq int
	autosaveSeq  int
	lastPattern  string

	hist    *history.Store
	watch   *watcher.Watcher
	watchCh <-chan struct{}

	tracer oteltrace.Tracer

	width      int
	height     int
	scratchDir string
}

// New creates the application model.
func New(opts Options) (Model, error) {
	cfg := opts.Config.Normalize()
	theme, err := styles.NewTheme(styles.ThemeConfig{Preset: cfg.Theme})
	if err != nil {
		return Model{}, err
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("texit")
	}

	ed := editor.New(theme)
	ed.SetShowLineNumbers(cfg.ShowLineNumbers)

	sb := statusbar.New(theme)
	sb.SetAutosave(cfg.AutosaveEnabled, cfg.AutosaveSecs)
	sb.SetThemeName(styles.DisplayName(cfg.Theme))

	m := Model{
		cfg:         cfg,
		configPath:  opts.ConfigPath,
		keymap:      keys.DefaultKeyMap(),
		theme:       theme,
		doc:         document.New(),
		editor:      ed,
		statusBar:   sb,
		toolBar:     toolbar.New(theme),
		highlighter: highlight.New(),
		hist:        opts.History,
		tracer:      tracer,
		scratchDir:  autosave.DefaultScratchDir(),
	}

	if opts.InitialPath != "" {
		if doc, err := document.Open(opts.InitialPath); err != nil {
			log.Warn(log.CatDoc, "Ignoring unreadable startup file", "path", opts.InitialPath, "error", err)
		} else {
			m.adoptDocument(doc)
		}
	}

	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.cfg.AutosaveEnabled {
		cmds = append(cmds, m.scheduleAutosave())
	}
	if m.watchCh != nil {
		cmds = append(cmds, m.listenWatcher())
	}
	return tea.Batch(cmds...)
}

// adoptDocument installs a freshly opened document: buffer, spans, watcher,
// and recent-file history.
func (m *Model) adoptDocument(doc *document.Document) {
	m.doc = doc
	m.editor.SetValue(doc.Text())
	m.editor.SetSpans(m.highlighter.Highlight(doc.Text(), filepath.Base(doc.Path())))
	m.restartWatcher(doc.Path())

	if m.hist != nil && doc.Path() != "" {
		if err := m.hist.TouchRecent(doc.Path(), time.Now()); err != nil {
			log.Warn(log.CatHistory, "Failed to record recent file", "path", doc.Path(), "error", err)
		}
	}
}

// restartWatcher points the file watcher at path, or stops it for an
// unbound document.
func (m *Model) restartWatcher(path string) {
	if m.watch != nil {
		_ = m.watch.Stop()
		m.watch = nil
		m.watchCh = nil
	}
	if path == "" {
		return
	}
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		log.Warn(log.CatWatcher, "Failed to create watcher", "path", path, "error", err)
		return
	}
	ch, err := w.Start()
	if err != nil {
		log.Warn(log.CatWatcher, "Failed to start watcher", "path", path, "error", err)
		_ = w.Stop()
		return
	}
	m.watch = w
	m.watchCh = ch
}

func (m Model) listenWatcher() tea.Cmd {
	ch := m.watchCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func (m *Model) scheduleAutosave() tea.Cmd {
	seq := m.autosaveSeq
	return tea.Tick(autosave.ClampInterval(m.cfg.AutosaveSecs), func(time.Time) tea.Msg {
		return autosaveTickMsg{seq: seq}
	})
}

func (m *Model) scheduleHighlight() tea.Cmd {
	m.highlightSeq++
	seq := m.highlightSeq
	debounce := time.Duration(m.cfg.HighlightDebounceMS) * time.Millisecond
	return tea.Tick(debounce, func(time.Time) tea.Msg {
		return highlightTickMsg{seq: seq}
	})
}

// fileName returns the display name for the statusbar.
func (m Model) fileName() string {
	if m.doc.Path() == "" {
		return "Untitled"
	}
	return filepath.Base(m.doc.Path())
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	sb := m.statusBar
	sb.SetFile(m.fileName(), m.doc.Dirty())
	sb.SetCursor(m.editor.Line(), m.editor.Column())
	sb.SetAutosave(m.cfg.AutosaveEnabled, m.cfg.AutosaveSecs)
	sb.SetThemeName(styles.DisplayName(m.cfg.Theme))

	base := m.toolBar.View() + "\n" + m.editor.View() + "\n" + sb.View()

	switch m.overlay {
	case overlayFind:
		base = overlay.Center(m.width, m.height, m.find.View(), base)
	case overlayPrompt:
		base = overlay.Center(m.width, m.height, m.input.View(), base)
	case overlayConfirm:
		base = overlay.Center(m.width, m.height, m.gate.View(), base)
	case overlayHelp:
		base = overlay.Center(m.width, m.height, m.helpView.View(), base)
	}

	return zone.Scan(base)
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	if m.watch != nil {
		return m.watch.Stop()
	}
	return nil
}
