package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/texit/internal/autosave"
	"github.com/zjrosen/texit/internal/config"
	"github.com/zjrosen/texit/internal/document"
	"github.com/zjrosen/texit/internal/log"
	"github.com/zjrosen/texit/internal/search"
	"github.com/zjrosen/texit/internal/textpos"
	"github.com/zjrosen/texit/internal/ui/confirm"
	"github.com/zjrosen/texit/internal/ui/editor"
	"github.com/zjrosen/texit/internal/ui/finddialog"
	"github.com/zjrosen/texit/internal/ui/help"
	"github.com/zjrosen/texit/internal/ui/prompt"
	"github.com/zjrosen/texit/internal/ui/statusbar"
	"github.com/zjrosen/texit/internal/ui/styles"
	"github.com/zjrosen/texit/internal/ui/toolbar"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetSize(msg.Width, msg.Height-chromeHeight)
		m.statusBar.SetWidth(msg.Width)
		m.toolBar.SetWidth(msg.Width)
		m.find.SetWidth(min(msg.Width-4, 64))
		m.input.SetWidth(min(msg.Width-4, 64))
		m.gate.SetWidth(min(msg.Width-4, 64))
		return m, nil

	case editor.ContentChangedMsg:
		m.doc.SetText(m.editor.Value())
		return m, m.scheduleHighlight()

	case highlightTickMsg:
		if msg.seq != m.highlightSeq {
			return m, nil
		}
		return m.relex(), nil

	case autosaveTickMsg:
		return m.handleAutosaveTick(msg)

	case fileChangedMsg:
		return m.handleFileChanged()

	case statusbar.ClearMsg:
		var cmd tea.Cmd
		m.statusBar, cmd = m.statusBar.Update(msg)
		return m, cmd

	case toolbar.ClickedMsg:
		return m.handleToolbar(msg)

	case finddialog.FindNextMsg:
		return m.handleFindNext(msg.Query)

	case finddialog.ReplaceMsg:
		return m.handleReplace(msg.Query, msg.Replacement)

	case finddialog.ReplaceAllMsg:
		return m.handleReplaceAll(msg.Query, msg.Replacement)

	case finddialog.ClosedMsg:
		m.closeOverlay()
		return m, nil

	case prompt.SubmittedMsg:
		return m.handlePromptSubmit(msg)

	case prompt.CancelledMsg:
		m.pending = pendingNone
		m.closeOverlay()
		return m, nil

	case confirm.ResultMsg:
		return m.handleGateResult(msg.Choice)

	case tea.MouseMsg:
		if m.overlay == overlayNone {
			var cmd tea.Cmd
			m.toolBar, cmd = m.toolBar.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.overlay {
	case overlayFind:
		var cmd tea.Cmd
		m.find, cmd = m.find.Update(msg)
		return m, cmd
	case overlayPrompt:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case overlayConfirm:
		var cmd tea.Cmd
		m.gate, cmd = m.gate.Update(msg)
		return m, cmd
	case overlayHelp:
		if key.Matches(msg, m.keymap.Escape) || key.Matches(msg, m.keymap.Help) {
			m.closeOverlay()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.requestAction(pendingQuit)

	case key.Matches(msg, m.keymap.New):
		return m.requestAction(pendingNew)

	case key.Matches(msg, m.keymap.Open):
		return m.requestAction(pendingOpen)

	case key.Matches(msg, m.keymap.Save):
		return m.doSave()

	case key.Matches(msg, m.keymap.SaveAs):
		return m.openSaveAsPrompt()

	case key.Matches(msg, m.keymap.Reload):
		if m.doc.Path() == "" {
			return m, m.statusBar.ShowMessage("No file to reload")
		}
		return m.requestAction(pendingReload)

	case key.Matches(msg, m.keymap.Find):
		return m.openFind()

	case key.Matches(msg, m.keymap.Undo):
		if !m.editor.Undo() {
			return m, m.statusBar.ShowMessage("Nothing to undo")
		}
		m.doc.SetText(m.editor.Value())
		return m, m.scheduleHighlight()

	case key.Matches(msg, m.keymap.Redo):
		if !m.editor.Redo() {
			return m, m.statusBar.ShowMessage("Nothing to redo")
		}
		m.doc.SetText(m.editor.Value())
		return m, m.scheduleHighlight()

	case key.Matches(msg, m.keymap.ToggleLineNumbers):
		m.cfg.ShowLineNumbers = !m.editor.ShowLineNumbers()
		m.editor.SetShowLineNumbers(m.cfg.ShowLineNumbers)
		m.persistConfig()
		return m, nil

	case key.Matches(msg, m.keymap.CycleTheme):
		return m.cycleTheme()

	case key.Matches(msg, m.keymap.ToggleAutosave):
		return m.toggleAutosave()

	case key.Matches(msg, m.keymap.AutosaveInterval):
		m.input = prompt.New(m.theme, prompt.KindAutosaveInterval,
			"Autosave interval (seconds)", "5-300", strconv.Itoa(m.cfg.AutosaveSecs))
		m.input.SetWidth(min(m.width-4, 64))
		m.openOverlay(overlayPrompt)
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		hv, err := help.New(m.theme, m.keymap, min(m.width-4, 70))
		if err != nil {
			log.ErrorErr(log.CatUI, "Failed to render help", err)
			return m, m.statusBar.ShowMessage("Help unavailable")
		}
		m.helpView = hv
		m.openOverlay(overlayHelp)
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) openOverlay(kind overlayKind) {
	m.overlay = kind
	m.editor.Blur()
}

func (m *Model) closeOverlay() {
	m.overlay = overlayNone
	m.editor.Focus()
}

// relex recomputes syntax spans for the current buffer.
func (m Model) relex() Model {
	_, span := m.tracer.Start(context.Background(), "highlight.relex")
	defer span.End()

	hint := ""
	if m.doc.Path() != "" {
		hint = m.fileName()
	}
	m.editor.SetSpans(m.highlighter.Highlight(m.editor.Value(), hint))
	return m
}

// requestAction runs a destructive action, or parks it behind the
// unsaved-changes gate when the buffer is dirty. The buffer is synced
// into the document first: ContentChangedMsg is delivered asynchronously,
// so an edit made in the same frame may not have landed yet.
func (m Model) requestAction(p pendingAction) (tea.Model, tea.Cmd) {
	m.doc.SetText(m.editor.Value())
	if !m.doc.Dirty() {
		return m.perform(p)
	}
	m.pending = p
	m.gate = confirm.New(m.theme, p.question(), m.doc.SavedText(), m.editor.Value())
	m.gate.SetWidth(min(m.width-4, 64))
	m.openOverlay(overlayConfirm)
	return m, nil
}

// perform executes a gated action once the gate has been passed or was not
// needed.
func (m Model) perform(p pendingAction) (tea.Model, tea.Cmd) {
	m.pending = pendingNone
	switch p {
	case pendingNew:
		m.doc = document.New()
		m.editor.SetValue("")
		m.restartWatcher("")
		m.closeOverlay()
		return m, nil

	case pendingOpen:
		m.input = prompt.New(m.theme, prompt.KindOpenPath, "Open file", "path/to/file", "")
		m.input.SetWidth(min(m.width-4, 64))
		m.openOverlay(overlayPrompt)
		return m, nil

	case pendingReload:
		return m.reloadFromDisk()

	case pendingQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleGateResult(choice confirm.Choice) (tea.Model, tea.Cmd) {
	p := m.pending
	switch choice {
	case confirm.ChoiceCancel:
		m.pending = pendingNone
		m.closeOverlay()
		return m, nil

	case confirm.ChoiceDiscard:
		m.closeOverlay()
		return m.perform(p)

	default: // ChoiceSave
		m.closeOverlay()
		// doSave resumes m.pending after a successful save, including
		// through a save-as prompt for unbound documents.
		return m.doSave()
	}
}

// doSave writes the document to its bound path, or routes through the
// save-as prompt when unbound. A pending gated action resumes afterwards.
func (m Model) doSave() (tea.Model, tea.Cmd) {
	m.doc.SetText(m.editor.Value())
	if m.doc.Path() == "" {
		return m.openSaveAsPrompt()
	}
	return m.saveBound()
}

func (m Model) saveBound() (tea.Model, tea.Cmd) {
	_, span := m.tracer.Start(context.Background(), "document.save")
	span.SetAttributes(attribute.String("path", m.doc.Path()))
	defer span.End()

	if err := m.doc.Save(); err != nil {
		log.ErrorErr(log.CatDoc, "Save failed", err, "path", m.doc.Path())
		m.pending = pendingNone
		return m, m.statusBar.ShowMessage("Save failed: " + err.Error())
	}
	log.Info(log.CatDoc, "Saved", "path", m.doc.Path())

	if m.hist != nil {
		if err := m.hist.TouchRecent(m.doc.Path(), time.Now()); err != nil {
			log.Warn(log.CatHistory, "Failed to record recent file", "error", err)
		}
	}

	msgCmd := m.statusBar.ShowMessage("Saved " + m.fileName())
	if p := m.pending; p != pendingNone {
		model, cmd := m.perform(p)
		return model, tea.Batch(msgCmd, cmd)
	}
	return m, msgCmd
}

func (m Model) openSaveAsPrompt() (tea.Model, tea.Cmd) {
	m.doc.SetText(m.editor.Value())
	m.input = prompt.New(m.theme, prompt.KindSaveAsPath, "Save as", "path/to/file", m.doc.Path())
	m.input.SetWidth(min(m.width-4, 64))
	m.openOverlay(overlayPrompt)
	return m, nil
}

func (m Model) handlePromptSubmit(msg prompt.SubmittedMsg) (tea.Model, tea.Cmd) {
	switch msg.Kind {
	case prompt.KindOpenPath:
		return m.openFile(strings.TrimSpace(msg.Value))

	case prompt.KindSaveAsPath:
		return m.saveAs(strings.TrimSpace(msg.Value))

	case prompt.KindAutosaveInterval:
		return m.setAutosaveInterval(strings.TrimSpace(msg.Value))
	}
	return m, nil
}

func (m Model) openFile(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		return m, nil
	}
	_, span := m.tracer.Start(context.Background(), "document.open")
	span.SetAttributes(attribute.String("path", path))
	defer span.End()

	doc, err := document.Open(path)
	if err != nil {
		log.Warn(log.CatDoc, "Open failed", "path", path, "error", err)
		return m, m.statusBar.ShowMessage("Could not open: " + err.Error())
	}

	m.adoptDocument(doc)
	m.closeOverlay()
	log.Info(log.CatDoc, "Opened", "path", path)
	return m, tea.Batch(
		m.statusBar.ShowMessage("Opened "+m.fileName()),
		m.listenWatcher(),
	)
}

func (m Model) saveAs(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		return m, nil
	}
	_, span := m.tracer.Start(context.Background(), "document.saveAs")
	span.SetAttributes(attribute.String("path", path))
	defer span.End()

	if err := m.doc.SaveAs(path); err != nil {
		log.ErrorErr(log.CatDoc, "Save as failed", err, "path", path)
		m.pending = pendingNone
		m.closeOverlay()
		return m, m.statusBar.ShowMessage("Save failed: " + err.Error())
	}
	log.Info(log.CatDoc, "Saved", "path", path)

	m.restartWatcher(path)
	if m.hist != nil {
		if err := m.hist.TouchRecent(path, time.Now()); err != nil {
			log.Warn(log.CatHistory, "Failed to record recent file", "error", err)
		}
	}

	m.closeOverlay()
	msgCmd := m.statusBar.ShowMessage("Saved " + m.fileName())
	listenCmd := m.listenWatcher()
	if p := m.pending; p != pendingNone {
		model, cmd := m.perform(p)
		return model, tea.Batch(msgCmd, listenCmd, cmd)
	}
	return m, tea.Batch(msgCmd, listenCmd)
}

// handleFileChanged reacts to a watcher event. The editor's own atomic
// saves land in the watched directory and trip the watcher too, so an
// event is only worth a notice when the disk content actually differs
// from the last saved snapshot.
func (m Model) handleFileChanged() (tea.Model, tea.Cmd) {
	listenCmd := m.listenWatcher()
	if data, err := os.ReadFile(m.doc.Path()); err == nil && string(data) == m.doc.SavedText() {
		return m, listenCmd
	}
	return m, tea.Batch(
		m.statusBar.ShowMessage("File changed on disk (ctrl+r to reload)"),
		listenCmd,
	)
}

func (m Model) reloadFromDisk() (tea.Model, tea.Cmd) {
	doc, err := document.Open(m.doc.Path())
	if err != nil {
		log.Warn(log.CatDoc, "Reload failed", "path", m.doc.Path(), "error", err)
		return m, m.statusBar.ShowMessage("Reload failed: " + err.Error())
	}
	m.adoptDocument(doc)
	m.closeOverlay()
	return m, tea.Batch(
		m.statusBar.ShowMessage("Reloaded "+m.fileName()),
		m.listenWatcher(),
	)
}

func (m Model) openFind() (tea.Model, tea.Cmd) {
	m.find = finddialog.New(m.theme)
	m.find.SetWidth(min(m.width-4, 64))
	if m.lastPattern != "" {
		m.find.SetPattern(m.lastPattern)
	}
	m.openOverlay(overlayFind)
	return m, nil
}

func (m Model) handleFindNext(q search.Query) (tea.Model, tea.Cmd) {
	m.lastPattern = q.Pattern
	text := m.editor.Value()

	match, found, err := search.FindNext(text, q, m.editor.CursorOffset()-1)
	if err != nil {
		return m, m.searchErrorMessage(err)
	}
	if !found {
		return m, m.statusBar.ShowMessage("No matches")
	}

	m.editor.SetSelection(match.Start, match.End)
	pos := textpos.OffsetToPosition(text, match.Start)
	return m, m.statusBar.ShowMessage(fmt.Sprintf("Match at Ln %d, Col %d", pos.Line, pos.Col+1))
}

// handleReplace replaces the current selection only when it is exactly the
// active match span, then advances to the next match. Any other selection
// leaves the buffer untouched, so the action degrades to find-next.
func (m Model) handleReplace(q search.Query, replacement string) (tea.Model, tea.Cmd) {
	m.lastPattern = q.Pattern

	var cmds []tea.Cmd
	if start, end, ok := m.editor.Selection(); ok {
		text := m.editor.Value()
		match, found, err := search.FindNext(text, q, start-1)
		if err != nil {
			return m, m.searchErrorMessage(err)
		}
		if found && match.Start == start && match.End == end {
			// ReplaceAll over the exact match span keeps $1-style
			// references working for regex queries.
			replaced, changed, err := search.ReplaceAll(text[start:end], q, replacement)
			if err != nil {
				return m, m.searchErrorMessage(err)
			}
			if changed {
				m.editor.ReplaceRange(start, end, replaced)
				m.doc.SetText(m.editor.Value())
				cmds = append(cmds, m.scheduleHighlight())
			}
		}
	}

	model, cmd := m.handleFindNext(q)
	return model, tea.Batch(append(cmds, cmd)...)
}

func (m Model) handleReplaceAll(q search.Query, replacement string) (tea.Model, tea.Cmd) {
	m.lastPattern = q.Pattern
	text := m.editor.Value()

	next, changed, err := search.ReplaceAll(text, q, replacement)
	if err != nil {
		return m, m.searchErrorMessage(err)
	}
	if !changed {
		return m, m.statusBar.ShowMessage("No matches")
	}

	cursor := m.editor.CursorOffset()
	m.editor.ReplaceRange(0, len(text), next)
	m.editor.SetCursorOffset(min(cursor, len(next)))
	m.doc.SetText(next)
	return m, tea.Batch(
		m.statusBar.ShowMessage("Replaced all matches"),
		m.scheduleHighlight(),
	)
}

func (m Model) searchErrorMessage(err error) tea.Cmd {
	var bad *search.ErrBadPattern
	if errors.As(err, &bad) {
		log.Warn(log.CatSearch, "Bad pattern", "pattern", bad.Pattern, "error", bad.Err)
		return m.statusBar.ShowMessage("Invalid pattern: " + bad.Pattern)
	}
	return m.statusBar.ShowMessage("Search failed: " + err.Error())
}

func (m Model) handleToolbar(msg toolbar.ClickedMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case toolbar.ActionNew:
		return m.requestAction(pendingNew)
	case toolbar.ActionOpen:
		return m.requestAction(pendingOpen)
	case toolbar.ActionSave:
		return m.doSave()
	case toolbar.ActionFind:
		return m.openFind()
	}
	return m, nil
}

func (m Model) handleAutosaveTick(msg autosaveTickMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.autosaveSeq || !m.cfg.AutosaveEnabled {
		return m, nil
	}

	m.doc.SetText(m.editor.Value())
	result := autosave.Tick(m.doc, m.scratchDir, time.Now())

	cmds := []tea.Cmd{m.scheduleAutosave()}
	switch result.Outcome {
	case autosave.Saved:
		cmds = append(cmds, m.statusBar.ShowMessage("Autosaved"))
	case autosave.Snapshotted:
		if m.hist != nil {
			if _, err := m.hist.RecordSnapshot(result.Path, "autosave", time.Now()); err != nil {
				log.Warn(log.CatHistory, "Failed to record snapshot", "error", err)
			}
		}
		cmds = append(cmds, m.statusBar.ShowMessage("Autosaved snapshot"))
	case autosave.Failed:
		log.Warn(log.CatAutosave, "Autosave failed", "path", result.Path, "error", result.Err)
		cmds = append(cmds, m.statusBar.ShowMessage("Autosave failed"))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) toggleAutosave() (tea.Model, tea.Cmd) {
	m.cfg.AutosaveEnabled = !m.cfg.AutosaveEnabled
	m.autosaveSeq++
	m.persistConfig()

	if m.cfg.AutosaveEnabled {
		return m, tea.Batch(
			m.statusBar.ShowMessage(fmt.Sprintf("Autosave on (%ds)", m.cfg.AutosaveSecs)),
			m.scheduleAutosave(),
		)
	}
	return m, m.statusBar.ShowMessage("Autosave off")
}

func (m Model) setAutosaveInterval(value string) (tea.Model, tea.Cmd) {
	secs, err := strconv.Atoi(value)
	if err != nil {
		return m, m.statusBar.ShowMessage("Interval must be a number of seconds")
	}

	m.cfg.AutosaveSecs = secs
	m.cfg = m.cfg.Normalize()
	m.autosaveSeq++
	m.persistConfig()
	m.closeOverlay()

	cmds := []tea.Cmd{
		m.statusBar.ShowMessage(fmt.Sprintf("Autosave every %ds", m.cfg.AutosaveSecs)),
	}
	if m.cfg.AutosaveEnabled {
		cmds = append(cmds, m.scheduleAutosave())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	names := config.ThemeNames()
	next := names[0]
	for i, name := range names {
		if name == m.cfg.Theme {
			next = names[(i+1)%len(names)]
			break
		}
	}

	theme, err := styles.NewTheme(styles.ThemeConfig{Preset: next})
	if err != nil {
		log.ErrorErr(log.CatUI, "Failed to build theme", err, "preset", next)
		return m, nil
	}

	m.cfg.Theme = next
	m.theme = theme
	m.editor.SetTheme(theme)
	m.statusBar.SetTheme(theme)
	m.toolBar.SetTheme(theme)
	m.persistConfig()
	return m, m.statusBar.ShowMessage("Theme: " + styles.DisplayName(next))
}

// persistConfig writes settings changes back to disk, best effort.
func (m Model) persistConfig() {
	if m.configPath == "" {
		return
	}
	if err := config.Save(m.configPath, m.cfg); err != nil {
		log.Warn(log.CatConfig, "Failed to persist settings", "error", err)
	}
}
