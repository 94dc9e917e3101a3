package app

// highlightTickMsg fires when the highlight debounce timer expires. Seq
// guards against stale timers: only the most recent edit's timer re-lexes.
type highlightTickMsg struct {
	seq int
}

// autosaveTickMsg fires one autosave interval. Seq invalidates ticks that
// were scheduled before autosave was toggled or the interval changed, so
// at most one timer chain is live.
type autosaveTickMsg struct {
	seq int
}

// fileChangedMsg reports that the open file changed on disk.
type fileChangedMsg struct{}

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayFind
	overlayPrompt
	overlayConfirm
	overlayHelp
)

// pendingAction is the destructive action parked behind the unsaved-changes
// gate.
type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingNew
	pendingOpen
	pendingQuit
	pendingReload
)

func (p pendingAction) question() string {
	switch p {
	case pendingNew:
		return "Start a new file?"
	case pendingOpen:
		return "Open another file?"
	case pendingReload:
		return "Reload from disk?"
	default:
		return "Quit without saving?"
	}
}
