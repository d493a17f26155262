// Package tui is the local terminal passport, built on bubbletea.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cory-johannsen/passport/internal/passport"
)

// UnlockNoticeDuration is how long the keyword dialog stays open after a success.
const UnlockNoticeDuration = 2 * time.Second

// Visitor-facing messages.
const (
	MsgNoMatch        = "Palabra incorrecta o ya ingresada."
	MsgRestartAsk     = "¿Estás seguro de que quieres reiniciar el pasaporte? Se perderá todo el progreso."
	MsgRestartDone    = "Pasaporte reiniciado."
	MsgRestartAborted = "Reinicio cancelado."
	MsgStoreFailure   = "No pudimos guardar tu progreso. Intenta de nuevo."
	MsgLoadFailure    = "No se pudo cargar el pasaporte."
)

// LoadFunc fetches the catalog and opens the local passport. It runs off the
// event loop.
type LoadFunc func(ctx context.Context) (*passport.Controller, error)

type appState int

const (
	stateLoading appState = iota
	stateReady
	stateFailed
)

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogKeyword
	dialogInfo
	dialogMap
	dialogHelp
	dialogConfirmRestart
)

type loadedMsg struct{ ctrl *passport.Controller }

type loadFailedMsg struct{ err error }

// closeDialogMsg closes the dialog opened as seq, if it is still open.
type closeDialogMsg struct{ seq int }

// Model is the bubbletea model for one local passport.
type Model struct {
	ctx    context.Context
	load   LoadFunc
	logger *zap.Logger

	state   appState
	ctrl    *passport.Controller
	loadErr error

	dialog    dialogKind
	dialogSeq int
	input     string
	unlocked  bool
	status    string
	statusOK  bool
	quitting  bool
}

// New creates a Model that calls load from Init.
//
// Precondition: ctx, load, and logger must be non-nil.
func New(ctx context.Context, load LoadFunc, logger *zap.Logger) Model {
	return Model{ctx: ctx, load: load, logger: logger}
}

// Init starts the asynchronous load.
func (m Model) Init() tea.Cmd {
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		ctrl, err := load(ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return loadedMsg{ctrl: ctrl}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.state = stateReady
		m.ctrl = msg.ctrl
		return m, nil

	case loadFailedMsg:
		m.state = stateFailed
		m.loadErr = msg.err
		m.logger.Error("loading passport", zap.Error(msg.err))
		return m, nil

	case closeDialogMsg:
		if msg.seq == m.dialogSeq && m.dialog == dialogKeyword {
			m.closeDialog()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if m.state != stateReady {
		if msg.String() == "q" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.dialog {
	case dialogKeyword:
		return m.handleKeywordKey(msg)
	case dialogConfirmRestart:
		return m.handleConfirmKey(msg)
	case dialogInfo, dialogMap, dialogHelp:
		switch msg.String() {
		case "esc", "enter", "q":
			m.closeDialog()
		}
		return m, nil
	}

	key := msg.String()
	m.status = ""
	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "left", "h":
		m.ctrl.Previous()
	case "right", "l":
		m.ctrl.Next()
	case "enter":
		if m.ctrl.Page() == passport.CoverPage {
			m.ctrl.Open()
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.ctrl.GoTo(int(key[0] - '0'))
	case "k":
		m.openDialog(dialogKeyword)
	case "i":
		if m.ctrl.View().Kind == passport.PageWorld {
			m.openDialog(dialogInfo)
		}
	case "m":
		m.openDialog(dialogMap)
	case "?":
		m.openDialog(dialogHelp)
	case "r":
		m.openDialog(dialogConfirmRestart)
	}
	return m, nil
}

func (m Model) handleKeywordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.closeDialog()
		return m, nil
	}
	if m.unlocked {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.submitKeyword()
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m Model) submitKeyword() (tea.Model, tea.Cmd) {
	res, err := m.ctrl.AttemptUnlock(m.ctx, m.input)
	if err != nil {
		m.logger.Error("saving unlock", zap.Error(err))
		m.setStatus(MsgStoreFailure, false)
		return m, nil
	}
	if res.Status == passport.NoMatch {
		m.input = ""
		m.setStatus(MsgNoMatch, false)
		return m, nil
	}

	name := res.WorldID
	if w, err := m.ctrl.Catalog().Lookup(res.WorldID); err == nil {
		name = w.DisplayName()
	}
	m.unlocked = true
	m.setStatus("¡Insignia de "+name+" desbloqueada!", true)

	seq := m.dialogSeq
	return m, tea.Tick(UnlockNoticeDuration, func(time.Time) tea.Msg {
		return closeDialogMsg{seq: seq}
	})
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.closeDialog()
	switch msg.String() {
	case "y", "s":
		if err := m.ctrl.Restart(m.ctx); err != nil {
			m.logger.Error("restarting passport", zap.Error(err))
			m.setStatus(MsgStoreFailure, false)
			return m, nil
		}
		m.setStatus(MsgRestartDone, true)
	default:
		m.setStatus(MsgRestartAborted, false)
	}
	return m, nil
}

func (m *Model) openDialog(kind dialogKind) {
	m.dialog = kind
	m.dialogSeq++
	m.input = ""
	m.unlocked = false
	m.status = ""
}

func (m *Model) closeDialog() {
	m.dialog = dialogNone
	m.input = ""
	m.unlocked = false
}

func (m *Model) setStatus(text string, ok bool) {
	m.status = text
	m.statusOK = ok
}
