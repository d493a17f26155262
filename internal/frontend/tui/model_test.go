package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/passport/internal/catalog"
	"github.com/cory-johannsen/passport/internal/passport"
	"github.com/cory-johannsen/passport/internal/testutil"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return out, cmd
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = apply(t, m, keyMsg(k))
	}
	return m
}

func loadController(t *testing.T) LoadFunc {
	return func(ctx context.Context) (*passport.Controller, error) {
		cat := testutil.TwoWorldCatalog(t)
		return passport.New(ctx, "progresoPasaporte", cat, passport.DefaultLayout(cat), passport.NewMemoryStore(), zaptest.NewLogger(t))
	}
}

func readyModel(t *testing.T) Model {
	t.Helper()
	m := New(context.Background(), loadController(t), zaptest.NewLogger(t))
	m, _ = apply(t, m, m.Init()())
	require.Equal(t, stateReady, m.state)
	return m
}

func TestLoading_IgnoresWorldKeys(t *testing.T) {
	m := New(context.Background(), loadController(t), zaptest.NewLogger(t))

	m = press(t, m, "right", "k", "3")
	assert.Equal(t, stateLoading, m.state)
	assert.Equal(t, dialogNone, m.dialog)
	assert.Contains(t, m.View(), "Cargando")

	_, cmd := apply(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestLoadFailure_ShowsBlockingNotice(t *testing.T) {
	load := func(context.Context) (*passport.Controller, error) {
		return nil, fmt.Errorf("%w: connection refused", catalog.ErrLoadFailure)
	}
	m := New(context.Background(), load, zaptest.NewLogger(t))
	m, _ = apply(t, m, m.Init()())

	require.Equal(t, stateFailed, m.state)
	assert.True(t, errors.Is(m.loadErr, catalog.ErrLoadFailure))

	m = press(t, m, "k", "enter", "right")
	assert.Equal(t, dialogNone, m.dialog)
	assert.Contains(t, m.View(), MsgLoadFailure)
	assert.Contains(t, m.View(), "connection refused")

	_, cmd := apply(t, m, keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNavigation(t *testing.T) {
	m := readyModel(t)
	assert.Contains(t, m.View(), "PASAPORTE VOCACIONAL")

	m = press(t, m, "left")
	assert.Equal(t, 1, m.ctrl.Page())

	m = press(t, m, "enter")
	assert.Equal(t, 2, m.ctrl.Page())

	m = press(t, m, "enter")
	assert.Equal(t, 2, m.ctrl.Page(), "enter only opens from the cover")

	m = press(t, m, "l", "l", "right", "right")
	assert.Equal(t, 5, m.ctrl.Page())

	m = press(t, m, "3")
	assert.Equal(t, 3, m.ctrl.Page())
	assert.Contains(t, m.View(), "Mundo Ejecutivo")

	m = press(t, m, "9")
	assert.Equal(t, 3, m.ctrl.Page())

	m = press(t, m, "h")
	assert.Equal(t, 2, m.ctrl.Page())
}

func TestKeywordDialog_Unlock(t *testing.T) {
	m := readyModel(t)

	m = press(t, m, "k")
	require.Equal(t, dialogKeyword, m.dialog)

	m = press(t, m, "L", "I", "D", "E", "R", "A", "Z", "G", "O", "x", "backspace")
	assert.Equal(t, "LIDERAZGO", m.input)

	m, cmd := apply(t, m, keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.True(t, m.unlocked)
	assert.True(t, m.ctrl.IsUnlocked("ejecutivo"))
	assert.Equal(t, "¡Insignia de Ejecutivo desbloqueada!", m.status)

	m = press(t, m, "a")
	assert.Equal(t, "LIDERAZGO", m.input, "input is frozen after a success")

	m, _ = apply(t, m, closeDialogMsg{seq: m.dialogSeq})
	assert.Equal(t, dialogNone, m.dialog)
	assert.Equal(t, 1, m.ctrl.UnlockedCount())
}

func TestKeywordDialog_StaleCloseIgnored(t *testing.T) {
	m := readyModel(t)
	m = press(t, m, "k", "esc", "k")
	require.Equal(t, dialogKeyword, m.dialog)

	m, _ = apply(t, m, closeDialogMsg{seq: m.dialogSeq - 1})
	assert.Equal(t, dialogKeyword, m.dialog)
}

func TestKeywordDialog_NoMatch(t *testing.T) {
	m := readyModel(t)
	m = press(t, m, "k", "n", "o", "enter")

	assert.Equal(t, dialogKeyword, m.dialog)
	assert.Equal(t, MsgNoMatch, m.status)
	assert.Empty(t, m.input)
	assert.Equal(t, 0, m.ctrl.UnlockedCount())

	m = press(t, m, "esc")
	assert.Equal(t, dialogNone, m.dialog)
}

func TestInfoDialog_OnlyOnWorldPages(t *testing.T) {
	m := readyModel(t)

	m = press(t, m, "i")
	assert.Equal(t, dialogNone, m.dialog)

	m = press(t, m, "4", "i")
	require.Equal(t, dialogInfo, m.dialog)
	assert.Contains(t, m.View(), "Puedes estar desde:")
	assert.Contains(t, m.View(), "Voluntariado")

	m = press(t, m, "q")
	assert.Equal(t, dialogNone, m.dialog, "q closes the dialog without quitting")
	assert.False(t, m.quitting)
}

func TestMapAndHelpDialogs(t *testing.T) {
	m := readyModel(t)

	m = press(t, m, "m")
	require.Equal(t, dialogMap, m.dialog)
	assert.Contains(t, m.View(), "Mapa del pasaporte")

	m = press(t, m, "enter", "?")
	require.Equal(t, dialogHelp, m.dialog)
	assert.Contains(t, m.View(), "palabra clave")
}

func TestRestart_RequiresConfirmation(t *testing.T) {
	m := readyModel(t)
	m = press(t, m, "k", "l", "i", "d", "e", "r", "a", "z", "g", "o", "enter", "esc")
	require.Equal(t, 1, m.ctrl.UnlockedCount())
	m = press(t, m, "3")

	m = press(t, m, "r")
	require.Equal(t, dialogConfirmRestart, m.dialog)
	assert.Contains(t, m.View(), "¿Estás seguro")

	m = press(t, m, "n")
	assert.Equal(t, MsgRestartAborted, m.status)
	assert.Equal(t, 1, m.ctrl.UnlockedCount())
	assert.Equal(t, 3, m.ctrl.Page())

	m = press(t, m, "r", "y")
	assert.Equal(t, MsgRestartDone, m.status)
	assert.Equal(t, 0, m.ctrl.UnlockedCount())
	assert.Equal(t, 1, m.ctrl.Page())
}
