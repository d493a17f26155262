package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBuiltinRegistries(t *testing.T) {
	assert.NotPanics(t, func() { MustRegistry(LobbyCommands()) })
	assert.NotPanics(t, func() { MustRegistry(PassportCommands()) })
}

func TestResolve_CanonicalName(t *testing.T) {
	r := MustRegistry(PassportCommands())

	cmd, ok := r.Resolve("next")
	assert.True(t, ok)
	assert.Equal(t, "next", cmd.Name)
	assert.Equal(t, HandlerNext, cmd.Handler)
}

func TestResolve_SpanishAliases(t *testing.T) {
	r := MustRegistry(PassportCommands())

	cases := map[string]string{
		"siguiente": HandlerNext,
		"n":         HandlerNext,
		"anterior":  HandlerPrev,
		"p":         HandlerPrev,
		"abrir":     HandlerOpen,
		"clave":     HandlerKeyword,
		"reiniciar": HandlerRestart,
		"mapa":      HandlerMap,
		"medallas":  HandlerMedals,
		"ayuda":     HandlerHelp,
	}
	for alias, handler := range cases {
		cmd, ok := r.Resolve(alias)
		require.True(t, ok, "alias %q", alias)
		assert.Equal(t, handler, cmd.Handler, "alias %q", alias)
	}
}

func TestResolve_NotFound(t *testing.T) {
	r := MustRegistry(LobbyCommands())

	_, ok := r.Resolve("next")
	assert.False(t, ok, "navigation is not available in the lobby")
}

func TestCommands_RegistrationOrder(t *testing.T) {
	r := MustRegistry(LobbyCommands())
	var names []string
	for _, c := range r.Commands() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"new", "resume", "help", "quit"}, names)
}

func TestNewRegistry_DuplicateName(t *testing.T) {
	_, err := NewRegistry([]Command{
		{Name: "next", Handler: HandlerNext},
		{Name: "next", Handler: HandlerPrev},
	})
	assert.ErrorContains(t, err, "duplicate command name")
}

func TestNewRegistry_DuplicateAlias(t *testing.T) {
	_, err := NewRegistry([]Command{
		{Name: "next", Aliases: []string{"n"}, Handler: HandlerNext},
		{Name: "new", Aliases: []string{"n"}, Handler: HandlerNew},
	})
	assert.ErrorContains(t, err, "duplicate alias")
}

func TestMustRegistry_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustRegistry([]Command{{Name: "a", Aliases: []string{"a"}}})
	})
}

func TestPropertyAllAliasesResolveToCanonical(t *testing.T) {
	cmds := PassportCommands()
	r := MustRegistry(cmds)
	rapid.Check(t, func(t *rapid.T) {
		cmd := cmds[rapid.IntRange(0, len(cmds)-1).Draw(t, "cmd")]
		for _, alias := range cmd.Aliases {
			got, ok := r.Resolve(alias)
			if !ok || got.Name != cmd.Name {
				t.Fatalf("alias %q did not resolve to %q", alias, cmd.Name)
			}
		}
	})
}
