// Package handlers provides the Telnet passport session and its text rendering.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/passport/internal/catalog"
	"github.com/cory-johannsen/passport/internal/command"
	"github.com/cory-johannsen/passport/internal/frontend/telnet"
	"github.com/cory-johannsen/passport/internal/passport"
)

// PromptMarker ends every prompt the handler writes.
const PromptMarker = "» "

// Visitor-facing messages.
const (
	MsgUnknownCommand = "Comando desconocido. Escribe help para ver los comandos."
	MsgNoMatch        = "Palabra incorrecta o ya ingresada."
	MsgRestartAsk     = "¿Estás seguro de que quieres reiniciar el pasaporte? Se perderá todo el progreso."
	MsgRestartDone    = "Pasaporte reiniciado."
	MsgRestartAborted = "Reinicio cancelado."
	MsgInvalidCode    = "Ese código no es válido."
	MsgUnknownCode    = "No encontramos un pasaporte con ese código."
	MsgStoreFailure   = "No pudimos guardar tu progreso. Intenta de nuevo en un momento."
	MsgGoodbye        = "¡Hasta pronto!"
	MsgPageUsage      = "Uso: page <n|mundo>"
)

const welcomeBanner = telnet.ClearScreen + `
` + telnet.Bold + telnet.BrightCyan + `  ╔══════════════════════════════════════╗
  ║        PASAPORTE VOCACIONAL          ║
  ╚══════════════════════════════════════╝` + telnet.Reset + `

` + telnet.BrightYellow + `  Recorre los mundos y gana sus insignias.` + telnet.Reset + `

  Escribe ` + telnet.Green + `new` + telnet.Reset + ` para crear un pasaporte.
  Escribe ` + telnet.Green + `resume <código>` + telnet.Reset + ` para continuar el tuyo.
  Escribe ` + telnet.Green + `quit` + telnet.Reset + ` para salir.
`

// PassportHandler implements telnet.SessionHandler. Each session owns one
// passport.Controller driven by the session goroutine.
type PassportHandler struct {
	catalog *catalog.Catalog
	layout  passport.Layout
	store   passport.Store
	logger  *zap.Logger
	newID   func() string

	lobby    *command.Registry
	commands *command.Registry
}

// NewPassportHandler creates a handler serving passports from cat and store.
//
// Precondition: cat, store, and logger must be non-nil.
// Postcondition: Returns a handler that issues passport codes with uuid.NewString.
func NewPassportHandler(cat *catalog.Catalog, layout passport.Layout, store passport.Store, logger *zap.Logger) *PassportHandler {
	return &PassportHandler{
		catalog:  cat,
		layout:   layout,
		store:    store,
		logger:   logger,
		newID:    uuid.NewString,
		lobby:    command.MustRegistry(command.LobbyCommands()),
		commands: command.MustRegistry(command.PassportCommands()),
	}
}

// HandleSession implements telnet.SessionHandler. It shows the banner, opens or
// resumes a passport, and runs the passport command loop until the visitor quits.
//
// Postcondition: Returns nil on clean quit, or an error if the session ended abnormally.
func (h *PassportHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	start := time.Now()
	logger := h.logger.With(zap.String("remote_addr", conn.RemoteAddr().String()))

	if err := conn.Write([]byte(welcomeBanner)); err != nil {
		return fmt.Errorf("sending welcome: %w", err)
	}

	ctrl, err := h.lobbyLoop(ctx, conn, logger)
	if err != nil {
		return err
	}
	if ctrl != nil {
		if err := h.passportLoop(ctx, conn, ctrl, logger); err != nil {
			return err
		}
	}

	_ = conn.WriteLine(telnet.Colorize(telnet.Cyan, MsgGoodbye))
	logger.Info("visitor quit", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// lobbyLoop returns the opened controller, or nil when the visitor quits first.
func (h *PassportHandler) lobbyLoop(ctx context.Context, conn *telnet.Conn, logger *zap.Logger) (*passport.Controller, error) {
	for {
		if err := ctx.Err(); err != nil {
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "El servidor se está apagando. ¡Hasta pronto!"))
			return nil, err
		}

		line, err := conn.Prompt(telnet.Colorize(telnet.BrightWhite, "pasaporte"+PromptMarker))
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		parsed := command.Parse(line)
		if parsed.Command == "" {
			continue
		}

		cmd, ok := h.lobby.Resolve(parsed.Command)
		if !ok {
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, MsgUnknownCommand))
			continue
		}

		switch cmd.Handler {
		case command.HandlerQuit:
			return nil, nil

		case command.HandlerHelp:
			_ = conn.WriteLines(RenderHelp(h.lobby.Commands()))

		case command.HandlerNew:
			id := h.newID()
			ctrl, err := passport.New(ctx, id, h.catalog, h.layout, h.store, logger)
			if err != nil {
				logger.Error("issuing passport", zap.Error(err))
				_ = conn.WriteLine(telnet.Colorize(telnet.Red, MsgStoreFailure))
				continue
			}
			_ = conn.WriteLine(telnet.Colorf(telnet.BrightGreen, "Tu código de pasaporte es %s. Guárdalo para continuar más tarde.", id))
			return ctrl, nil

		case command.HandlerResume:
			if len(parsed.Args) != 1 {
				_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Uso: resume <código>"))
				continue
			}
			code, err := uuid.Parse(parsed.Args[0])
			if err != nil {
				_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, MsgInvalidCode))
				continue
			}
			ctrl, err := passport.Resume(ctx, code.String(), h.catalog, h.layout, h.store, logger)
			if errors.Is(err, passport.ErrUnknownPassport) {
				_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, MsgUnknownCode))
				continue
			}
			if err != nil {
				logger.Error("resuming passport", zap.Error(err))
				_ = conn.WriteLine(telnet.Colorize(telnet.Red, MsgStoreFailure))
				continue
			}
			return ctrl, nil
		}
	}
}

func (h *PassportHandler) passportLoop(ctx context.Context, conn *telnet.Conn, ctrl *passport.Controller, logger *zap.Logger) error {
	logger = logger.With(zap.String("passport_id", ctrl.ID()))
	h.showPage(conn, ctrl)

	for {
		if err := ctx.Err(); err != nil {
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "El servidor se está apagando. ¡Hasta pronto!"))
			return err
		}

		prompt := fmt.Sprintf("[%d/%d] pasaporte%s", ctrl.Page(), ctrl.TotalPages(), PromptMarker)
		line, err := conn.Prompt(telnet.Colorize(telnet.BrightWhite, prompt))
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		parsed := command.Parse(line)
		if parsed.Command == "" {
			continue
		}

		cmd, ok := h.commands.Resolve(parsed.Command)
		if !ok {
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, MsgUnknownCommand))
			continue
		}

		switch cmd.Handler {
		case command.HandlerQuit:
			return nil

		case command.HandlerNext:
			ctrl.Next()
			h.showPage(conn, ctrl)

		case command.HandlerPrev:
			ctrl.Previous()
			h.showPage(conn, ctrl)

		case command.HandlerOpen:
			ctrl.Open()
			h.showPage(conn, ctrl)

		case command.HandlerPage:
			h.handlePage(conn, ctrl, parsed.Args)

		case command.HandlerKeyword:
			if err := h.handleKeyword(ctx, conn, ctrl, parsed.RawArgs, logger); err != nil {
				return err
			}

		case command.HandlerRestart:
			if err := h.handleRestart(ctx, conn, ctrl, logger); err != nil {
				return err
			}

		case command.HandlerInfo:
			h.handleInfo(conn, ctrl, parsed.Args)

		case command.HandlerMap:
			_ = conn.WriteLines(RenderMap(ctrl.View(), h.catalog, h.layout))

		case command.HandlerMedals:
			_ = conn.WriteLines(RenderMedals(ctrl.View()))

		case command.HandlerCode:
			_ = conn.WriteLine(telnet.Colorf(telnet.BrightGreen, "Tu código de pasaporte es %s.", ctrl.ID()))

		case command.HandlerHelp:
			_ = conn.WriteLines(RenderHelp(h.commands.Commands()))
		}
	}
}

func (h *PassportHandler) showPage(conn *telnet.Conn, ctrl *passport.Controller) {
	_ = conn.WriteLines(RenderPage(ctrl.View(), h.catalog))
}

// handlePage accepts a page number or a world id.
func (h *PassportHandler) handlePage(conn *telnet.Conn, ctrl *passport.Controller, args []string) {
	if len(args) != 1 {
		_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, MsgPageUsage))
		return
	}
	if n, err := strconv.Atoi(args[0]); err == nil {
		ctrl.GoTo(n)
		h.showPage(conn, ctrl)
		return
	}

	id := catalog.NormalizeKeyword(args[0])
	if !ctrl.GoToWorld(id) {
		if suggestion, ok := h.catalog.Suggest(id); ok {
			_ = conn.WriteLine(telnet.Colorf(telnet.Yellow, "No existe el mundo %q. ¿Quisiste decir %q?", id, suggestion))
			return
		}
		_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, MsgPageUsage))
		return
	}
	h.showPage(conn, ctrl)
}

// handleKeyword returns an error only when the connection fails.
func (h *PassportHandler) handleKeyword(ctx context.Context, conn *telnet.Conn, ctrl *passport.Controller, word string, logger *zap.Logger) error {
	if word == "" {
		answer, err := conn.Prompt(telnet.Colorize(telnet.BrightWhite, "Palabra clave"+PromptMarker))
		if err != nil {
			return fmt.Errorf("reading keyword: %w", err)
		}
		word = answer
	}

	res, err := ctrl.AttemptUnlock(ctx, word)
	if err != nil {
		logger.Error("saving unlock", zap.Error(err))
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, MsgStoreFailure))
		return nil
	}
	if res.Status == passport.NoMatch {
		_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, MsgNoMatch))
		return nil
	}

	name := res.WorldID
	if w, err := h.catalog.Lookup(res.WorldID); err == nil {
		name = w.DisplayName()
	}
	_ = conn.WriteLine(telnet.Colorf(telnet.BrightGreen, "¡Insignia de %s desbloqueada!", name))
	h.showPage(conn, ctrl)
	return nil
}

// handleRestart returns an error only when the connection fails.
func (h *PassportHandler) handleRestart(ctx context.Context, conn *telnet.Conn, ctrl *passport.Controller, logger *zap.Logger) error {
	answer, err := conn.Prompt(telnet.Colorize(telnet.BrightYellow, MsgRestartAsk+" (si/no)"+PromptMarker))
	if err != nil {
		return fmt.Errorf("reading confirmation: %w", err)
	}
	if !isYes(answer) {
		_ = conn.WriteLine(MsgRestartAborted)
		return nil
	}

	if err := ctrl.Restart(ctx); err != nil {
		logger.Error("restarting passport", zap.Error(err))
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, MsgStoreFailure))
		return nil
	}
	_ = conn.WriteLine(telnet.Colorize(telnet.Cyan, MsgRestartDone))
	h.showPage(conn, ctrl)
	return nil
}

func (h *PassportHandler) handleInfo(conn *telnet.Conn, ctrl *passport.Controller, args []string) {
	var id string
	switch {
	case len(args) > 0:
		id = catalog.NormalizeKeyword(args[0])
	default:
		v := ctrl.View()
		if v.Kind != passport.PageWorld {
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Uso: info <mundo>"))
			return
		}
		id = v.WorldID
	}

	w, err := h.catalog.Lookup(id)
	if err != nil {
		if suggestion, ok := h.catalog.Suggest(id); ok {
			_ = conn.WriteLine(telnet.Colorf(telnet.Yellow, "No existe el mundo %q. ¿Quisiste decir %q?", id, suggestion))
			return
		}
		_ = conn.WriteLine(telnet.Colorf(telnet.Yellow, "No existe el mundo %q.", id))
		return
	}
	_ = conn.WriteLines(RenderWorldInfo(w))
}

func isYes(answer string) bool {
	switch catalog.NormalizeKeyword(answer) {
	case "si", "sí", "s", "yes", "y":
		return true
	default:
		return false
	}
}
