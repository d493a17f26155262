// Package command provides the passport command registry, parser, and the
// built-in command sets for the Telnet frontend.
package command

// Categories for organizing commands in help output.
const (
	CategoryNavigation = "navigation"
	CategoryPassport   = "passport"
	CategorySystem     = "system"
)

// Handler identifiers dispatched by the Telnet session.
const (
	HandlerNew     = "new"
	HandlerResume  = "resume"
	HandlerNext    = "next"
	HandlerPrev    = "prev"
	HandlerPage    = "page"
	HandlerOpen    = "open"
	HandlerKeyword = "keyword"
	HandlerRestart = "restart"
	HandlerInfo    = "info"
	HandlerMap     = "map"
	HandlerMedals  = "medals"
	HandlerCode    = "code"
	HandlerHelp    = "help"
	HandlerQuit    = "quit"
)

// Command defines a visitor-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names, including the Spanish spelling.
	Aliases []string
	// Usage shows the arguments, e.g. "page <n>".
	Usage string
	// Help is the short help text shown to visitors.
	Help string
	// Category groups the command for help output.
	Category string
	// Handler selects the session action.
	Handler string
}

// LobbyCommands are available before a passport is open.
func LobbyCommands() []Command {
	return []Command{
		{Name: "new", Aliases: []string{"nuevo"}, Usage: "new", Help: "Crear un pasaporte nuevo", Category: CategoryPassport, Handler: HandlerNew},
		{Name: "resume", Aliases: []string{"continuar"}, Usage: "resume <código>", Help: "Continuar un pasaporte existente", Category: CategoryPassport, Handler: HandlerResume},
		{Name: "help", Aliases: []string{"ayuda", "?"}, Usage: "help", Help: "Mostrar esta ayuda", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"salir", "exit"}, Usage: "quit", Help: "Desconectarse", Category: CategorySystem, Handler: HandlerQuit},
	}
}

// PassportCommands are available while a passport is open.
func PassportCommands() []Command {
	return []Command{
		{Name: "next", Aliases: []string{"siguiente", "n"}, Usage: "next", Help: "Página siguiente", Category: CategoryNavigation, Handler: HandlerNext},
		{Name: "prev", Aliases: []string{"anterior", "p"}, Usage: "prev", Help: "Página anterior", Category: CategoryNavigation, Handler: HandlerPrev},
		{Name: "page", Aliases: []string{"pagina", "página"}, Usage: "page <n|mundo>", Help: "Ir a una página o a un mundo", Category: CategoryNavigation, Handler: HandlerPage},
		{Name: "open", Aliases: []string{"abrir"}, Usage: "open", Help: "Abrir el pasaporte desde la portada", Category: CategoryNavigation, Handler: HandlerOpen},
		{Name: "map", Aliases: []string{"mapa"}, Usage: "map", Help: "Ver la página de cada mundo", Category: CategoryNavigation, Handler: HandlerMap},
		{Name: "keyword", Aliases: []string{"clave", "k"}, Usage: "keyword [palabra]", Help: "Ingresar una palabra clave", Category: CategoryPassport, Handler: HandlerKeyword},
		{Name: "info", Aliases: []string{"i"}, Usage: "info [mundo]", Help: "Conocer un mundo", Category: CategoryPassport, Handler: HandlerInfo},
		{Name: "medals", Aliases: []string{"medallas"}, Usage: "medals", Help: "Ver tus medallas", Category: CategoryPassport, Handler: HandlerMedals},
		{Name: "restart", Aliases: []string{"reiniciar"}, Usage: "restart", Help: "Reiniciar el pasaporte", Category: CategoryPassport, Handler: HandlerRestart},
		{Name: "code", Aliases: []string{"codigo", "código"}, Usage: "code", Help: "Mostrar el código de tu pasaporte", Category: CategorySystem, Handler: HandlerCode},
		{Name: "help", Aliases: []string{"ayuda", "?"}, Usage: "help", Help: "Mostrar esta ayuda", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"salir", "exit"}, Usage: "quit", Help: "Desconectarse", Category: CategorySystem, Handler: HandlerQuit},
	}
}
