package handlers

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/passport/internal/catalog"
	"github.com/cory-johannsen/passport/internal/command"
	"github.com/cory-johannsen/passport/internal/frontend/telnet"
	"github.com/cory-johannsen/passport/internal/passport"
)

// pageWidth is the width of the rule drawn around each page.
const pageWidth = 60

// RenderPage formats the current page of a View as colored Telnet lines.
//
// Precondition: cat must be the catalog the View was rendered from.
// Postcondition: Returns at least one line; the navigation bar is included only when the View shows it.
func RenderPage(v passport.View, cat *catalog.Catalog) []string {
	lines := []string{telnet.Colorize(telnet.Dim, strings.Repeat("─", pageWidth))}

	switch v.Kind {
	case passport.PageCover:
		lines = append(lines, renderCover(v)...)
	case passport.PageGuide:
		lines = append(lines, renderGuide(v)...)
	case passport.PageWorld:
		lines = append(lines, renderWorldPage(v, cat)...)
	case passport.PageMedals:
		lines = append(lines, RenderMedals(v)...)
	}

	lines = append(lines, telnet.Colorize(telnet.Dim, strings.Repeat("─", pageWidth)))
	if v.NavVisible {
		lines = append(lines, renderNav(v))
	}
	return lines
}

func renderCover(v passport.View) []string {
	return []string{
		"",
		telnet.Colorize(telnet.Bold+telnet.BrightCyan, "          PASAPORTE VOCACIONAL"),
		telnet.Colorize(telnet.BrightYellow, "          Descubre tu mundo"),
		"",
		fmt.Sprintf("  Medallas: %d / %d", v.Unlocked, v.Total),
		"",
		"  Escribe " + telnet.Colorize(telnet.Green, "open") + " para abrir tu pasaporte.",
		"",
	}
}

func renderGuide(v passport.View) []string {
	lines := []string{
		telnet.Colorize(telnet.BrightYellow, "Cómo usar tu pasaporte"),
		"",
		"  Visita cada mundo y encuentra su palabra clave.",
		"  Escríbela con " + telnet.Colorize(telnet.Green, "keyword <palabra>") + " para ganar su insignia.",
		"",
	}
	for _, b := range v.Badges {
		lines = append(lines, fmt.Sprintf("  %s %s", b.Icon, b.Title))
	}
	return lines
}

func renderWorldPage(v passport.View, cat *catalog.Catalog) []string {
	w, err := cat.Lookup(v.WorldID)
	if err != nil {
		return []string{telnet.Colorize(telnet.Yellow, "Este mundo no está disponible.")}
	}
	b, _ := v.Badge(w.ID)

	statusColor := telnet.BrightBlack
	if b.Unlocked {
		statusColor = telnet.BrightGreen
	}

	lines := []string{
		telnet.Colorize(telnet.Bold+telnet.BrightYellow, w.Title),
		telnet.Colorize(telnet.Italic, w.Motto),
		"",
		fmt.Sprintf("  %s %s", b.Icon, telnet.Colorize(statusColor, b.Status)),
	}
	if len(w.Guests) > 0 {
		lines = append(lines, "", telnet.Colorize(telnet.Cyan, "Invitados:"))
		for _, g := range w.Guests {
			line := "  " + g.Name
			if g.Role != "" {
				line += telnet.Colorize(telnet.Dim, " · "+g.Role)
			}
			if g.Room != "" {
				line += telnet.Colorize(telnet.Dim, " · "+g.Room)
			}
			lines = append(lines, line)
		}
	}
	lines = append(lines, "", "  Escribe "+telnet.Colorize(telnet.Green, "info")+" para conocer este mundo.")
	return lines
}

// RenderMedals formats the medal summary for every world in the layout.
func RenderMedals(v passport.View) []string {
	lines := []string{telnet.Colorize(telnet.BrightYellow, "Tus medallas"), ""}
	for _, b := range v.Badges {
		lines = append(lines, fmt.Sprintf("  %s %s %s",
			b.Icon, telnet.PadRight(b.Title, 28), telnet.Colorize(telnet.Dim, b.Status)))
	}
	lines = append(lines, "", fmt.Sprintf("  %d de %d medallas obtenidas", v.Unlocked, v.Total))
	return lines
}

func renderNav(v passport.View) string {
	prev := telnet.Colorize(telnet.BrightBlack, "◀ anterior")
	if v.PrevEnabled {
		prev = telnet.Colorize(telnet.BrightCyan, "◀ anterior")
	}
	next := telnet.Colorize(telnet.BrightBlack, "siguiente ▶")
	if v.NextEnabled {
		next = telnet.Colorize(telnet.BrightCyan, "siguiente ▶")
	}
	return fmt.Sprintf("%s    %s    %s", prev, telnet.Colorize(telnet.BrightWhite, v.Indicator), next)
}

// RenderWorldInfo formats the world-detail dialog.
func RenderWorldInfo(w *catalog.World) []string {
	lines := []string{
		telnet.Colorize(telnet.Bold+telnet.BrightYellow, w.Title),
		"",
		w.Description,
		"",
		telnet.Colorize(telnet.Cyan, "Puedes estar desde:"),
	}
	for _, area := range w.Areas {
		lines = append(lines, "  • "+area)
	}
	return lines
}

// RenderMap lists every page of the layout with its title.
func RenderMap(v passport.View, cat *catalog.Catalog, layout passport.Layout) []string {
	lines := []string{telnet.Colorize(telnet.BrightYellow, "Mapa del pasaporte"), ""}
	for n := 1; n <= layout.Len(); n++ {
		page, _ := layout.Page(n)
		label := pageLabel(page, v, cat)
		marker := "  "
		if n == v.Page {
			marker = telnet.Colorize(telnet.BrightGreen, "➤ ")
		}
		lines = append(lines, fmt.Sprintf("%s%2d  %s", marker, n, label))
	}
	return lines
}

func pageLabel(page passport.Page, v passport.View, cat *catalog.Catalog) string {
	switch page.Kind {
	case passport.PageCover:
		return "Portada"
	case passport.PageGuide:
		return "Guía"
	case passport.PageMedals:
		return "Medallas"
	case passport.PageWorld:
		w, err := cat.Lookup(page.WorldID)
		if err != nil {
			return page.WorldID
		}
		b, _ := v.Badge(w.ID)
		return b.Icon + " " + w.Title
	default:
		return page.Kind.String()
	}
}

// RenderHelp lists commands grouped by category.
func RenderHelp(cmds []*command.Command) []string {
	categories := []struct {
		key   string
		title string
	}{
		{command.CategoryNavigation, "Navegación"},
		{command.CategoryPassport, "Pasaporte"},
		{command.CategorySystem, "Sistema"},
	}

	var lines []string
	for _, cat := range categories {
		var section []string
		for _, c := range cmds {
			if c.Category != cat.key {
				continue
			}
			usage := c.Usage
			if len(c.Aliases) > 0 {
				usage += " (" + strings.Join(c.Aliases, ", ") + ")"
			}
			section = append(section, fmt.Sprintf("  %s %s",
				telnet.Colorize(telnet.Green, telnet.PadRight(usage, 34)), c.Help))
		}
		if len(section) == 0 {
			continue
		}
		lines = append(lines, telnet.Colorize(telnet.BrightYellow, cat.title+":"))
		lines = append(lines, section...)
	}
	return lines
}
