package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cory-johannsen/passport/internal/catalog"
	"github.com/cory-johannsen/passport/internal/passport"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateLoading:
		return pageStyle.Render(dimStyle.Render("Cargando pasaporte...")) + "\n"
	case stateFailed:
		body := errorStyle.Render(MsgLoadFailure) + "\n\n" +
			textStyle.Render(m.loadErr.Error()) + "\n\n" +
			dimStyle.Render("Presiona q para salir.")
		return dialogStyle.BorderForeground(colorRed).Render(body) + "\n"
	}

	v := m.ctrl.View()
	sections := []string{pageStyle.Render(m.renderPage(v))}
	if d := m.renderDialog(v); d != "" {
		sections = append(sections, dialogStyle.Render(d))
	}
	sections = append(sections, m.renderFooter(v))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) renderPage(v passport.View) string {
	switch v.Kind {
	case passport.PageCover:
		return strings.Join([]string{
			titleStyle.Render("PASAPORTE VOCACIONAL"),
			mottoStyle.Render("Descubre tu mundo"),
			"",
			textStyle.Render(fmt.Sprintf("Medallas: %d / %d", v.Unlocked, v.Total)),
			"",
			dimStyle.Render("Presiona enter para abrir tu pasaporte."),
		}, "\n")

	case passport.PageGuide:
		lines := []string{
			titleStyle.Render("Cómo usar tu pasaporte"),
			"",
			textStyle.Render("Visita cada mundo y encuentra su palabra clave."),
			textStyle.Render("Presiona k para escribirla y ganar su insignia."),
			"",
		}
		for _, b := range v.Badges {
			lines = append(lines, b.Icon+" "+b.Title)
		}
		return strings.Join(lines, "\n")

	case passport.PageWorld:
		w, err := m.ctrl.Catalog().Lookup(v.WorldID)
		if err != nil {
			return warnStyle.Render("Este mundo no está disponible.")
		}
		b, _ := v.Badge(w.ID)
		status := lockedStyle.Render(b.Status)
		if b.Unlocked {
			status = unlockedStyle.Render(b.Status)
		}
		lines := []string{
			titleStyle.Render(w.Title),
			mottoStyle.Render(w.Motto),
			"",
			b.Icon + " " + status,
		}
		for _, g := range w.Guests {
			lines = append(lines, textStyle.Render(g.Name)+dimStyle.Render(guestDetail(g)))
		}
		lines = append(lines, "", dimStyle.Render("Presiona i para conocer este mundo."))
		return strings.Join(lines, "\n")

	case passport.PageMedals:
		return renderMedals(v)
	}
	return ""
}

func guestDetail(g catalog.Guest) string {
	var parts []string
	for _, s := range []string{g.Role, g.Room} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " · " + strings.Join(parts, " · ")
}

func renderMedals(v passport.View) string {
	lines := []string{titleStyle.Render("Tus medallas"), ""}
	for _, b := range v.Badges {
		style := lockedStyle
		if b.Unlocked {
			style = unlockedStyle
		}
		lines = append(lines, fmt.Sprintf("%s %-28s %s", b.Icon, b.Title, style.Render(b.Status)))
	}
	lines = append(lines, "", textStyle.Render(fmt.Sprintf("%d de %d medallas obtenidas", v.Unlocked, v.Total)))
	return strings.Join(lines, "\n")
}

func (m Model) renderDialog(v passport.View) string {
	switch m.dialog {
	case dialogKeyword:
		lines := []string{titleStyle.Render("Palabra clave"), "", "> " + m.input}
		if !m.unlocked {
			lines[2] += "█"
		}
		lines = append(lines, "", dimStyle.Render("enter para enviar · esc para cerrar"))
		return strings.Join(lines, "\n")

	case dialogInfo:
		w, err := m.ctrl.Catalog().Lookup(v.WorldID)
		if err != nil {
			return warnStyle.Render("Este mundo no está disponible.")
		}
		lines := []string{titleStyle.Render(w.Title), "", textStyle.Render(w.Description), "", mottoStyle.Render("Puedes estar desde:")}
		for _, a := range w.Areas {
			lines = append(lines, "• "+a)
		}
		return strings.Join(lines, "\n")

	case dialogMap:
		layout := m.ctrl.Layout()
		lines := []string{titleStyle.Render("Mapa del pasaporte"), ""}
		for n := 1; n <= layout.Len(); n++ {
			page, _ := layout.Page(n)
			marker := "  "
			if n == v.Page {
				marker = "➤ "
			}
			lines = append(lines, fmt.Sprintf("%s%d  %s", marker, n, m.pageLabel(page, v)))
		}
		return strings.Join(lines, "\n")

	case dialogHelp:
		return strings.Join([]string{
			titleStyle.Render("Ayuda"),
			"",
			"←/h  página anterior      →/l  página siguiente",
			"enter  abrir el pasaporte  1-9  ir a una página",
			"k  palabra clave           i  conocer el mundo",
			"m  mapa                    r  reiniciar",
			"?  ayuda                   q  salir",
		}, "\n")

	case dialogConfirmRestart:
		return warnStyle.Render(MsgRestartAsk) + "\n\n" + dimStyle.Render("y/s para confirmar · cualquier otra tecla cancela")
	}
	return ""
}

func (m Model) pageLabel(page passport.Page, v passport.View) string {
	switch page.Kind {
	case passport.PageCover:
		return "Portada"
	case passport.PageGuide:
		return "Guía"
	case passport.PageMedals:
		return "Medallas"
	case passport.PageWorld:
		if b, ok := v.Badge(page.WorldID); ok {
			return b.Icon + " " + b.Title
		}
		return page.WorldID
	}
	return page.Kind.String()
}

func (m Model) renderFooter(v passport.View) string {
	var parts []string
	if v.NavVisible {
		prev, next := "◀", "▶"
		if !v.PrevEnabled {
			prev = dimStyle.Render(prev)
		}
		if !v.NextEnabled {
			next = dimStyle.Render(next)
		}
		parts = append(parts, prev+" "+v.Indicator+" "+next)
	}
	if m.status != "" {
		style := warnStyle
		if m.statusOK {
			style = successStyle
		}
		parts = append(parts, style.Render(m.status))
	}
	parts = append(parts, "? ayuda · q salir")
	return footerStyle.Render(strings.Join(parts, "   "))
}
