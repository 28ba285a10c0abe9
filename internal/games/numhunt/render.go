package numhunt

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/numhunt/internal/core"
	"github.com/vovakirdan/numhunt/internal/narration"
	"github.com/vovakirdan/numhunt/internal/round"
)

const (
	minWidth  = 40
	minHeight = 14

	// mapExtent is the half-width in metres of the top-down scene map.
	mapExtent = 4.5

	narrationRows = 3
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minWidth || dst.Height() < minHeight {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorRed)
		return
	}

	g.renderHUD(dst)

	mapRect := core.NewRect(0, 2, dst.Width(), dst.Height()-4-narrationRows-2)
	g.renderMap(dst, mapRect)
	g.renderNarration(dst, core.NewRect(0, mapRect.Bottom(), dst.Width(), narrationRows+2))
	g.renderFooter(dst)

	switch {
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case g.machine.State() == round.StateNotStarted:
		g.renderOverlay(dst, Title, "Listen for the number, then touch it", "Enter to start  ·  L to switch language")
	case g.machine.State() == round.StateFinished:
		g.renderOverlay(dst, "All numbers found!",
			fmt.Sprintf("Score %d  ·  Misses %d", g.session.Score(), g.session.Mistakes()),
			"Press R to play again")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s | %s | Round %d/%d | Score %d | Misses %d | %s",
		Title, g.scene.Title(), g.session.Round(), len(g.labels),
		g.session.Score(), g.session.Mistakes(), g.machine.Language().Name())
	dst.DrawText(0, 0, runewidth.Truncate(hud, dst.Width(), "…"))

	for x := range dst.Width() {
		dst.SetColor(x, 1, '─', core.ColorGray)
	}
}

// renderMap draws a top-down view of the scene: surfaces, placed numbers and
// the viewer. Forward (+Z) points up.
func (g *Game) renderMap(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorGray)
	inner := core.NewRect(r.X+1, r.Y+1, r.W-2, r.H-2)

	project := func(p core.Vec3) (int, int) {
		fx := (p.X + mapExtent) / (2 * mapExtent)
		fz := (mapExtent - p.Z) / (2 * mapExtent)
		x := inner.X + int(math.Round(fx*float64(inner.W-1)))
		y := inner.Y + int(math.Round(fz*float64(inner.H-1)))
		return core.Clamp(x, inner.X, inner.Right()-1), core.Clamp(y, inner.Y, inner.Bottom()-1)
	}

	for _, a := range g.scene.Discover(g.sceneClock) {
		x, y := project(a.Position)
		dst.SetColor(x, y, '·', core.ColorGray)
	}

	for _, rec := range g.store.Records() {
		x, y := project(rec.Position)
		color := core.ColorYellow
		if rec.Collected {
			color = core.ColorGreen
		}
		dst.DrawTextColor(x, y, string(rec.Label), color)
	}

	x, y := project(g.ViewerPosition())
	dst.SetColor(x, y, '@', core.ColorCyan)
}

// renderNarration draws the prompt text and the feedback line in a box.
func (g *Game) renderNarration(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorBlue)
	width := r.W - 4
	prompt, feedback := g.Narration()

	if !g.main.Idle() {
		label := " " + g.main.Phase() + " "
		dst.DrawTextColor(r.Right()-runewidth.StringWidth(label)-2, r.Y, label, core.ColorGray)
	}

	lines := strings.Split(runewidth.Wrap(prompt, width), "\n")
	if len(lines) > narrationRows-1 {
		lines = lines[len(lines)-(narrationRows-1):]
	}
	for i, line := range lines {
		dst.DrawText(r.X+2, r.Y+1+i, line)
	}
	if feedback != "" {
		dst.DrawTextColor(r.X+2, r.Y+narrationRows, runewidth.Truncate(feedback, width, "…"), core.ColorMagenta)
	}
}

// renderFooter draws the last audio cue, any flash message and the key help.
func (g *Game) renderFooter(dst *core.Screen) {
	y := dst.Height() - 2
	if cue, ok := g.LastCue(); ok {
		dst.DrawTextColor(1, y, "♪ "+cueName(cue), core.ColorCyan)
	}
	if g.flash != "" {
		dst.DrawTextColor(dst.Width()-runewidth.StringWidth(g.flash)-1, y, g.flash, core.ColorRed)
	}

	help := "1-9,0 touch  L language  P pause  B back  Q quit"
	if g.CanTouch() {
		help = "▶ " + help
	}
	dst.DrawTextColor(1, dst.Height()-1, runewidth.Truncate(help, dst.Width()-2, "…"), core.ColorGray)
}

// renderOverlay draws a centered box with one or more lines.
func (g *Game) renderOverlay(dst *core.Screen, lines ...string) {
	maxW := 0
	for _, l := range lines {
		maxW = max(maxW, runewidth.StringWidth(l))
	}
	boxW := min(maxW+6, dst.Width())
	boxH := len(lines)*2 + 1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorWhite)
	for i, l := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorYellow
		}
		dst.DrawTextCentered(box.Y+1+i*2, l, color)
	}
}

// cueName formats a cue for the HUD, e.g. "number #7 (en)".
func cueName(c narration.Cue) string {
	return fmt.Sprintf("%s #%d (%s)", c.Bank, c.Index+1, c.Language)
}
