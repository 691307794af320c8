package crush

import (
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/crystal-crush/internal/core"
	"github.com/vovakirdan/crystal-crush/internal/games/crush/core"
)

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.board == nil {
		g.renderOverlay(dst, "No level loaded", []string{"Press B for the menu"}, -1)
		return
	}

	g.renderHUD(dst)

	boardRect := g.boardRect(dst.Width(), dst.Height())
	minH := hudHeight + boardRect.H + footerHeight
	if dst.Width() < boardRect.W+2 || dst.Height() < minH {
		g.renderOverlay(dst, "Window too small", []string{"Resize to continue"}, -1)
		return
	}

	frame := g.playback.Current()
	board := g.board
	if frame.Board != nil {
		board = frame.Board
	}
	g.renderBoard(dst, boardRect, board, frame)
	g.renderLabels(dst, boardRect, frame)
	g.renderFooter(dst, boardRect, frame)

	switch {
	case g.fault != nil:
		g.renderOverlay(dst, "Engine fault", []string{g.fault.Error(), "Press B for the menu"}, -1)
	case g.overlay != nil:
		g.renderResult(dst)
	case g.paused:
		g.renderOverlay(dst, "Paused", []string{"P to continue, B for the menu"}, -1)
	}
}

// boardRect returns the framed board area, centered below the HUD.
func (g *Game) boardRect(screenW, screenH int) platformcore.Rect {
	n := g.board.N
	w, h := n*cellWidth+2, n+2
	x := (screenW - w) / 2
	y := hudHeight + (screenH-hudHeight-footerHeight-h)/2
	if x < 0 {
		x = 0
	}
	if y < hudHeight {
		y = hudHeight
	}
	return platformcore.NewRect(x, y, w, h)
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	st := g.engine.LevelState()

	title := fmt.Sprintf(" CRYSTAL CRUSH | Level %d: %s | Score: %d | Moves: %d",
		g.level.Number, g.level.Name, st.Score, st.MovesRemaining)
	dst.DrawTextWithColor(0, 0, title, platformcore.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)

	x := 1
	for _, goal := range objectiveLines(g.level, st) {
		c := platformcore.ColorWhite
		if goal.done {
			c = platformcore.ColorGreen
		}
		dst.DrawTextWithColor(x, 2, goal.text, c)
		x += len([]rune(goal.text)) + 3
	}
	dst.DrawHLine(0, 3, dst.Width(), '─', platformcore.ColorGray)
}

type goalLine struct {
	text string
	done bool
}

// objectiveLines lists each configured objective with its progress.
func objectiveLines(lvl core.Level, st core.LevelState) []goalLine {
	o, p := lvl.Objectives, st.Progress
	var out []goalLine
	if o.Score > 0 {
		out = append(out, goalLine{fmt.Sprintf("Score %d/%d", min(st.Score, o.Score), o.Score), st.Score >= o.Score})
	}
	for c := core.Color(0); c < core.ColorCount; c++ {
		want := o.Colors[c]
		if want <= 0 {
			continue
		}
		got := min(p.Colors[c], want)
		out = append(out, goalLine{fmt.Sprintf("%s %d/%d", c, got, want), got >= want})
	}
	if o.Coated > 0 {
		got := min(p.Coated, o.Coated)
		out = append(out, goalLine{fmt.Sprintf("Coated %d/%d", got, o.Coated), got >= o.Coated})
	}
	if o.Sealed > 0 {
		got := min(p.Sealed, o.Sealed)
		out = append(out, goalLine{fmt.Sprintf("Sealed %d/%d", got, o.Sealed), got >= o.Sealed})
	}
	return out
}

func (g *Game) renderBoard(dst *platformcore.Screen, r platformcore.Rect, board *core.Grid, frame Frame) {
	dst.DrawBox(r, platformcore.ColorGray)

	hinted := func(p core.Pos) bool {
		return g.hint != nil && g.tick < g.hintUntil && (g.hint.A == p || g.hint.B == p)
	}

	for row := 0; row < board.N; row++ {
		for col := 0; col < board.N; col++ {
			p := core.P(row, col)
			x, y := r.X+1+col*cellWidth, r.Y+1+row
			cell := board.Get(p)

			glyph := glyphFor(cell)
			if frame.Marks.Has(p) {
				glyph.Attr |= platformcore.AttrBold
				if cell.Token == nil {
					glyph = platformcore.Cell{Rune: '✶', Color: platformcore.ColorGold, Attr: platformcore.AttrBold}
				}
			}
			if hinted(p) {
				glyph.Attr |= platformcore.AttrReverse
			}
			dst.SetCell(x+1, y, glyph)

			left, right := ' ', ' '
			edge := platformcore.ColorGray
			if cell.Coated() {
				left, right = '░', '░'
				edge = platformcore.ColorCyan
			}
			if frame.Board == nil && p == g.cursor {
				left, right = '[', ']'
				edge = platformcore.ColorGold
				if g.picked {
					left, right = '<', '>'
				}
			}
			dst.SetWithColor(x, y, left, edge)
			dst.SetWithColor(x+2, y, right, edge)
		}
	}
}

// glyphFor returns the character and color of a board cell.
func glyphFor(c core.Cell) platformcore.Cell {
	if c.Sealed() {
		return platformcore.Cell{Rune: '▓', Color: platformcore.ColorGray}
	}
	t := c.Token
	if t == nil {
		return platformcore.Cell{Rune: '·', Color: platformcore.ColorDim}
	}
	out := platformcore.Cell{Rune: '●', Color: crystalColor(t.Color)}
	switch t.Special {
	case core.SpecialStripedRow:
		out.Rune = '═'
	case core.SpecialStripedCol:
		out.Rune = '║'
	case core.SpecialWrapped:
		out.Rune = '◈'
	case core.SpecialColorBomb:
		out = platformcore.Cell{Rune: '✹', Color: platformcore.ColorWhite, Attr: platformcore.AttrBold}
	}
	return out
}

func crystalColor(c core.Color) platformcore.Color {
	switch c {
	case core.ColorRed:
		return platformcore.ColorRed
	case core.ColorGreen:
		return platformcore.ColorGreen
	case core.ColorBlue:
		return platformcore.ColorBlue
	case core.ColorYellow:
		return platformcore.ColorYellow
	case core.ColorPurple:
		return platformcore.ColorPurple
	case core.ColorOrange:
		return platformcore.ColorOrange
	default:
		return platformcore.ColorDefault
	}
}

// renderLabels floats the points of the current round over their cells.
func (g *Game) renderLabels(dst *platformcore.Screen, r platformcore.Rect, frame Frame) {
	for _, lp := range frame.Labels {
		if lp.Points <= 0 {
			continue
		}
		text := fmt.Sprintf("+%d", lp.Points)
		x := r.X + 1 + lp.Pos.Col*cellWidth
		y := r.Y + 1 + lp.Pos.Row - frame.Rise
		if y <= r.Y {
			y = r.Y + 1
		}
		dst.DrawTextWithColor(x, y, text, platformcore.ColorGold)
	}
}

func (g *Game) renderFooter(dst *platformcore.Screen, r platformcore.Rect, frame Frame) {
	y := r.Bottom()

	msg := frame.Caption
	if msg == "" && g.tick < g.noticeUntil {
		msg = g.notice
	}
	if msg != "" {
		dst.DrawTextCentered(y, msg, platformcore.ColorGold)
	}

	controls := " Arrows: move | Space: pick/drop | ?: hint | U: swap back | P: pause | Q: quit"
	if g.picked {
		controls = " Arrow: swap that way | Space: drop | Esc: cancel"
	}
	if frame.Board != nil {
		controls = " Any key: skip"
	}
	dst.DrawTextWithColor(0, dst.Height()-1, controls, platformcore.ColorGray)
}

func (g *Game) renderResult(dst *platformcore.Screen) {
	st := g.engine.LevelState()

	title := "Out of moves"
	lines := []string{fmt.Sprintf("Score %d", st.Score)}
	if st.State == core.StateWon {
		title = "Level complete!"
		lines = append(lines, starString(st.Stars))
	}
	lines = append(lines, "")
	for _, it := range g.overlay {
		lines = append(lines, it.label)
	}
	g.renderOverlay(dst, title, lines, len(lines)-len(g.overlay)+g.overlayCursor)
}

func starString(n int) string {
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

// renderOverlay draws a centered box. Line active, if not -1, is drawn as
// the selected menu entry.
func (g *Game) renderOverlay(dst *platformcore.Screen, title string, lines []string, active int) {
	width := len([]rune(title))
	for _, l := range lines {
		width = max(width, len([]rune(l))+2)
	}
	box := dst.Bounds().Centered(width+4, len(lines)+4)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, platformcore.ColorWhite)
	drawCentered(dst, box, box.Y+1, title, platformcore.ColorGold)
	for i, l := range lines {
		c := platformcore.ColorWhite
		if i == active {
			l = "> " + l + " <"
			c = platformcore.ColorGold
		}
		drawCentered(dst, box, box.Y+3+i, l, c)
	}
}

func drawCentered(dst *platformcore.Screen, box platformcore.Rect, y int, text string, c platformcore.Color) {
	x := box.X + (box.W-len([]rune(text)))/2
	dst.DrawTextWithColor(x, y, text, c)
}
