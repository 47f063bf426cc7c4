package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/pixcatch/internal/record"
)

const (
	CookieChar  = '●'
	CupcakeChar = '▲'
	HeartChar   = '♥'
	EmptyHeart  = '♡'
)

var (
	fieldStyle   = tcell.StyleDefault.Background(tcell.ColorBlack)
	borderStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	basketStyle  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGoldenrod).Bold(true)
	statusStyle  = tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	overlayStyle = tcell.StyleDefault.Background(tcell.ColorDarkGray)
)

// Renderer draws snapshots onto a Screen
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer with the given screen
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one frame for snap
func (r *Renderer) Render(snap record.Snapshot) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()

	l := NewLayout(screenW, screenH, snap.FieldWidth, snap.FieldHeight)
	if l.TooSmall() {
		r.renderTooSmall(screenH)
		r.screen.Show()
		return
	}

	r.renderHUD(snap, screenW)
	r.renderField(snap, l)

	switch {
	case snap.Status == record.StatusIdle:
		r.renderIdle(snap, screenH)
	case snap.Status == record.StatusGameOver:
		r.renderGameOver(snap, screenH)
	case snap.Paused:
		r.renderOverlay(screenH, []overlayLine{
			{"PAUSED", overlayStyle.Foreground(tcell.ColorYellow).Bold(true)},
			{"Press P to resume", overlayStyle.Foreground(tcell.ColorGreen)},
		})
	}

	hint := Hint(snap)
	r.screen.DrawCentered(screenH-1, hint, tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

// Hint returns the controls line for the snapshot's state
func Hint(snap record.Snapshot) string {
	switch {
	case snap.Status == record.StatusIdle:
		return "ENTER or click to start | q to quit"
	case snap.Status == record.StatusGameOver:
		return "ENTER or click to play again | r for menu | q to quit"
	case snap.Paused:
		return "p to resume | q to quit"
	}
	return "mouse or arrows to move | p to pause | q to quit"
}

// Lives renders remaining lives as full and empty hearts
func Lives(lives, maxLives int) string {
	lives = min(max(lives, 0), maxLives)
	return strings.Repeat(string(HeartChar), lives) + strings.Repeat(string(EmptyHeart), maxLives-lives)
}

func (r *Renderer) renderHUD(snap record.Snapshot, screenW int) {
	for x := 0; x < screenW; x++ {
		r.screen.SetCell(x, 0, statusStyle, ' ')
	}

	r.screen.DrawText(1, 0, fmt.Sprintf("Score: %d", snap.Score), statusStyle.Bold(true))

	best := fmt.Sprintf("Best: %d", snap.HighScore)
	r.screen.DrawCentered(0, best, statusStyle.Foreground(tcell.ColorYellow))

	lives := Lives(snap.Lives, snap.MaxLives)
	r.screen.DrawText(screenW-1-utf8.RuneCountInString(lives), 0, lives, statusStyle.Foreground(tcell.ColorRed))
}

func (r *Renderer) renderField(snap record.Snapshot, l Layout) {
	r.screen.DrawBox(l.Left-1, l.Top-1, l.Cols+2, l.Rows+2, borderStyle)
	r.screen.FillRect(l.Left, l.Top, l.Cols, l.Rows, fieldStyle, ' ')

	for _, it := range snap.Items {
		row, ok := l.CellY(it.Y + it.Size/2)
		if !ok {
			continue
		}
		glyph, color := itemLook(it.Flavor)
		r.screen.SetCell(l.CellX(it.X+it.Size/2), row, fieldStyle.Foreground(color), glyph)
	}

	r.renderBasket(snap, l)
}

// renderBasket draws the catcher as an open-topped basket resting on the floor
func (r *Renderer) renderBasket(snap record.Snapshot, l Layout) {
	c := snap.Catcher
	left := l.CellX(c.X)
	right := l.CellX(c.X + c.Width)
	bottom := l.Top + l.Rows - 1
	top, _ := l.CellY(snap.FieldHeight - c.Height)
	top = min(max(top, l.Top), bottom)

	for y := top; y <= bottom; y++ {
		r.screen.SetCell(left, y, basketStyle, '\\')
		r.screen.SetCell(right, y, basketStyle, '/')
	}
	for x := left + 1; x < right; x++ {
		r.screen.SetCell(x, bottom, basketStyle, '_')
	}
}

func itemLook(f record.Flavor) (rune, tcell.Color) {
	switch f {
	case record.FlavorCupcake:
		return CupcakeChar, tcell.ColorHotPink
	case record.FlavorHeart:
		return HeartChar, tcell.ColorRed
	}
	return CookieChar, tcell.ColorSandyBrown
}

func (r *Renderer) renderIdle(snap record.Snapshot, screenH int) {
	lines := []overlayLine{
		{"PIXCATCH", overlayStyle.Foreground(tcell.ColorTeal).Bold(true)},
		{"Catch the falling treats!", overlayStyle.Foreground(tcell.ColorWhite)},
		{fmt.Sprintf("%c Rare = 3 points", HeartChar), overlayStyle.Foreground(tcell.ColorRed)},
	}
	if snap.HighScore > 0 {
		lines = append(lines, overlayLine{fmt.Sprintf("Best: %d", snap.HighScore), overlayStyle.Foreground(tcell.ColorYellow)})
	}
	lines = append(lines, overlayLine{"Click or press ENTER to start", overlayStyle.Foreground(tcell.ColorGreen)})
	r.renderOverlay(screenH, lines)
}

func (r *Renderer) renderGameOver(snap record.Snapshot, screenH int) {
	lines := []overlayLine{
		{"GAME OVER", overlayStyle.Foreground(tcell.ColorYellow).Bold(true)},
		{fmt.Sprintf("Score: %d", snap.Score), overlayStyle.Foreground(tcell.ColorWhite)},
	}
	if snap.NewHighScore {
		lines = append(lines, overlayLine{"New high score!", overlayStyle.Foreground(tcell.ColorGreen).Bold(true)})
	} else {
		lines = append(lines, overlayLine{fmt.Sprintf("Best: %d", snap.HighScore), overlayStyle.Foreground(tcell.ColorYellow)})
	}
	lines = append(lines, overlayLine{"ENTER to play again", overlayStyle.Foreground(tcell.ColorGreen)})
	r.renderOverlay(screenH, lines)
}

type overlayLine struct {
	text  string
	style tcell.Style
}

// renderOverlay draws a centred message box over the field
func (r *Renderer) renderOverlay(screenH int, lines []overlayLine) {
	screenW, _ := r.screen.Size()

	width := 0
	for _, ln := range lines {
		width = max(width, utf8.RuneCountInString(ln.text))
	}
	boxW := min(width+6, screenW)
	boxH := len(lines) + 4
	boxX := (screenW - boxW) / 2
	boxY := (screenH - boxH) / 2

	r.screen.FillRect(boxX+1, boxY+1, boxW-2, boxH-2, overlayStyle, ' ')
	r.screen.DrawBox(boxX, boxY, boxW, boxH, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	for i, ln := range lines {
		r.screen.DrawCentered(boxY+2+i, ln.text, ln.style)
	}
}

func (r *Renderer) renderTooSmall(screenH int) {
	r.screen.DrawCentered(screenH/2-1, "Terminal too small", tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	r.screen.DrawCentered(screenH/2+1, "Enlarge the window or press q", tcell.StyleDefault.Foreground(tcell.ColorGray))
}
