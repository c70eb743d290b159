package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/PieterJanSterk/second-movement/internal/gamedata"
)

// Face geometry. The watch case is a fixed-size box at the top left of the
// terminal with status lines underneath.
const (
	faceWidth  = 30
	faceHeight = 7
)

// Renderer draws frames to the screen using the embedded theme.
type Renderer struct {
	screen *Screen
	theme  gamedata.Theme
}

// NewRenderer creates a renderer for the given screen and theme.
func NewRenderer(screen *Screen, theme gamedata.Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Render draws one frame: the case, the segment displays, the indicators,
// and the status lines under the case.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	lcd := r.lcdBackground(f)
	caseStyle := tcell.StyleDefault.Foreground(r.theme.CaseColor()).Background(tcell.ColorBlack)
	digits := tcell.StyleDefault.Foreground(r.theme.DigitsColor()).Background(lcd)
	labels := tcell.StyleDefault.Foreground(r.theme.LabelsColor()).Background(lcd)

	r.drawCase(caseStyle, lcd)

	r.drawText(3, 1, "WMPUS", labels)
	r.drawText(faceWidth-5, 1, fmt.Sprintf("%2s", f.RoomText), digits)

	r.drawText(8, 3, pad2(f.Hours), digits)
	colon := ' '
	if f.Colon {
		colon = ':'
	}
	r.screen.SetContent(10, 3, colon, digits)
	r.drawText(11, 3, pad2(f.Minutes), digits)
	r.drawText(17, 3, pad2(f.Seconds), digits)

	r.drawText(3, 5, "LAP", indicatorStyle(f.Lap, digits, labels))
	r.drawText(faceWidth-7, 5, "BELL", indicatorStyle(f.Bell, digits, labels))

	status := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.drawText(2, faceHeight+1, fmt.Sprintf("arrows %d", f.Arrows), status)
	if f.Note != "" {
		r.drawText(14, faceHeight+1, "note "+f.Note, status)
	}

	help := "[l/space] cycle  [a/enter] confirm  [m] wumpus  [s] sound  [q] quit"
	if f.Busy {
		help = "..."
	}
	r.drawText(2, faceHeight+2, help, tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

// drawCase draws the watch case border and fills the LCD behind it.
func (r *Renderer) drawCase(caseStyle tcell.Style, lcd tcell.Color) {
	fill := tcell.StyleDefault.Background(lcd)
	for y := 0; y < faceHeight; y++ {
		for x := 0; x < faceWidth; x++ {
			switch {
			case y == 0 && x == 0:
				r.screen.SetContent(x, y, tcell.RuneULCorner, caseStyle)
			case y == 0 && x == faceWidth-1:
				r.screen.SetContent(x, y, tcell.RuneURCorner, caseStyle)
			case y == faceHeight-1 && x == 0:
				r.screen.SetContent(x, y, tcell.RuneLLCorner, caseStyle)
			case y == faceHeight-1 && x == faceWidth-1:
				r.screen.SetContent(x, y, tcell.RuneLRCorner, caseStyle)
			case y == 0 || y == faceHeight-1:
				r.screen.SetContent(x, y, tcell.RuneHLine, caseStyle)
			case x == 0 || x == faceWidth-1:
				r.screen.SetContent(x, y, tcell.RuneVLine, caseStyle)
			default:
				r.screen.SetContent(x, y, ' ', fill)
			}
		}
	}
}

// lcdBackground blends the LED flash into the LCD color as the flash fades.
func (r *Renderer) lcdBackground(f Frame) tcell.Color {
	switch f.LED {
	case LEDGreen:
		return gamedata.BlendHex(r.theme.LEDWin, r.theme.LCD, f.LEDPulse)
	case LEDRed:
		return gamedata.BlendHex(r.theme.LEDLose, r.theme.LCD, f.LEDPulse)
	default:
		return r.theme.LCDColor()
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, style)
		col++
	}
}

func indicatorStyle(on bool, digits, labels tcell.Style) tcell.Style {
	if on {
		return digits
	}
	return labels
}

func pad2(s string) string {
	for len(s) < 2 {
		s += " "
	}
	return s
}
