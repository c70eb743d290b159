package gamedata

import "github.com/gdamore/tcell/v2"

// Theme holds the watch face palette, loaded from theme.json. Fields are
// hex color strings; the accessors turn them into tcell colors with a
// sensible fallback so a broken theme degrades instead of crashing.
type Theme struct {
	Case    string `json:"case"`    // Watch case around the LCD
	LCD     string `json:"lcd"`     // LCD background
	Digits  string `json:"digits"`  // Segment digits and text
	Labels  string `json:"labels"`  // Dimmed labels and inactive indicators
	LEDWin  string `json:"ledWin"`  // LED flash on a won hunt
	LEDLose string `json:"ledLose"` // LED flash on a lost hunt
}

// LoadTheme loads the embedded theme.json.
func LoadTheme() (Theme, error) {
	return Load[Theme]("theme.json")
}

// MustLoadTheme loads the theme, panicking on error.
func MustLoadTheme() Theme {
	theme, err := LoadTheme()
	if err != nil {
		panic(err)
	}
	return theme
}

// CaseColor returns the watch case color.
func (t Theme) CaseColor() tcell.Color {
	return colorOr(t.Case, tcell.ColorBlack)
}

// LCDColor returns the LCD background color.
func (t Theme) LCDColor() tcell.Color {
	return colorOr(t.LCD, tcell.ColorDarkOliveGreen)
}

// DigitsColor returns the segment text color.
func (t Theme) DigitsColor() tcell.Color {
	return colorOr(t.Digits, tcell.ColorBlack)
}

// LabelsColor returns the dimmed label color.
func (t Theme) LabelsColor() tcell.Color {
	return colorOr(t.Labels, tcell.ColorGray)
}

// colorOr parses hex, falling back when the theme value is broken.
func colorOr(hex string, fallback tcell.Color) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		return fallback
	}
	return color
}
