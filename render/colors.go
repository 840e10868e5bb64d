package render

import "github.com/gdamore/tcell/v2"

// RGB palette
var (
	RgbBackground  = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbWall        = tcell.NewRGBColor(86, 95, 137)   // Slate
	RgbPeg         = tcell.NewRGBColor(255, 165, 0)   // Orange target
	RgbObstacle    = tcell.NewRGBColor(101, 67, 33)   // Bark brown
	RgbGlyph       = tcell.NewRGBColor(140, 190, 255) // Bright blue while moving
	RgbGlyphAsleep = tcell.NewRGBColor(60, 100, 200)  // Dark blue while parked
	RgbZone        = tcell.NewRGBColor(0, 200, 200)   // Cyan overlay
	RgbTitle       = tcell.NewRGBColor(255, 255, 0)   // Yellow
	RgbText        = tcell.NewRGBColor(200, 200, 200) // Light gray
	RgbButtonBg    = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbButtonText  = tcell.NewRGBColor(0, 0, 0)
	RgbHUDBg       = tcell.NewRGBColor(50, 50, 50)
	RgbHUDText     = tcell.NewRGBColor(255, 255, 255)
)

// Cell glyphs per body kind
const (
	RuneWall        = '█'
	RunePeg         = '●'
	RuneObstacle    = '▓'
	RuneGlyph       = '#'
	RuneGlyphAsleep = '+'
	RuneZone        = '·'
)

var (
	styleBase   = tcell.StyleDefault.Background(RgbBackground)
	styleTitle  = styleBase.Foreground(RgbTitle).Bold(true)
	styleText   = styleBase.Foreground(RgbText)
	styleButton = tcell.StyleDefault.Background(RgbButtonBg).Foreground(RgbButtonText)
	styleHUD    = tcell.StyleDefault.Background(RgbHUDBg).Foreground(RgbHUDText)
	styleZone   = styleBase.Foreground(RgbZone)
)
