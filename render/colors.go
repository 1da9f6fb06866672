package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/notify"
)

// UI colors
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbFloor      = tcell.NewRGBColor(40, 42, 54)    // empty cell
	RgbFloorDot   = tcell.NewRGBColor(70, 72, 90)    // empty cell marker
	RgbStatusText = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusBg   = tcell.NewRGBColor(45, 50, 80)
	RgbPaused     = tcell.NewRGBColor(255, 200, 0)
	RgbHint       = tcell.NewRGBColor(150, 150, 150)
	RgbPlayerFg   = tcell.NewRGBColor(0, 0, 0)
	RgbPlayerBg   = tcell.NewRGBColor(255, 255, 255)
	RgbFallen     = tcell.NewRGBColor(220, 60, 60)
	RgbCorner     = tcell.NewRGBColor(0, 255, 255)

	RgbLogInfo        = tcell.NewRGBColor(210, 210, 210)
	RgbLogHeader      = tcell.NewRGBColor(0, 220, 255)
	RgbLogSuccess     = tcell.NewRGBColor(80, 220, 80)
	RgbLogWarning     = tcell.NewRGBColor(255, 200, 0)
	RgbLogCountdown   = tcell.NewRGBColor(255, 60, 60)
	RgbLogCelebration = tcell.NewRGBColor(255, 100, 255)
)

// Tcell converts a core color to a terminal color
func Tcell(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// logStyle picks the foreground for a message
func logStyle(base tcell.Style, msg notify.Message) tcell.Style {
	if msg.Color != (core.RGB{}) {
		return base.Foreground(Tcell(msg.Color)).Bold(msg.Style != notify.StyleInfo)
	}
	switch msg.Style {
	case notify.StyleHeader:
		return base.Foreground(RgbLogHeader).Bold(true)
	case notify.StyleSuccess:
		return base.Foreground(RgbLogSuccess)
	case notify.StyleWarning:
		return base.Foreground(RgbLogWarning)
	case notify.StyleCountdown:
		return base.Foreground(RgbLogCountdown).Bold(true)
	case notify.StyleCelebration:
		return base.Foreground(RgbLogCelebration).Bold(true)
	default:
		return base.Foreground(RgbLogInfo)
	}
}
