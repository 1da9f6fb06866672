package effects

import "github.com/lixenwraith/colormix/core"

// SparkleFrame is one frame of the safe-color banner decoration
type SparkleFrame struct {
	Glyphs string
	Color  core.RGB
}

var sparkleFrames = [4]SparkleFrame{
	{"★★★", core.RGBYellow},
	{"✦✦✦", core.RGBOrange},
	{"✧✧✧", core.RGBYellow},
	{"❋❋❋", core.RGBOrange},
}

// sparkleCycle is the number of announcement cycles per full frame loop
const sparkleCycle = 20

// Sparkle returns the frame for an announcement phase; each frame holds for five cycles
func Sparkle(phase int) SparkleFrame {
	p := phase % sparkleCycle
	if p < 0 {
		p += sparkleCycle
	}
	return sparkleFrames[p/5]
}
