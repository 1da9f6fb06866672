package effects

import (
	"errors"

	"github.com/lixenwraith/colormix/core"
)

// ErrTargetGone is returned by presenters when the addressed player no longer exists
var ErrTargetGone = errors.New("presentation target gone")

// Presenter performs visual effects on a host
// Errors are reported back but never change game flow
type Presenter interface {
	// ShowSafeColor pushes the animated safe-color banner to one player
	ShowSafeColor(p core.Player, safe core.Color, frame SparkleFrame) error

	// SpawnFirework launches one celebratory unit at pos in world
	SpawnFirework(world string, pos core.Vec3, color core.RGB) error
}

// SoundPlayer triggers sound cues; fire-and-forget
type SoundPlayer interface {
	Play(s core.SoundType)
}

// MultiPresenter fans out to several presenters, joining their errors
type MultiPresenter []Presenter

func (m MultiPresenter) ShowSafeColor(p core.Player, safe core.Color, frame SparkleFrame) error {
	var errs []error
	for _, pr := range m {
		if err := pr.ShowSafeColor(p, safe, frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiPresenter) SpawnFirework(world string, pos core.Vec3, color core.RGB) error {
	var errs []error
	for _, pr := range m {
		if err := pr.SpawnFirework(world, pos, color); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
