package encounter

import (
	"time"

	"go.uber.org/zap"

	"github.com/nightwarden/darkhunt/internal/world"
)

// logPresenter stands in for rendering and audio: it logs every cue.
type logPresenter struct {
	log *zap.Logger
}

func (p logPresenter) SetVisible(v bool)    { p.log.Debug("visible", zap.Bool("on", v)) }
func (p logPresenter) SetCollidable(c bool) { p.log.Debug("collidable", zap.Bool("on", c)) }
func (p logPresenter) StartFade(d time.Duration) {
	p.log.Debug("fade out", zap.Duration("over", d))
}
func (p logPresenter) PlayEffect(id string, at world.Point) {
	p.log.Debug("effect", zap.String("id", id), zap.Float64("x", at.X), zap.Float64("z", at.Z))
}
func (p logPresenter) PlaySound(id string) { p.log.Debug("sound", zap.String("clip", id)) }
