package fortress

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tip is a transient user-facing message. It stays fully visible for most
// of its lifetime and fades out at the end.
type Tip struct {
	Text string

	fade  *gween.Tween
	alpha float64
	done  bool
}

// tipFadeShare is the fraction of a tip's lifetime spent fading out.
const tipFadeShare = 0.25

// newTip shows text for d.
func newTip(text string, d time.Duration) *Tip {
	secs := float32(d.Seconds())
	if secs <= 0 {
		return &Tip{Text: text, done: true}
	}
	hold := secs * (1 - tipFadeShare)
	// Holds at 1 until hold, then eases to 0 over the remainder.
	return &Tip{
		Text:  text,
		fade:  gween.New(1+hold/(secs-hold), 0, secs, ease.Linear),
		alpha: 1,
	}
}

// Update advances the tip by dt seconds.
func (t *Tip) Update(dt float32) {
	if t == nil || t.done {
		return
	}
	v, finished := t.fade.Update(dt)
	t.alpha = clamp(float64(v), 0, 1)
	t.done = finished
}

// Alpha returns the current opacity in [0, 1].
func (t *Tip) Alpha() float64 {
	if t == nil || t.done {
		return 0
	}
	return t.alpha
}

// Visible reports whether the tip should still be drawn.
func (t *Tip) Visible() bool { return t != nil && !t.done }
