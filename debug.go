package fortress

// frameStats holds per-frame simulation metrics.
// Only logged when debug mode is on.
type frameStats struct {
	subSteps    int
	contacts    int
	corrections int
	bodies      int
}

// debugLog writes the frame's stats at debug level.
func (g *Game) debugLog(stats frameStats) {
	if !g.debug {
		return
	}
	g.log.Debug().
		Uint64("frame", g.frame).
		Stringer("phase", g.match.Phase).
		Int("substeps", stats.subSteps).
		Int("contacts", stats.contacts).
		Int("corrections", stats.corrections).
		Int("bodies", stats.bodies).
		Msg("frame")
	for _, f := range g.match.Fortresses {
		g.debugCheckFortress(f)
	}
}

// debugMaxPieces is the fortress size above which a warning is logged; the
// kind limits keep real fortresses far below it.
const debugMaxPieces = 64

// debugCheckFortress warns when a fortress has grown past debugMaxPieces or
// holds pieces whose bodies left the world outside a freeze. Those are
// pruned at the next turn hand-off.
func (g *Game) debugCheckFortress(f *Fortress) {
	if !g.debug || f == nil {
		return
	}
	if f.Len() > debugMaxPieces {
		g.log.Warn().Int("player", f.Owner).Int("pieces", f.Len()).Msg("fortress unusually large")
	}
	if g.match.frozen && f.Owner == 1 {
		return
	}
	detached := 0
	for _, p := range f.pieces {
		if !p.body.Attached() {
			detached++
		}
	}
	if detached > 0 {
		g.log.Debug().Int("player", f.Owner).Int("detached", detached).Msg("pieces without bodies count as fallen")
	}
}
