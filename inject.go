package fortress

// InjectPress queues a pointer press at (x, y). Injected events are drained
// at the start of the next Update, in order, one per frame.
func (g *Game) InjectPress(x, y float64) {
	g.injectQueue = append(g.injectQueue, PointerDown(x, y))
}

// InjectMove queues a pointer move to (x, y). Use it between InjectPress and
// InjectRelease to simulate a drag.
func (g *Game) InjectMove(x, y float64) {
	g.injectQueue = append(g.injectQueue, PointerMove(x, y))
}

// InjectRelease queues a pointer release at (x, y).
func (g *Game) InjectRelease(x, y float64) {
	g.injectQueue = append(g.injectQueue, PointerUp(x, y))
}

// InjectKey queues a key press.
func (g *Game) InjectKey(k Key) {
	g.injectQueue = append(g.injectQueue, KeyPress(k))
}

// InjectClick is a convenience that queues a press followed by a release
// at the same point. Consumes two frames.
func (g *Game) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). Minimum frames is 2 (press + release).
func (g *Game) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	g.InjectRelease(toX, toY)
}

// Pending returns the number of queued injected events.
func (g *Game) Pending() int { return len(g.injectQueue) }

// popInjected removes and returns the oldest injected event.
func (g *Game) popInjected() (InputEvent, bool) {
	if len(g.injectQueue) == 0 {
		return InputEvent{}, false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]
	return evt, true
}
