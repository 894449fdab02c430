// Package cards is the floating card layout: project cards arranged on a
// circle around a section's center that drift idly, can be dragged with
// absolute tracking, and can be zoomed into focus by the host.
package cards

import (
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"

	"portfolio/internal/geom"
	"portfolio/internal/pointer"
	"portfolio/internal/projects"
	"portfolio/internal/schedule"
)

// Locator finds the on-screen rectangle of a page section.
type Locator interface {
	SectionRect(id string) (geom.Rect, bool)
}

type Options struct {
	// Section hosts the cards; positions are relative to its center.
	Section   string
	Config    Config
	Scheduler schedule.Scheduler
	Bus       *pointer.Bus
	Locator   Locator
	// OnClick receives the record of a card tapped without dragging.
	OnClick func(projects.Project)
	// OnDragEnd reports where a dragged card started and where it was left.
	OnDragEnd func(index int, from, to geom.Point)
	Logger    *zap.Logger
}

// Layout owns the cards of one section. It is driven entirely from the
// scheduler and bus callbacks and is not safe for concurrent use.
type Layout struct {
	section   string
	cfg       Config
	sched     schedule.Scheduler
	bus       *pointer.Bus
	locator   Locator
	onClick   func(projects.Project)
	onDragEnd func(int, geom.Point, geom.Point)
	log       *zap.Logger

	cards     []*Card
	positions []geom.Point

	mounted    bool
	visible    bool
	opacity    float64
	opacityVel float64
	spring     harmonica.Spring

	pressed    *Card
	pressPoint geom.Point

	anim      schedule.Handle
	scope     schedule.Scope
	dragScope schedule.Scope
}

func New(opts Options) *Layout {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cfg := opts.Config
	return &Layout{
		section:   opts.Section,
		cfg:       cfg,
		sched:     opts.Scheduler,
		bus:       opts.Bus,
		locator:   opts.Locator,
		onClick:   opts.OnClick,
		onDragEnd: opts.OnDragEnd,
		log:       log.Named("cards"),
		spring:    harmonica.NewSpring(harmonica.FPS(max(cfg.FPS, 1)), cfg.SpringFrequency, cfg.SpringDamping),
	}
}

// Mount lays out records, subscribes to press events and starts the
// entrance timer. The cards stay invisible until the entrance delay passes.
func (l *Layout) Mount(records []projects.Project) {
	if l.mounted {
		return
	}
	l.mounted = true
	l.visible = false
	l.opacity, l.opacityVel = 0, 0

	l.scope.Add(l.bus.Subscribe(pointer.Down, l.press).Unsubscribe)
	l.scope.Add(l.bus.Subscribe(pointer.TouchStart, l.press).Unsubscribe)
	l.scope.Add(l.dragScope.Release)
	l.scope.Add(l.stopCards)
	l.scope.Add(func() { l.anim.Cancel() })
	l.scope.Hold(l.sched.After(l.cfg.EntranceDelay, func(time.Time) {
		l.visible = true
		l.log.Debug("cards shown", zap.Int("cards", len(l.cards)))
		l.kick()
	}))

	l.SetProjects(records)
}

// Unmount cancels every timer and listener the layout holds.
func (l *Layout) Unmount() {
	if !l.mounted {
		return
	}
	l.scope.Release()
	l.pressed = nil
	for _, c := range l.cards {
		c.dragging = false
		c.dragged = false
	}
	l.mounted = false
	l.visible = false
	l.log.Debug("unmounted")
}

func (l *Layout) stopCards() {
	for _, c := range l.cards {
		c.drift.Cancel()
		c.unsuppress.Cancel()
	}
}

// SetProjects replaces the card set. Cards are matched to records by id; a
// card is put back on the circle when it is new or its index or the total
// changed.
func (l *Layout) SetProjects(records []projects.Project) {
	old := make(map[string]*Card, len(l.cards))
	for _, c := range l.cards {
		old[c.Project.ID] = c
	}
	total := len(records)
	if len(l.positions) != total {
		l.positions = make([]geom.Point, total)
	}

	next := make([]*Card, 0, total)
	for i, p := range records {
		c, ok := old[p.ID]
		if ok {
			delete(old, p.ID)
		} else {
			c = &Card{scale: 1}
		}
		c.Project = p
		if !ok || c.index != i || c.total != total {
			if c.dragging {
				l.endDrag()
			}
			c.index, c.total = i, total
			c.pos = CirclePosition(i, total, l.cfg.Radius)
		}
		next = append(next, c)
	}
	for _, c := range old {
		if c == l.pressed {
			l.endDrag()
		}
		c.drift.Cancel()
		c.unsuppress.Cancel()
	}
	l.cards = next

	for _, c := range l.cards {
		l.report(c)
		l.startDrift(c)
	}
}

func (l *Layout) report(c *Card) {
	if c.index < len(l.positions) {
		l.positions[c.index] = c.pos
	}
}

func (l *Layout) setPos(c *Card, p geom.Point) {
	if c.pos == p {
		return
	}
	c.pos = p
	l.report(c)
}

func (l *Layout) startDrift(c *Card) {
	if !l.mounted || c.dragging || c.active || c.drift.Active() {
		return
	}
	c.drift = l.sched.Every(l.cfg.DriftInterval, func(now time.Time) { l.drift(c, now) })
}

// drift nudges a card by a slow wobble keyed on wall-clock time and index.
func (l *Layout) drift(c *Card, now time.Time) {
	if c.dragging || c.active {
		return
	}
	t := float64(now.UnixMilli())
	i := float64(c.index)
	l.setPos(c, geom.Point{
		X: c.pos.X + math.Cos(t/l.cfg.DriftPeriodX+i)*l.cfg.DriftStep,
		Y: c.pos.Y + math.Sin(t/l.cfg.DriftPeriodY+i)*l.cfg.DriftStep,
	})
}

func (l *Layout) center() (geom.Point, bool) {
	r, ok := l.locator.SectionRect(l.section)
	if !ok {
		return geom.Point{}, false
	}
	return r.Center(), true
}

// Bounds is the on-screen rectangle of card i at its current scale. An active
// card sits on the section center whatever its simulated position.
func (l *Layout) Bounds(i int) (geom.Rect, bool) {
	if i < 0 || i >= len(l.cards) {
		return geom.Rect{}, false
	}
	center, ok := l.center()
	if !ok {
		return geom.Rect{}, false
	}
	c := l.cards[i]
	if !c.active {
		center = center.Add(c.pos)
	}
	return geom.RectAt(center, l.cfg.Width*c.scale, l.cfg.Height*c.scale), true
}

// Stack returns card indexes from bottom to top.
func (l *Layout) Stack() []int {
	order := make([]int, len(l.cards))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return l.cards[order[a]].z() < l.cards[order[b]].z()
	})
	return order
}

// HitTest returns the topmost card under p.
func (l *Layout) HitTest(p geom.Point) (int, bool) {
	order := l.Stack()
	for k := len(order) - 1; k >= 0; k-- {
		if r, ok := l.Bounds(order[k]); ok && r.Contains(p) {
			return order[k], true
		}
	}
	return -1, false
}

func (l *Layout) press(ev pointer.Event) {
	if l.pressed != nil {
		return
	}
	p, ok := ev.Position()
	if !ok {
		return
	}
	i, ok := l.HitTest(p)
	if !ok {
		return
	}
	c := l.cards[i]
	l.pressed = c
	l.pressPoint = p

	l.dragScope.Add(l.bus.Subscribe(pointer.Move, l.move).Unsubscribe)
	l.dragScope.Add(l.bus.Subscribe(pointer.TouchMove, l.move).Unsubscribe)
	l.dragScope.Add(l.bus.Subscribe(pointer.Up, l.release).Unsubscribe)
	l.dragScope.Add(l.bus.Subscribe(pointer.TouchEnd, l.release).Unsubscribe)

	if c.active {
		return
	}
	r, _ := l.Bounds(i)
	c.offset = r.Center().Sub(p)
	c.from = c.pos
	c.dragging = true
	c.dragged = false
	c.unsuppress.Cancel()
	c.drift.Cancel()
	l.kick()
}

// move tracks the input exactly: the card center lands on the input point
// plus the offset captured at press time.
func (l *Layout) move(ev pointer.Event) {
	c := l.pressed
	if c == nil || !c.dragging {
		return
	}
	p, ok := ev.Position()
	if !ok {
		return
	}
	if !c.dragged && p.Dist(l.pressPoint) < l.cfg.DragThreshold {
		return
	}
	center, ok := l.center()
	if !ok {
		return
	}
	if !c.dragged {
		c.dragged = true
		l.log.Debug("drag start", zap.Int("card", c.index), zap.String("slug", c.Project.Slug))
	}
	l.setPos(c, p.Sub(center).Add(c.offset))
}

func (l *Layout) release(ev pointer.Event) {
	c := l.pressed
	if c == nil {
		return
	}
	p, ok := ev.Position()
	if !ok {
		p = l.pressPoint
	}
	wasDragged := c.dragged
	l.endDrag()

	if wasDragged {
		l.log.Debug("drag end", zap.Int("card", c.index),
			zap.Float64("x", c.pos.X), zap.Float64("y", c.pos.Y))
		if l.onDragEnd != nil {
			l.onDragEnd(c.index, c.from, c.pos)
		}
		return
	}
	if i, hit := l.HitTest(p); hit && l.cards[i] == c {
		l.Click(i)
	}
}

// endDrag drops the press and, after a real drag, keeps the click
// suppressed for the configured delay.
func (l *Layout) endDrag() {
	c := l.pressed
	l.pressed = nil
	l.dragScope.Release()
	if c == nil {
		return
	}
	c.dragging = false
	if c.dragged {
		c.unsuppress.Cancel()
		c.unsuppress = l.sched.After(l.cfg.ClickSuppression, func(time.Time) { c.dragged = false })
	}
	l.startDrift(c)
	l.kick()
}

// Click activates card i unless it was just dragged. It reports whether the
// click callback ran.
func (l *Layout) Click(i int) bool {
	if i < 0 || i >= len(l.cards) {
		return false
	}
	c := l.cards[i]
	if c.dragged {
		l.log.Debug("click suppressed", zap.Int("card", i))
		return false
	}
	l.log.Debug("card activated", zap.Int("card", i), zap.String("slug", c.Project.Slug))
	if l.onClick != nil {
		l.onClick(c.Project)
	}
	return true
}

// SetActive marks card i as focused or not. Exclusivity is up to the caller.
func (l *Layout) SetActive(i int, active bool) {
	if i < 0 || i >= len(l.cards) {
		return
	}
	c := l.cards[i]
	if c.active == active {
		return
	}
	c.active = active
	if active {
		c.drift.Cancel()
	} else {
		l.startDrift(c)
	}
	l.kick()
}

// Place moves card i to p, as a drag would.
func (l *Layout) Place(i int, p geom.Point) {
	if i < 0 || i >= len(l.cards) {
		return
	}
	l.setPos(l.cards[i], p)
}

func (l *Layout) kick() {
	if !l.mounted || l.anim.Active() {
		return
	}
	l.anim = l.sched.RequestFrame(l.animate)
}

const settleEpsilon = 1e-3

func (l *Layout) animate(time.Time) {
	settled := true
	step := func(x, v, target float64) (float64, float64) {
		x, v = l.spring.Update(x, v, target)
		if math.Abs(x-target) < settleEpsilon && math.Abs(v) < settleEpsilon {
			return target, 0
		}
		settled = false
		return x, v
	}

	target := 0.0
	if l.visible {
		target = 1
	}
	l.opacity, l.opacityVel = step(l.opacity, l.opacityVel, target)
	for _, c := range l.cards {
		c.scale, c.scaleVel = step(c.scale, c.scaleVel, c.targetScale(l.cfg))
	}
	if !settled {
		l.anim = l.sched.RequestFrame(l.animate)
	}
}

func (l *Layout) Cards() []*Card { return l.cards }

func (l *Layout) Card(i int) (*Card, bool) {
	if i < 0 || i >= len(l.cards) {
		return nil, false
	}
	return l.cards[i], true
}

// Positions is the last reported position of every card, by index.
func (l *Layout) Positions() []geom.Point {
	return append([]geom.Point(nil), l.positions...)
}

func (l *Layout) Visible() bool { return l.visible }

// Opacity is the animated entrance opacity in [0, 1] once settled.
func (l *Layout) Opacity() float64 { return l.opacity }

func (l *Layout) Mounted() bool { return l.mounted }

// Animating reports whether a spring is still moving.
func (l *Layout) Animating() bool { return l.anim.Active() }

// Dragging returns the index of the card being dragged, if any.
func (l *Layout) Dragging() (int, bool) {
	if l.pressed == nil || !l.pressed.dragging {
		return -1, false
	}
	return l.pressed.index, true
}

// Config returns the layout's tunables.
func (l *Layout) Config() Config { return l.cfg }
