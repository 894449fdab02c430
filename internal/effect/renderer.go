package effect

import (
	"math"
	"time"

	"go.uber.org/zap"

	"portfolio/internal/geom"
	"portfolio/internal/pointer"
	"portfolio/internal/schedule"
	"portfolio/internal/trail"
)

// State is the visibility state of the effect.
type State int

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// SafetyCheckInterval re-runs the visibility check in case input was missed.
const SafetyCheckInterval = time.Second

type Options struct {
	Section   string
	Config    trail.Config
	Scheduler schedule.Scheduler
	Bus       *pointer.Bus
	Anchor    pointer.Reader
	Locator   SectionLocator
	Rand      trail.Rand
	Logger    *zap.Logger
}

// Renderer draws the trail field while the pointer is over the gated section.
type Renderer struct {
	section string
	cfg     trail.Config
	sched   schedule.Scheduler
	bus     *pointer.Bus
	anchor  pointer.Reader
	locator SectionLocator
	rng     trail.Rand
	log     *zap.Logger

	surface Surface
	field   *trail.Field
	hue     trail.Oscillator
	stroke  trail.Stroke
	state   State

	frame  schedule.Handle
	scope  schedule.Scope
	frames uint64
	resets int
}

func New(opts Options) *Renderer {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rng := opts.Rand
	if rng == nil {
		rng = trail.NewRand(0)
	}
	return &Renderer{
		section: opts.Section,
		cfg:     opts.Config,
		sched:   opts.Scheduler,
		bus:     opts.Bus,
		anchor:  opts.Anchor,
		locator: opts.Locator,
		rng:     rng,
		log:     log.Named("trails"),
	}
}

// Mount attaches the surface, installs every listener and the safety timer,
// and runs the first resize and visibility check. A nil surface leaves the
// renderer unmounted.
func (r *Renderer) Mount(surface Surface) {
	if surface == nil || r.surface != nil {
		return
	}
	r.surface = surface
	r.field = trail.NewField(r.cfg, r.rng)
	r.hue = trail.NewOscillator(r.cfg.Hue, r.rng)
	r.state = Inactive
	surface.SetVisible(false)

	for _, kind := range []pointer.Kind{pointer.Move, pointer.TouchStart, pointer.TouchMove, pointer.Scroll} {
		r.scope.Add(r.bus.Subscribe(kind, func(pointer.Event) { r.CheckVisibility() }).Unsubscribe)
	}
	r.scope.Add(r.bus.Subscribe(pointer.Resize, func(pointer.Event) { r.resize() }).Unsubscribe)
	r.scope.Add(r.bus.Subscribe(pointer.Focus, func(pointer.Event) { r.ForceActivate() }).Unsubscribe)
	for _, kind := range []pointer.Kind{pointer.SectionEnter, pointer.SectionOver, pointer.SectionClick} {
		r.scope.Add(r.bus.Subscribe(kind, r.onSection).Unsubscribe)
	}
	r.scope.Hold(r.sched.Every(SafetyCheckInterval, func(time.Time) { r.CheckVisibility() }))
	r.scope.Add(func() { r.frame.Cancel() })

	r.log.Debug("mounted", zap.String("section", r.section), zap.Int("trails", r.cfg.Trails))
	r.resize()
}

// Unmount releases every listener and pending callback and drops the surface.
func (r *Renderer) Unmount() {
	if r.surface == nil {
		return
	}
	r.scope.Release()
	r.surface.SetVisible(false)
	r.surface = nil
	r.state = Inactive
	r.log.Debug("unmounted", zap.Uint64("frames", r.frames))
}

func (r *Renderer) onSection(ev pointer.Event) {
	if ev.Section != r.section {
		return
	}
	r.ForceActivate()
}

func (r *Renderer) resize() {
	if r.surface == nil {
		return
	}
	w, h := r.locator.Viewport()
	r.surface.Resize(int(math.Ceil(w)), int(math.Ceil(h)))
	r.CheckVisibility()
}

// CheckVisibility evaluates the section and pointer bounds and moves the
// state machine accordingly.
func (r *Renderer) CheckVisibility() {
	if r.surface == nil {
		return
	}
	rect, ok := r.locator.SectionRect(r.section)
	if !ok {
		return
	}
	_, vh := r.locator.Viewport()

	visible := rect.Top < vh && rect.Bottom > 0
	p := r.anchor.Point()
	inside := r.anchor.Known() &&
		p.X >= rect.Left && p.X <= rect.Right &&
		p.Y >= math.Max(0, rect.Top) && p.Y <= math.Min(vh, rect.Bottom)

	if visible && inside {
		r.activate(r.state == Inactive)
		return
	}
	r.deactivate()
}

// ForceActivate shows the surface unconditionally, resetting the trails only
// when coming from Inactive, then re-runs the normal check.
func (r *Renderer) ForceActivate() {
	if r.surface == nil {
		return
	}
	r.activate(r.state == Inactive)
	r.CheckVisibility()
}

func (r *Renderer) activate(reset bool) {
	if reset {
		r.field.Reset(r.anchor.Point())
		r.resets++
		r.log.Debug("activated", zap.Float64("x", r.anchor.Point().X), zap.Float64("y", r.anchor.Point().Y))
	}
	r.state = Active
	r.surface.SetVisible(true)
	if !r.frame.Active() {
		r.frame = r.sched.RequestFrame(r.render)
	}
}

func (r *Renderer) deactivate() {
	if r.state == Active {
		r.log.Debug("deactivated")
	}
	r.state = Inactive
	r.surface.SetVisible(false)
	r.frame.Cancel()
}

func (r *Renderer) render(time.Time) {
	if r.surface == nil || r.state != Active {
		return
	}
	s := r.surface
	s.SetComposite(SourceOver)
	s.Clear()
	s.SetComposite(Lighter)
	r.stroke = trail.StrokeFor(r.hue.Update(), r.cfg.Alpha)
	s.SetStroke(r.stroke, r.cfg.LineWidth)

	anchor := r.anchor.Point()
	trails := r.field.Trails()
	for i := range trails {
		trails[i].Update(anchor, r.cfg.Dampening, r.cfg.Tension)
		s.StrokePath(trails[i].Path())
	}
	r.frames++
	r.frame = r.sched.RequestFrame(r.render)
}

func (r *Renderer) State() State { return r.state }

// Running reports whether a frame callback is scheduled.
func (r *Renderer) Running() bool { return r.frame.Active() }

func (r *Renderer) Mounted() bool { return r.surface != nil }

func (r *Renderer) Frames() uint64 { return r.frames }

// Resets counts how many times the field was rebuilt on entry.
func (r *Renderer) Resets() int { return r.resets }

func (r *Renderer) Stroke() trail.Stroke { return r.stroke }

// Field is the live simulation; nil before the first Mount.
func (r *Renderer) Field() *trail.Field { return r.field }

// Anchor is the point the trail heads chase.
func (r *Renderer) Anchor() geom.Point { return r.anchor.Point() }
