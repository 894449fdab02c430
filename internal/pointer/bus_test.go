package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio/internal/geom"
)

func TestBus_DispatchOrderAndUnsubscribe(t *testing.T) {
	bus := NewBus()
	var got []string
	a := bus.Subscribe(Move, func(Event) { got = append(got, "a") })
	bus.Subscribe(Move, func(Event) { got = append(got, "b") })
	bus.Subscribe(Scroll, func(Event) { got = append(got, "scroll") })

	bus.Dispatch(Event{Kind: Move})
	assert.Equal(t, []string{"a", "b"}, got)

	a.Unsubscribe()
	a.Unsubscribe()
	got = nil
	bus.Dispatch(Event{Kind: Move})
	assert.Equal(t, []string{"b"}, got)
	assert.Equal(t, 2, bus.Listeners())
	assert.Equal(t, 1, bus.ListenersFor(Move))
}

func TestBus_UnsubscribeDuringDispatchSkipsLaterHandler(t *testing.T) {
	bus := NewBus()
	var second Subscription
	secondRan := false
	bus.Subscribe(Up, func(Event) { second.Unsubscribe() })
	second = bus.Subscribe(Up, func(Event) { secondRan = true })

	bus.Dispatch(Event{Kind: Up})
	assert.False(t, secondRan)
	assert.Equal(t, 1, bus.Listeners())
}

func TestBus_IgnoresUnknownKinds(t *testing.T) {
	bus := NewBus()
	s := bus.Subscribe(Kind(99), func(Event) {})
	assert.NotPanics(t, s.Unsubscribe)
	assert.NotPanics(t, func() { bus.Dispatch(Event{Kind: Kind(-1)}) })
	assert.Zero(t, bus.Listeners())
	assert.Equal(t, "unknown", Kind(99).String())
	assert.Equal(t, "touchmove", TouchMove.String())
}

func TestTracker_WritesAnchorBeforeLaterSubscribers(t *testing.T) {
	bus := NewBus()
	var anchor Anchor
	tracker := Track(bus, &anchor)

	var seen geom.Point
	bus.Subscribe(Move, func(Event) { seen = anchor.Point() })

	assert.False(t, anchor.Known())
	bus.Dispatch(Event{Kind: Move, Point: geom.Point{X: 12, Y: 34}})
	assert.True(t, anchor.Known())
	assert.Equal(t, geom.Point{X: 12, Y: 34}, seen)

	bus.Dispatch(Event{Kind: TouchMove, Touches: []geom.Point{{X: 5, Y: 6}, {X: 7, Y: 8}}})
	assert.Equal(t, geom.Point{X: 5, Y: 6}, anchor.Point())

	// an empty touch list leaves the anchor alone
	bus.Dispatch(Event{Kind: TouchStart})
	assert.Equal(t, geom.Point{X: 5, Y: 6}, anchor.Point())

	tracker.Stop()
	assert.Equal(t, 1, bus.Listeners())
	bus.Dispatch(Event{Kind: Move, Point: geom.Point{X: 1, Y: 1}})
	assert.Equal(t, geom.Point{X: 5, Y: 6}, anchor.Point())
}
