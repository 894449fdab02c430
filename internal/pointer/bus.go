package pointer

// Handler receives dispatched events.
type Handler func(Event)

// Subscription is returned by Subscribe; Unsubscribe is idempotent.
type Subscription struct {
	bus  *Bus
	kind Kind
	id   uint64
}

func (s Subscription) Unsubscribe() {
	if s.bus == nil {
		return
	}
	subs := s.bus.subs[s.kind]
	for i, sub := range subs {
		if sub.id == s.id {
			s.bus.subs[s.kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

type subscriber struct {
	id uint64
	fn Handler
}

// Bus fans input events out to subscribers in subscription order. Like the
// scheduler it lives on the host's single update goroutine.
type Bus struct {
	nextID uint64
	subs   [numKinds][]subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(kind Kind, fn Handler) Subscription {
	if kind < 0 || kind >= numKinds || fn == nil {
		return Subscription{}
	}
	b.nextID++
	b.subs[kind] = append(b.subs[kind], subscriber{id: b.nextID, fn: fn})
	return Subscription{bus: b, kind: kind, id: b.nextID}
}

// Dispatch delivers ev to a snapshot of the current subscribers, so handlers
// may subscribe or unsubscribe while running.
func (b *Bus) Dispatch(ev Event) {
	if ev.Kind < 0 || ev.Kind >= numKinds {
		return
	}
	subs := append([]subscriber(nil), b.subs[ev.Kind]...)
	for _, sub := range subs {
		if !b.has(ev.Kind, sub.id) {
			continue
		}
		sub.fn(ev)
	}
}

func (b *Bus) has(kind Kind, id uint64) bool {
	for _, sub := range b.subs[kind] {
		if sub.id == id {
			return true
		}
	}
	return false
}

// Listeners counts live subscriptions across all kinds.
func (b *Bus) Listeners() int {
	n := 0
	for _, subs := range b.subs {
		n += len(subs)
	}
	return n
}

// ListenersFor counts live subscriptions for one kind.
func (b *Bus) ListenersFor(kind Kind) int {
	if kind < 0 || kind >= numKinds {
		return 0
	}
	return len(b.subs[kind])
}
