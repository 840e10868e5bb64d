// Package event carries pointer, update and render hooks between session components.
package event

// HandlerFunc receives one event synchronously
type HandlerFunc func(ev Event)

// Subscription identifies one registered handler
type Subscription struct {
	Type EventType
	id   uint64
}

type entry struct {
	id uint64
	fn HandlerFunc
}

// Hub dispatches events to handlers in registration order
//
// Architecture:
//   - Single-threaded dispatch, owned by the app loop
//   - Handlers may subscribe or unsubscribe during Emit
//   - A handler removed during Emit is not invoked afterwards
//   - A handler added during Emit first runs on the next Emit
type Hub struct {
	handlers [eventTypeCount][]entry
	removed  map[uint64]struct{}
	nextID   uint64
	depth    int
}

func NewHub() *Hub {
	return &Hub{removed: make(map[uint64]struct{})}
}

// On registers fn for t
func (h *Hub) On(t EventType, fn HandlerFunc) Subscription {
	h.nextID++
	h.handlers[t] = append(h.handlers[t], entry{id: h.nextID, fn: fn})
	return Subscription{Type: t, id: h.nextID}
}

// Off removes a subscription, reporting whether it was present
func (h *Hub) Off(sub Subscription) bool {
	if sub.Type < 0 || sub.Type >= eventTypeCount {
		return false
	}
	list := h.handlers[sub.Type]
	for i, e := range list {
		if e.id == sub.id {
			// Copy so an in-flight Emit keeps iterating its own snapshot
			next := make([]entry, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			h.handlers[sub.Type] = next
			if h.depth > 0 {
				h.removed[sub.id] = struct{}{}
			}
			return true
		}
	}
	return false
}

// Emit invokes every handler registered for ev.Type
func (h *Hub) Emit(ev Event) {
	if ev.Type < 0 || ev.Type >= eventTypeCount {
		return
	}
	snapshot := h.handlers[ev.Type]

	h.depth++
	defer func() {
		h.depth--
		if h.depth == 0 && len(h.removed) > 0 {
			clear(h.removed)
		}
	}()

	for _, e := range snapshot {
		if _, gone := h.removed[e.id]; gone {
			continue
		}
		e.fn(ev)
	}
}

// HandlerCount returns the number of handlers registered for t
func (h *Hub) HandlerCount(t EventType) int {
	if t < 0 || t >= eventTypeCount {
		return 0
	}
	return len(h.handlers[t])
}

// Total returns the number of handlers across all types
func (h *Hub) Total() int {
	n := 0
	for _, list := range h.handlers {
		n += len(list)
	}
	return n
}
