package event

// Subscriptions is the list of hooks owned by one session
// Every On made through it is undone by OffAll
type Subscriptions struct {
	hub  *Hub
	subs []Subscription
}

func NewSubscriptions(hub *Hub) *Subscriptions {
	return &Subscriptions{hub: hub}
}

// On registers fn on the hub and records the subscription
func (s *Subscriptions) On(t EventType, fn HandlerFunc) Subscription {
	sub := s.hub.On(t, fn)
	s.subs = append(s.subs, sub)
	return sub
}

// OffAll unsubscribes every recorded entry; safe to call repeatedly
func (s *Subscriptions) OffAll() {
	for i := len(s.subs) - 1; i >= 0; i-- {
		s.hub.Off(s.subs[i])
	}
	s.subs = nil
}

// Len returns the number of live subscriptions
func (s *Subscriptions) Len() int {
	return len(s.subs)
}
