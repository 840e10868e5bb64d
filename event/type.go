package event

// EventType represents a hook point in a session frame
type EventType int

const (
	// EventPointerDown signals the primary button press
	// Trigger: App input translation | Consumer: DragController | Payload: Point
	EventPointerDown EventType = iota

	// EventPointerMove signals pointer motion with or without a button held
	// Trigger: App input translation | Consumer: DragController | Payload: Point
	EventPointerMove

	// EventPointerUp signals the primary button release
	// Trigger: App input translation | Consumer: DragController | Payload: Point
	EventPointerUp

	// EventBeforeUpdate fires once per tick before physics integration
	// Trigger: Session step driver | Consumer: DragController | Payload: Dt
	EventBeforeUpdate

	// EventAfterUpdate fires once per tick after physics integration
	// Trigger: Session step driver | Consumer: Clear evaluator | Payload: Timestamp
	EventAfterUpdate

	// EventAfterRender fires after the world has been drawn
	// Trigger: Renderer | Consumer: Zone overlay | Payload: Canvas
	EventAfterRender

	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	EventPointerDown:  "PointerDown",
	EventPointerMove:  "PointerMove",
	EventPointerUp:    "PointerUp",
	EventBeforeUpdate: "BeforeUpdate",
	EventAfterUpdate:  "AfterUpdate",
	EventAfterRender:  "AfterRender",
}

func (t EventType) String() string {
	if t >= 0 && t < eventTypeCount {
		return eventTypeNames[t]
	}
	return "Unknown"
}
