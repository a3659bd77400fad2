package domain

// ActivitySignal is a user interaction observed by the UI shell.
type ActivitySignal string

const (
	SignalPointerDown ActivitySignal = "pointerdown"
	SignalPointerMove ActivitySignal = "pointermove"
	SignalKeyPress    ActivitySignal = "keypress"
	SignalScroll      ActivitySignal = "scroll"
	SignalTouchStart  ActivitySignal = "touchstart"
	SignalClick       ActivitySignal = "click"
)

var activitySignals = map[ActivitySignal]struct{}{
	SignalPointerDown: {},
	SignalPointerMove: {},
	SignalKeyPress:    {},
	SignalScroll:      {},
	SignalTouchStart:  {},
	SignalClick:       {},
}

// Valid reports whether s is one of the observed interaction signals.
func (s ActivitySignal) Valid() bool {
	_, ok := activitySignals[s]
	return ok
}
