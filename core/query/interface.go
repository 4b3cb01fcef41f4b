package query

import "time"

// Observer receives a notification after every query the engine runs. It is
// the hook used by the metrics package; implementations must not block.
type Observer interface {
	// ObserveQuery reports the dataset size, the number of records selected and
	// how long selection took.
	ObserveQuery(total, matched int, elapsed time.Duration)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(total, matched int, elapsed time.Duration)

// ObserveQuery calls f.
func (f ObserverFunc) ObserveQuery(total, matched int, elapsed time.Duration) {
	f(total, matched, elapsed)
}
