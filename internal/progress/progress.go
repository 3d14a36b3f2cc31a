// Package progress defines the user-facing event stream shared by the
// extractor, the downloader and their front-ends.
package progress

// Level indicates the severity/type of a progress message.
type Level int

const (
	LevelInfo Level = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Event represents one progress update.
type Event struct {
	Message string
	Level   Level

	// Item and Total locate the event within a batch (1-based). Both are
	// zero for events that are not tied to an item.
	Item  int
	Total int

	// Percent is the fetch progress of the current item, or -1 when the
	// event carries none.
	Percent float64
}

// Func receives progress events. A nil Func discards them.
type Func func(Event)

// Emit calls f when it is non-nil.
func (f Func) Emit(e Event) {
	if f != nil {
		f(e)
	}
}

// Message builds an Event without item position or percentage.
func Message(level Level, msg string) Event {
	return Event{Message: msg, Level: level, Percent: -1}
}
