package browse

// State is where a browsing session is in its lifecycle.
type State int

const (
	Idle State = iota
	InitialLoad
	Ready
	LoadingMore
	Filtered
	Searched
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InitialLoad:
		return "initial-load"
	case Ready:
		return "ready"
	case LoadingMore:
		return "loading-more"
	case Filtered:
		return "filtered"
	case Searched:
		return "searched"
	default:
		return "unknown"
	}
}

// Mode says what the list is currently showing.
type Mode int

const (
	// ModeAll is the cursor-paginated list of every problem.
	ModeAll Mode = iota
	// ModeTag is the complete set for one tag.
	ModeTag
	// ModeSearch is the complete result of a title search.
	ModeSearch
)

// View describes the list contents: the mode and the tag slug or query
// that produced it.
type View struct {
	Mode  Mode
	Label string
}
