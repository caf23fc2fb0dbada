package materialize

// State is the phase a Materializer is in.  A run moves through
// Initializing, then alternates Fetching and Appending until the source is
// exhausted, then Finalizing and Done.  Failed is entered from any phase
// before Done when an error stops the run.
type State int

const (
	Initializing State = iota
	Fetching
	Appending
	Finalizing
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Fetching:
		return "fetching"
	case Appending:
		return "appending"
	case Finalizing:
		return "finalizing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return "unknown"
}
