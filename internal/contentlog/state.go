package contentlog

// TransferState is the last known download state of one app.
type TransferState struct {
	Transferred uint64
	Total       uint64
	Paused      bool
	Active      bool
}

// State is the running per-app download state. It is owned by the monitor
// driver and mutated only through Merge, which is what keeps the
// partial-update contract enforceable: callers never hold a mutable
// reference into the map.
type State struct {
	apps map[uint32]TransferState
}

// NewState returns an empty running state.
func NewState() *State {
	return &State{apps: make(map[uint32]TransferState)}
}

// Merge folds a snapshot into the running state. Apps mentioned for the
// first time are created zero-initialized. Only the field groups a delta
// actually touched are overwritten; a status-only delta leaves progress
// counters intact, and vice versa.
func (s *State) Merge(snap Snapshot) {
	for id, d := range snap {
		st := s.apps[id]
		if d.HasProgress {
			st.Transferred = d.Transferred
			st.Total = d.Total
		}
		if d.HasStatus {
			st.Active = d.Active
			st.Paused = d.Paused
		}
		s.apps[id] = st
	}
}

// App returns a copy of one app's state.
func (s *State) App(id uint32) (TransferState, bool) {
	st, ok := s.apps[id]
	return st, ok
}

// Apps returns a copy of the full state map.
func (s *State) Apps() map[uint32]TransferState {
	out := make(map[uint32]TransferState, len(s.apps))
	for id, st := range s.apps {
		out[id] = st
	}
	return out
}

// Len reports the number of tracked apps.
func (s *State) Len() int {
	return len(s.apps)
}
