package opt

import "sync"

type statKey struct {
	Kind string
	Name string
}

// OpStats tallies calls of one operator.
type OpStats struct {
	Applied int
	Failed  int
}

type statsStore struct {
	mu sync.Mutex
	m  map[statKey]OpStats
}

func newStatsStore() *statsStore {
	return &statsStore{m: map[statKey]OpStats{}}
}

func (s *statsStore) record(kind, name string, err error) {
	s.mu.Lock()
	k := statKey{Kind: kind, Name: name}
	st := s.m[k]
	if err != nil {
		st.Failed++
	} else {
		st.Applied++
	}
	s.m[k] = st
	s.mu.Unlock()
}

// byKind returns the tallies of one operator kind keyed by operator name.
func (s *statsStore) byKind(kind string) map[string]OpStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]OpStats{}
	for k, v := range s.m {
		if k.Kind == kind {
			out[k.Name] = v
		}
	}
	return out
}
