package farm

import (
	"sync"

	"krishimitra/entities"
)

// PersistFunc writes a transition before it is committed. An error aborts the commit.
type PersistFunc func(prev, next State) error

// Store holds one farm snapshot and serialises commands against it.
type Store struct {
	mu      sync.Mutex
	env     Env
	state   State
	persist PersistFunc
}

func NewStore(env Env, initial State, persist PersistFunc) *Store {
	return &Store{env: env, state: initial.Clone(), persist: persist}
}

// Dispatch reduces cmd against the current snapshot and commits the result.
func (s *Store) Dispatch(cmd Command) (State, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, id, err := Reduce(s.env, s.state, cmd)
	if err != nil {
		return s.state.Clone(), "", err
	}
	if s.persist != nil {
		if err := s.persist(s.state, next); err != nil {
			return s.state.Clone(), "", err
		}
	}
	s.state = next
	return next.Clone(), id, nil
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Diff lists the crops that changed or appeared in next and the ids that are gone.
func Diff(prev, next State) (upserts []entities.Crop, deletes []string) {
	before := make(map[string]entities.Crop, len(prev.Crops))
	for _, c := range prev.Crops {
		before[c.CropID] = c
	}
	seen := make(map[string]bool, len(next.Crops))
	for _, c := range next.Crops {
		seen[c.CropID] = true
		if old, ok := before[c.CropID]; !ok || !sameCrop(old, c) {
			upserts = append(upserts, cloneCrop(c))
		}
	}
	for _, c := range prev.Crops {
		if !seen[c.CropID] {
			deletes = append(deletes, c.CropID)
		}
	}
	return upserts, deletes
}

func sameCrop(a, b entities.Crop) bool {
	if a.Name != b.Name || a.NameKey != b.NameKey || a.CropType != b.CropType ||
		a.PlantingDate != b.PlantingDate || a.Area != b.Area || a.SoilType != b.SoilType ||
		a.Ordinal != b.Ordinal {
		return false
	}
	if (a.HarvestDate == nil) != (b.HarvestDate == nil) {
		return false
	}
	if a.HarvestDate != nil && *a.HarvestDate != *b.HarvestDate {
		return false
	}
	if len(a.Tasks) != len(b.Tasks) {
		return false
	}
	for i := range a.Tasks {
		if a.Tasks[i] != b.Tasks[i] {
			return false
		}
	}
	return true
}
