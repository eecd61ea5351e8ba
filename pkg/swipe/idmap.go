package swipe

import (
	"errors"
	"fmt"

	"github.com/YongERong/wth-caifan-lovers/models"
)

// ErrNoMapping the legacy id has no store identifier
var ErrNoMapping = errors.New("no UUID mapping found")

// IDMap a bidirectional lookup between legacy integer activity ids and store
// identifiers. It is built by the caller and never mutated afterwards.
type IDMap struct {
	external map[int]string
	internal map[string]int
}

// NewIDMap builds a map from legacy id to store identifier
func NewIDMap(pairs map[int]string) *IDMap {
	m := &IDMap{
		external: make(map[int]string, len(pairs)),
		internal: make(map[string]int, len(pairs)),
	}
	for n, id := range pairs {
		m.external[n] = id
		m.internal[id] = n
	}
	return m
}

// IDMapFromActivities maps every activity that carries a legacy number
func IDMapFromActivities(activities []models.Activity) *IDMap {
	pairs := make(map[int]string, len(activities))
	for _, a := range activities {
		if a.Number > 0 {
			pairs[a.Number] = a.ID
		}
	}
	return NewIDMap(pairs)
}

// External store identifier for legacy id n
func (m *IDMap) External(n int) (string, error) {
	id, ok := m.external[n]
	if !ok {
		return "", fmt.Errorf("%w for activity ID: %d", ErrNoMapping, n)
	}
	return id, nil
}

// Internal legacy id for a store identifier
func (m *IDMap) Internal(id string) (int, bool) {
	n, ok := m.internal[id]
	return n, ok
}

// Len number of mapped pairs
func (m *IDMap) Len() int {
	return len(m.external)
}

// Resolver resolves cards by their legacy number
func (m *IDMap) Resolver() Resolver {
	return func(a models.Activity) (string, error) {
		return m.External(a.Number)
	}
}
