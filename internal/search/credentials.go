package search

import (
	"math/rand/v2"
	"sync/atomic"
)

// CredentialSelector picks one API credential per outbound call. Selection is
// independent per call so it stays safe under concurrent resolution tasks.
type CredentialSelector interface {
	// Select returns a credential, or "" when none are configured
	Select() string
}

// randomSelector spreads quota consumption uniformly across keys
type randomSelector struct {
	keys []string
}

// NewRandomSelector creates a selector choosing a key uniformly at random
func NewRandomSelector(keys []string) CredentialSelector {
	return &randomSelector{keys: keys}
}

func (s *randomSelector) Select() string {
	if len(s.keys) == 0 {
		return ""
	}
	return s.keys[rand.IntN(len(s.keys))]
}

// roundRobinSelector cycles through keys in order
type roundRobinSelector struct {
	keys []string
	next atomic.Uint64
}

// NewRoundRobinSelector creates a selector cycling through keys in order
func NewRoundRobinSelector(keys []string) CredentialSelector {
	return &roundRobinSelector{keys: keys}
}

func (s *roundRobinSelector) Select() string {
	if len(s.keys) == 0 {
		return ""
	}
	n := s.next.Add(1) - 1
	return s.keys[n%uint64(len(s.keys))]
}
