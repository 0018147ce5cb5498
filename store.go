package gorewrite

import (
	"fmt"
	"sync"
)

type TermStoreStats struct {
	CacheHits    uint
	CacheLookups uint
	Interned     uint
}

// TermStore interns terms so that structurally equal terms share a single
// TermPtr representative. The table is keyed by structural hash; hash
// collisions are broken by shallow structural comparison (children are
// already interned, so the comparison never recurses). Safe for concurrent
// readers with a single writer.
type TermStore struct {
	lock  sync.RWMutex
	sig   Signature
	cache map[uint64][]*TermPtr

	Stats TermStoreStats
}

func NewTermStore(sig Signature) *TermStore {
	return &TermStore{
		sig:   sig,
		cache: map[uint64][]*TermPtr{},
	}
}

func (s *TermStore) Signature() Signature {
	return s.sig
}

// Intern returns the unique representative of t, inserting it if no
// structurally equal term was interned before.
func (s *TermStore) Intern(t Term) *TermPtr {
	h := t.Hash()
	size := t.Size()

	s.lock.Lock()
	defer s.lock.Unlock()
	s.Stats.CacheLookups += 1

	bucket := s.cache[h]
	for i := 0; i < len(bucket); i++ {
		if bucket[i].t.Equal(t) {
			s.Stats.CacheHits += 1
			return bucket[i]
		}
	}
	s.Stats.Interned += 1

	p := &TermPtr{t: t, hash: h, size: size}
	s.cache[h] = append(bucket, p)
	return p
}

// Lookup returns the representative of t if one was interned, without
// modifying the table.
func (s *TermStore) Lookup(t Term) (*TermPtr, bool) {
	h := t.Hash()

	s.lock.RLock()
	defer s.lock.RUnlock()

	bucket := s.cache[h]
	for i := 0; i < len(bucket); i++ {
		if bucket[i].t.Equal(t) {
			return bucket[i], true
		}
	}
	return nil, false
}

// Build reconstructs a compound through the signature and interns it.
func (s *TermStore) Build(opcode int, children []*TermPtr) (*TermPtr, error) {
	if arity, ok := s.sig.Arity(opcode); !ok {
		return nil, fmt.Errorf("Build(): unknown opcode %d", opcode)
	} else if arity != len(children) {
		return nil, fmt.Errorf("Build(): opcode %d wants %d children, got %d",
			opcode, arity, len(children))
	}

	t, err := s.sig.Make(opcode, children)
	if err != nil {
		return nil, err
	}
	return s.Intern(t), nil
}

// NumInterned returns the number of distinct terms in the table.
func (s *TermStore) NumInterned() uint {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.Stats.Interned
}
