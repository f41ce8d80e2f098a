// Package store implements the capture store: a bounded, concurrent,
// multi-indexed in-memory repository of captured messages. It is the core
// of this module — see the package-level invariants documented on Store.
package store

import (
	"container/list"
	"sync"
	"time"

	"github.com/dwalleck/TopicTracker/internal/apierr"
	"github.com/dwalleck/TopicTracker/internal/model"
)

// Store holds every live captured record behind a single readers-writer
// lock. The lock covers all three indices (order, byID, byTopic) together
// because every mutation touches all three, and the invariants below
// require them to change atomically:
//
//  1. count == order.Len() == len(byID)
//  2. every element in order has a matching byID entry and appears in
//     byTopic[record.Topic]
//  3. every handle in byTopic[t] has record.Topic == t and is in order
//  4. count <= capacity
//  5. relative order within byTopic[t] agrees with order
//  6. record IDs are unique across the live set
//
// Fine-grained per-index locking was rejected: it would need a strict
// acquisition order across three structures and would not shorten the
// critical section, since every writer already touches all three.
type Store struct {
	mu       sync.RWMutex
	capacity int
	order    *list.List // list.Element.Value = *model.Record, oldest at Front
	byID     map[string]*list.Element
	byTopic  map[string][]*list.Element
}

// New constructs a Store with the given capacity. capacity must be
// positive.
func New(capacity int) (*Store, error) {
	if capacity <= 0 {
		return nil, apierr.New(apierr.Internal, "store capacity must be positive")
	}
	return &Store{
		capacity: capacity,
		order:    list.New(),
		byID:     make(map[string]*list.Element),
		byTopic:  make(map[string][]*list.Element),
	}, nil
}

// Capacity returns the fixed maximum live record count.
func (s *Store) Capacity() int {
	return s.capacity
}

// Count returns the current number of live records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order.Len()
}

// Add inserts record, replacing any existing record with the same ID and
// moving it to the newest position, or evicting the oldest record if the
// store is at capacity. The critical section is O(1) in the common path
// and does no allocation-heavy work (no copying, no serialization) while
// the lock is held, to keep single-call latency low.
func (s *Store) Add(record model.Record) error {
	if record.ID == "" || record.Topic == "" {
		return apierr.New(apierr.NullMessage, "record must have a non-empty id and topic")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byID[record.ID]; ok {
		s.removeElementLocked(existing)
	} else if s.order.Len() >= s.capacity {
		if head := s.order.Front(); head != nil {
			s.removeElementLocked(head)
		}
	}

	el := s.order.PushBack(&record)
	s.byID[record.ID] = el
	s.byTopic[record.Topic] = append(s.byTopic[record.Topic], el)
	return nil
}

// removeElementLocked drops el from all three indices. Callers must hold
// the write lock.
func (s *Store) removeElementLocked(el *list.Element) {
	rec := el.Value.(*model.Record)
	s.order.Remove(el)
	delete(s.byID, rec.ID)

	topicEls := s.byTopic[rec.Topic]
	for i, e := range topicEls {
		if e == el {
			topicEls = append(topicEls[:i], topicEls[i+1:]...)
			break
		}
	}
	if len(topicEls) == 0 {
		delete(s.byTopic, rec.Topic)
	} else {
		s.byTopic[rec.Topic] = topicEls
	}
}

// GetAll returns a snapshot of every live record, oldest first. The
// returned slice is a copy; mutating it or the records it references does
// not affect the store.
func (s *Store) GetAll() []model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(func(*model.Record) bool { return true })
}

// GetByTopic returns every live record for topic, in insertion order.
// An empty topic is a validation error; an unknown topic returns an empty
// slice, not an error.
func (s *Store) GetByTopic(topic string) ([]model.Record, error) {
	if topic == "" {
		return nil, apierr.New(apierr.NullTopic, "topic must not be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	els := s.byTopic[topic]
	out := make([]model.Record, 0, len(els))
	for _, el := range els {
		out = append(out, el.Value.(*model.Record).Clone())
	}
	return out, nil
}

// GetByTimeRange returns every live record with a timestamp within
// [start, end], inclusive on both bounds. A degenerate range (start after
// end) returns an empty slice, never an error.
func (s *Store) GetByTimeRange(start, end time.Time) []model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if start.After(end) {
		return []model.Record{}
	}
	return s.snapshotLocked(func(r *model.Record) bool {
		return !r.Timestamp.Before(start) && !r.Timestamp.After(end)
	})
}

// snapshotLocked copies every record in order satisfying keep. Callers
// must hold at least the read lock.
func (s *Store) snapshotLocked(keep func(*model.Record) bool) []model.Record {
	out := make([]model.Record, 0, s.order.Len())
	for el := s.order.Front(); el != nil; el = el.Next() {
		rec := el.Value.(*model.Record)
		if keep(rec) {
			out = append(out, rec.Clone())
		}
	}
	return out
}

// GetByID returns the record with the given id, or NotFound if none is
// live. An empty id is a validation error.
func (s *Store) GetByID(id string) (model.Record, error) {
	if id == "" {
		return model.Record{}, apierr.New(apierr.NullMessageId, "id must not be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	el, ok := s.byID[id]
	if !ok {
		return model.Record{}, apierr.Field(apierr.NotFound, id, "no record with this id")
	}
	return el.Value.(*model.Record).Clone(), nil
}

// GetByTopicAndDedupID scans topic for a live record carrying dedupID,
// used exclusively by the publish path's deduplication check.
func (s *Store) GetByTopicAndDedupID(topic, dedupID string) (model.Record, bool) {
	if topic == "" || dedupID == "" {
		return model.Record{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, el := range s.byTopic[topic] {
		rec := el.Value.(*model.Record)
		if rec.DedupID == dedupID {
			return rec.Clone(), true
		}
	}
	return model.Record{}, false
}

// Clear drops every record and index entry. Capacity is unchanged.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = list.New()
	s.byID = make(map[string]*list.Element)
	s.byTopic = make(map[string][]*list.Element)
}
