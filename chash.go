package chash

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"
)

const (
	// GrowthCoefficient is the factor applied to the capacity on every resize
	GrowthCoefficient = 2

	DefaultCapacity   = 16
	DefaultLoadFactor = 0.75
)

// ErrInvalidArgument is returned by New for a non-positive capacity or a load
// factor outside (0, 1]
var ErrInvalidArgument = errors.New("chash: invalid argument")

type entry struct {
	key   int
	value string
}

type bucket []entry

// Table is an integer-keyed, string-valued hash table with separate chaining.
// It is not safe for concurrent use.
type Table struct {
	buckets    []bucket
	loadFactor float64
	size       int
	resizes    int

	log      logrus.FieldLogger
	observer Observer
}

// New creates a table with capacity empty buckets
func New(capacity int, loadFactor float64, opts ...Option) (*Table, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be greater than zero, got %d", ErrInvalidArgument, capacity)
	}
	if math.IsNaN(loadFactor) || loadFactor <= 0 || loadFactor > 1 {
		return nil, fmt.Errorf("%w: load factor must be in (0, 1], got %v", ErrInvalidArgument, loadFactor)
	}

	t := &Table{
		buckets:    make([]bucket, capacity),
		loadFactor: loadFactor,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Search returns the value stored under key
func (t *Table) Search(key int) (string, bool) {
	b := t.buckets[hash(key, len(t.buckets))]
	if i := b.lookup(key); i >= 0 {
		return b[i].value, true
	}
	return "", false
}

// ContainsKey reports whether key is stored in the table
func (t *Table) ContainsKey(key int) bool {
	_, ok := t.Search(key)
	return ok
}

// Put adds or updates a key-value pair, growing the table once the load
// factor is reached
func (t *Table) Put(key int, value string) {
	idx := hash(key, len(t.buckets))
	if i := t.buckets[idx].lookup(key); i >= 0 {
		t.buckets[idx][i].value = value
		return
	}

	t.buckets[idx] = append(t.buckets[idx], entry{key: key, value: value})
	t.size++

	if float64(t.size)/float64(len(t.buckets)) >= t.loadFactor {
		t.resize()
	}
}

// Remove deletes key and returns the value it held
func (t *Table) Remove(key int) (string, bool) {
	idx := hash(key, len(t.buckets))
	b := t.buckets[idx]
	i := b.lookup(key)
	if i < 0 {
		return "", false
	}

	value := b[i].value
	last := len(b) - 1
	b[i] = b[last]
	b[last] = entry{}
	if last == 0 {
		t.buckets[idx] = nil
	} else {
		t.buckets[idx] = b[:last]
	}
	t.size--
	return value, true
}

func (t *Table) Size() int { return t.size }

func (t *Table) Capacity() int { return len(t.buckets) }

func (t *Table) Empty() bool { return t.size == 0 }

// LoadFactor returns the configured growth threshold, not the current fill ratio
func (t *Table) LoadFactor() float64 { return t.loadFactor }

// Resizes returns how many times the table has grown
func (t *Table) Resizes() int { return t.resizes }

// Keys returns the set of stored keys
func (t *Table) Keys() map[int]struct{} {
	keys := make(map[int]struct{}, t.size)
	for _, b := range t.buckets {
		for _, e := range b {
			keys[e.key] = struct{}{}
		}
	}
	return keys
}

// Values returns every stored value in bucket order. The order changes
// across resizes.
func (t *Table) Values() []string {
	values := make([]string, 0, t.size)
	for _, b := range t.buckets {
		for _, e := range b {
			values = append(values, e.value)
		}
	}
	return values
}

// resize rehashes every pair of every bucket into a fresh bucket slice and
// swaps it in once redistribution is complete
func (t *Table) resize() {
	oldCapacity := len(t.buckets)
	newCapacity := oldCapacity * GrowthCoefficient

	t.log.WithFields(logrus.Fields{
		"old_capacity": oldCapacity,
		"new_capacity": newCapacity,
		"size":         t.size,
	}).Debug("Starting resize")

	buckets := make([]bucket, newCapacity)
	for _, b := range t.buckets {
		for _, e := range b {
			idx := hash(e.key, newCapacity)
			buckets[idx] = append(buckets[idx], e)
		}
	}

	t.buckets = buckets
	t.resizes++

	t.log.WithFields(logrus.Fields{
		"capacity": newCapacity,
		"size":     t.size,
	}).Debug("Resize complete")

	if t.observer != nil {
		t.observer.ObserveResize(oldCapacity, newCapacity, t.size)
	}
}

func (b bucket) lookup(key int) int {
	for i, e := range b {
		if e.key == key {
			return i
		}
	}
	return -1
}

// hash maps key to a bucket index in [0, capacity) using xxhash over the
// key's little-endian encoding
func hash(key, capacity int) int {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(key))
	return int(xxhash.Sum64(buf[:]) % uint64(capacity))
}
