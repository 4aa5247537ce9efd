package attr

import (
	"fmt"
	"sync"

	"github.com/ansel1/merry"
)

// Store is the attribute lookup service. Lookups are synchronous, free of side
// effects and never cached by callers.
type Store interface {
	// Fetch returns exactly size pairs of the record addressed by (doc, handle)
	// or an error wrapping ErrSchemaSizeMismatch when fewer are stored.
	Fetch(doc string, handle Handle, size int) (Record, error)
}

// MemStore keeps records in memory. Drawing scripts and tests fill it.
type MemStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string]Record)}
}

func (x *MemStore) Put(doc string, handle Handle, r Record) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.records[memKey(doc, handle)] = append(Record(nil), r...)
}

func (x *MemStore) Fetch(doc string, handle Handle, size int) (Record, error) {
	x.mu.Lock()
	r := x.records[memKey(doc, handle)]
	x.mu.Unlock()
	r, err := Sized(r, size)
	if err != nil {
		return nil, merry.Appendf(err, "handle %s", handle)
	}
	return append(Record(nil), r...), nil
}

// Each calls f for every stored record in unspecified order.
func (x *MemStore) Each(f func(doc string, handle Handle, r Record) error) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	for k, r := range x.records {
		doc, handle := splitMemKey(k)
		if err := f(doc, handle, r); err != nil {
			return err
		}
	}
	return nil
}

func memKey(doc string, handle Handle) string {
	return fmt.Sprintf("%s\x00%s", doc, handle)
}

func splitMemKey(k string) (string, Handle) {
	for i := 0; i < len(k); i++ {
		if k[i] == 0 {
			return k[:i], Handle(k[i+1:])
		}
	}
	return k, ""
}
