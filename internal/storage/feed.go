package storage

import (
	"maps"
	"slices"
	"sync"
)

// feed fans a table snapshot out to subscribers. Snapshot reads and
// deliveries are serialized so a subscriber never observes an older
// snapshot after a newer one. Callbacks must not mutate the store
// synchronously.
type feed[T any] struct {
	mu      sync.Mutex
	sending sync.Mutex
	nextID  int
	subs    map[int]func([]T)
}

func newFeed[T any]() *feed[T] {
	return &feed[T]{subs: make(map[int]func([]T))}
}

func (target *feed[T]) add(fn func([]T)) int {
	target.mu.Lock()
	defer target.mu.Unlock()
	target.nextID++
	target.subs[target.nextID] = fn
	return target.nextID
}

func (target *feed[T]) remove(id int) {
	target.mu.Lock()
	delete(target.subs, id)
	target.mu.Unlock()
}

func (target *feed[T]) clear() {
	target.mu.Lock()
	clear(target.subs)
	target.mu.Unlock()
}

func (target *feed[T]) active() bool {
	target.mu.Lock()
	defer target.mu.Unlock()
	return len(target.subs) > 0
}

// replay sends the current snapshot to one subscriber.
func (target *feed[T]) replay(id int, list func() ([]T, error)) error {
	target.sending.Lock()
	defer target.sending.Unlock()

	records, err := list()
	if err != nil {
		return err
	}
	target.mu.Lock()
	fn, ok := target.subs[id]
	target.mu.Unlock()
	if ok {
		fn(records)
	}
	return nil
}

// publish sends the current snapshot to every subscriber in subscription order.
func (target *feed[T]) publish(list func() ([]T, error)) error {
	target.sending.Lock()
	defer target.sending.Unlock()

	records, err := list()
	if err != nil {
		return err
	}
	for _, fn := range target.snapshot() {
		fn(records)
	}
	return nil
}

func (target *feed[T]) snapshot() []func([]T) {
	target.mu.Lock()
	defer target.mu.Unlock()
	fns := make([]func([]T), 0, len(target.subs))
	for _, id := range slices.Sorted(maps.Keys(target.subs)) {
		fns = append(fns, target.subs[id])
	}
	return fns
}
