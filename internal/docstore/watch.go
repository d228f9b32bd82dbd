package docstore

import (
	"context"
	"sync"
)

// Snapshot is one delivery of a live query: the full current result set, or
// the error that produced it. Failed runs are redelivered to the listener
// rather than terminating the subscription.
type Snapshot struct {
	Docs []Doc
	Err  error
}

// Subscribe turns the query into a live query. The current result set is
// delivered immediately, then redelivered after every write to the
// collection. Delivery is latest-wins: a slow consumer observes the newest
// snapshot, never a backlog of stale ones.
//
// The returned cancel function releases the listener and closes the channel;
// it is idempotent and must be called unconditionally on teardown.
func (q *Query) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	events, unsub := q.col.store.bus.Subscribe("doc."+q.col.path, 64)
	done := make(chan struct{})

	go func() {
		defer close(ch)
		q.deliver(ch)
		for {
			select {
			case evt := <-events:
				// Prefix subscription also sees subcollection writes
				// ("doc.threads" matches "doc.threads/<id>/messages");
				// only this collection's writes trigger a re-run.
				if evt.Payload != q.col.path {
					continue
				}
				q.deliver(ch)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			unsub()
			close(done)
		})
	}
	return ch, cancel
}

func (q *Query) deliver(ch chan Snapshot) {
	docs, err := q.GetAll(context.Background())
	snap := Snapshot{Docs: docs, Err: err}
	for {
		select {
		case ch <- snap:
			return
		default:
			// Buffer holds a stale snapshot; replace it.
			select {
			case <-ch:
			default:
			}
		}
	}
}
