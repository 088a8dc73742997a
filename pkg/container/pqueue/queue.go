// Package pqueue is a small bounded priority queue used to keep the best k candidates of a search.
// Lower priorities come first.
package pqueue

import (
	"math"
	"sort"
)

// WithCap bounds the queue: after every Push only the first size items by priority are kept.
func WithCap(size uint) Option {
	return func(q *Queue) {
		q.cap = int(size)
	}
}

type Option func(*Queue)

type item struct {
	value interface{}
	prior float64
}

func New(opts ...Option) *Queue {
	q := &Queue{cap: -1}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

type Queue struct {
	cap   int
	items []item
}

// PopAll empties the queue and returns its values, lowest priority first.
func (q *Queue) PopAll() []interface{} {
	pulled := make([]interface{}, len(q.items))
	for i := range q.items {
		pulled[i] = q.items[i].value
	}
	q.items = q.items[:0]
	return pulled
}

// Push inserts val keeping items ordered; items of equal priority keep their push order.
func (q *Queue) Push(val interface{}, priority float64) {
	idx := sort.Search(len(q.items), func(i int) bool {
		return priority < q.items[i].prior
	})
	if q.cap >= 0 && idx >= q.cap {
		return
	}
	q.items = append(q.items, item{})
	copy(q.items[idx+1:], q.items[idx:])
	q.items[idx] = item{value: val, prior: priority}
	if q.cap >= 0 && len(q.items) > q.cap {
		q.items = q.items[:q.cap]
	}
}

// Worst is the priority an item must beat to stay in a full queue: +Inf while the queue has
// room, -Inf for a queue of capacity zero.
func (q *Queue) Worst() float64 {
	if q.cap == 0 {
		return math.Inf(-1)
	}
	if q.cap < 0 || len(q.items) < q.cap {
		return math.Inf(1)
	}
	return q.items[len(q.items)-1].prior
}

func (q *Queue) Cap() int { return q.cap }

func (q *Queue) Len() int { return len(q.items) }
