package chrome

// Scheduler runs low-priority UI updates, such as the content re-render
// that follows a locale change
type Scheduler interface {
	Schedule(fn func())
}

// ImmediateScheduler runs work synchronously
type ImmediateScheduler struct{}

func (ImmediateScheduler) Schedule(fn func()) { fn() }

// QueueScheduler defers work until the host calls Flush, typically on the
// update turn after urgent state has been rendered
type QueueScheduler struct {
	queue []func()
}

// NewQueueScheduler creates an empty queue
func NewQueueScheduler() *QueueScheduler {
	return &QueueScheduler{}
}

func (q *QueueScheduler) Schedule(fn func()) {
	q.queue = append(q.queue, fn)
}

// Pending returns the number of queued updates
func (q *QueueScheduler) Pending() int { return len(q.queue) }

// Flush runs queued work in order, including work queued while flushing
func (q *QueueScheduler) Flush() int {
	ran := 0
	for len(q.queue) > 0 {
		fn := q.queue[0]
		q.queue = q.queue[1:]
		fn()
		ran++
	}
	return ran
}
