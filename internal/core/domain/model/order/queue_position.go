package order

// QueuePosition is the point-in-time place of an unassigned order in its firm's FIFO
// queue. It is derived on every request and never stored.
type QueuePosition struct {
	position int
	ahead    int
}

// NewQueuePosition builds the position of a queued order with ahead orders before it.
func NewQueuePosition(ahead int) QueuePosition {
	if ahead < 0 {
		ahead = 0
	}
	return QueuePosition{position: ahead + 1, ahead: ahead}
}

// NotQueued is reported for orders outside the queue set.
func NotQueued() QueuePosition {
	return QueuePosition{}
}

// Position is 1-indexed; 0 means the order is not queued.
func (q QueuePosition) Position() int {
	return q.position
}

// Ahead is the number of queued, unassigned orders of the same firm placed earlier.
func (q QueuePosition) Ahead() int {
	return q.ahead
}

// IsQueued reports whether the order is waiting for a driver.
func (q QueuePosition) IsQueued() bool {
	return q.position > 0
}
