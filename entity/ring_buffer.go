package entity

// RingBuffer is a fixed-size circular buffer of transform history. It is not safe for concurrent use.
type RingBuffer struct {
	buffer   []HistoricalPosition
	capacity int
	head     int // next write index
	size     int
}

// NewRingBuffer creates a ring buffer holding at most capacity entries.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{
		buffer:   make([]HistoricalPosition, capacity),
		capacity: capacity,
	}
}

// Add records a transform, overwriting the oldest entry once full.
func (rb *RingBuffer) Add(pos HistoricalPosition) {
	rb.buffer[rb.head] = pos
	rb.head = (rb.head + 1) % rb.capacity
	if rb.size < rb.capacity {
		rb.size++
	}
}

// at returns the i-th newest entry, with 0 being the latest.
func (rb *RingBuffer) at(i int) HistoricalPosition {
	return rb.buffer[(rb.head-1-i+rb.capacity)%rb.capacity]
}

// Get returns the entry recorded at tick.
func (rb *RingBuffer) Get(tick int64) (HistoricalPosition, bool) {
	for i := 0; i < rb.size; i++ {
		hp := rb.at(i)
		if hp.Tick == tick {
			return hp, true
		}
		// Entries are recorded in tick order, so nothing older can match.
		if hp.Tick < tick {
			break
		}
	}
	return HistoricalPosition{}, false
}

// GetClosest returns the entry whose tick is nearest to tick, preferring the newer one on ties.
func (rb *RingBuffer) GetClosest(tick int64) (HistoricalPosition, bool) {
	if rb.size == 0 {
		return HistoricalPosition{}, false
	}
	closest, closestDist := rb.at(0), abs64(rb.at(0).Tick-tick)
	for i := 1; i < rb.size; i++ {
		if dist := abs64(rb.at(i).Tick - tick); dist < closestDist {
			closest, closestDist = rb.at(i), dist
		}
	}
	return closest, true
}

// GetRange returns the entries with ticks in [startTick, endTick], oldest first.
func (rb *RingBuffer) GetRange(startTick, endTick int64) []HistoricalPosition {
	var result []HistoricalPosition
	for i := rb.size - 1; i >= 0; i-- {
		if hp := rb.at(i); hp.Tick >= startTick && hp.Tick <= endTick {
			result = append(result, hp)
		}
	}
	return result
}

// Distances returns the distance travelled between consecutive entries, oldest first.
func (rb *RingBuffer) Distances() []float64 {
	if rb.size < 2 {
		return nil
	}
	out := make([]float64, 0, rb.size-1)
	for i := rb.size - 1; i > 0; i-- {
		out = append(out, rb.at(i-1).Location.Sub(rb.at(i).Location).Len())
	}
	return out
}

// Latest returns the most recently added entry.
func (rb *RingBuffer) Latest() (HistoricalPosition, bool) {
	if rb.size == 0 {
		return HistoricalPosition{}, false
	}
	return rb.at(0), true
}

// Len returns the number of entries held.
func (rb *RingBuffer) Len() int {
	return rb.size
}

// Clear removes all entries.
func (rb *RingBuffer) Clear() {
	rb.head, rb.size = 0, 0
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
