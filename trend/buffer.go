package trend

// PointBuffer holds the points of one channel in a circular buffer. When
// eviction is requested and the buffer is at capacity the oldest point is
// dropped. Without eviction the storage grows past capacity.
type PointBuffer struct {
	points    []Point
	capacity  int
	readStart int
	count     int

	// nextX is the ordinal handed to the next appended point
	nextX int64
}

// NewPointBuffer creates an empty buffer holding up to capacity points.
func NewPointBuffer(capacity int) *PointBuffer {
	initial := capacity
	if initial > 64 {
		initial = 64
	}
	if initial < 1 {
		initial = 1
	}
	return &PointBuffer{
		points:   make([]Point, initial),
		capacity: capacity,
	}
}

// NextX returns the ordinal the next appended point will get.
func (b *PointBuffer) NextX() float64 {
	return float64(b.nextX)
}

// Append adds a point and returns its index at insertion time, before any
// eviction. evicted reports whether the oldest point was dropped.
func (b *PointBuffer) Append(p Point, evictIfOverflow bool) (index int, evicted bool) {
	index = b.count
	if evictIfOverflow && b.count+1 > b.capacity && b.count > 0 {
		b.readStart = (b.readStart + 1) % len(b.points)
		b.count--
		evicted = true
	}
	if b.count == len(b.points) {
		b.grow()
	}
	b.points[(b.readStart+b.count)%len(b.points)] = p
	b.count++
	b.nextX++
	return index, evicted
}

// grow doubles the storage, unrolling the ring so readStart becomes 0.
func (b *PointBuffer) grow() {
	size := len(b.points) * 2
	if size > b.capacity && len(b.points) < b.capacity {
		size = b.capacity
	}
	next := make([]Point, size)
	for i := 0; i < b.count; i++ {
		next[i] = b.points[(b.readStart+i)%len(b.points)]
	}
	b.points = next
	b.readStart = 0
}

// Len returns the number of buffered points.
func (b *PointBuffer) Len() int {
	return b.count
}

// Capacity returns the configured window capacity.
func (b *PointBuffer) Capacity() int {
	return b.capacity
}

// At returns the i-th oldest point.
func (b *PointBuffer) At(i int) Point {
	if i < 0 || i >= b.count {
		panic("trend: point index out of range")
	}
	return b.points[(b.readStart+i)%len(b.points)]
}

// Oldest returns the first buffered point.
func (b *PointBuffer) Oldest() (Point, bool) {
	if b.count == 0 {
		return Point{}, false
	}
	return b.At(0), true
}

// Latest returns the most recently appended point.
func (b *PointBuffer) Latest() (Point, bool) {
	if b.count == 0 {
		return Point{}, false
	}
	return b.At(b.count - 1), true
}

// Points returns all points in insertion order (oldest first).
func (b *PointBuffer) Points() []Point {
	out := make([]Point, b.count)
	for i := range out {
		out[i] = b.points[(b.readStart+i)%len(b.points)]
	}
	return out
}

// Clear drops every point and restarts ordinals at 0.
func (b *PointBuffer) Clear() {
	b.readStart = 0
	b.count = 0
	b.nextX = 0
}
