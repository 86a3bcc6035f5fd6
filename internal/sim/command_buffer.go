package sim

import (
	"sync"

	"towerdefense/server/internal/telemetry"
)

const (
	// defaultCommandBufferCapacity bounds the commands staged between two
	// ticks across all clients.
	defaultCommandBufferCapacity = 256

	// defaultCommandsPerSource bounds how many commands one client may
	// stage between two ticks, so a single spamming socket cannot starve
	// the others out of the shared ring.
	defaultCommandsPerSource = 32
)

// CommandBuffer stages commands in a fixed-size ring until the engine
// drains them at the top of its next tick. It is safe for concurrent
// producers (the transport's reader goroutines) and a single consumer (the
// tick loop). Overflow and throttle rejections are counted on the metrics
// sink rather than reported to the producer beyond the boolean.
type CommandBuffer struct {
	mu        sync.Mutex
	data      []Command
	head      int
	tail      int
	count     int
	perSource map[string]int
	sourceCap int
	metrics   telemetry.Metrics
}

// NewCommandBuffer constructs a ring holding at most capacity commands,
// with at most sourceCap of them from any one source between drains.
func NewCommandBuffer(capacity, sourceCap int, metrics telemetry.Metrics) *CommandBuffer {
	if capacity < 1 {
		capacity = 1
	}
	if sourceCap < 1 {
		sourceCap = capacity
	}
	if metrics == nil {
		metrics = telemetry.NopMetrics{}
	}
	return &CommandBuffer{
		data:      make([]Command, capacity),
		perSource: make(map[string]int),
		sourceCap: sourceCap,
		metrics:   metrics,
	}
}

// Push stages a command, returning false when the ring is full or the
// command's source has exhausted its per-drain allowance.
func (b *CommandBuffer) Push(cmd Command) bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.count == len(b.data) {
		b.metrics.IncCommandRejected("QUEUE_FULL")
		return false
	}
	if cmd.Source != "" && b.perSource[cmd.Source] >= b.sourceCap {
		b.metrics.IncCommandRejected("THROTTLED")
		return false
	}
	b.data[b.tail] = cmd
	b.tail = (b.tail + 1) % len(b.data)
	b.count++
	if cmd.Source != "" {
		b.perSource[cmd.Source]++
	}
	return true
}

// Drain returns all staged commands in arrival order, clears the ring, and
// resets every source's allowance.
func (b *CommandBuffer) Drain() []Command {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.count == 0 {
		return nil
	}
	out := make([]Command, b.count)
	for i := 0; i < b.count; i++ {
		out[i] = b.data[(b.head+i)%len(b.data)]
	}
	b.head = 0
	b.tail = 0
	b.count = 0
	for source := range b.perSource {
		delete(b.perSource, source)
	}
	return out
}

// Len reports the number of staged commands.
func (b *CommandBuffer) Len() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}
