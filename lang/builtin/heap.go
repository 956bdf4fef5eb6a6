package builtin

import "fmt"

// heap is the process-wide byte heap backing malloc/free/peek/peek32/poke.
// It is distinct from an Environment's 64 KB per-scope byte memory and is
// shared across every Environment in the process: handles are monotonically
// increasing and never reused within a run. The evaluator is single-task
// cooperative, so this needs no locking.
type heap struct {
	bufs     map[int64][]byte
	next     int64
	total    int64
	maxBytes int64 // 0 means unlimited
}

func newHeap() *heap {
	return &heap{bufs: make(map[int64][]byte), next: 1}
}

var processHeap = newHeap()

// SetMaxBytes caps the heap's total allocated size; 0 removes the cap. It is
// meant to be called once at startup, before any script runs.
func SetMaxBytes(n int64) {
	processHeap.maxBytes = n
}

func (h *heap) malloc(size int) (int64, error) {
	if h.maxBytes > 0 && h.total+int64(size) > h.maxBytes {
		return 0, fmt.Errorf("heap limit of %d bytes exceeded", h.maxBytes)
	}
	id := h.next
	h.next++
	h.bufs[id] = make([]byte, size)
	h.total += int64(size)
	return id, nil
}

func (h *heap) free(ptr int64) {
	if b, ok := h.bufs[ptr]; ok {
		h.total -= int64(len(b))
		delete(h.bufs, ptr)
	}
}

func (h *heap) block(ptr int64) ([]byte, bool) {
	b, ok := h.bufs[ptr]
	return b, ok
}
