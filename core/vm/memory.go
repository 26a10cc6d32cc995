package vm

// Memory is the VM's byte-addressable scratch space, growing in 32-byte
// words as instructions reference further offsets.
type Memory struct {
	store []byte
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Resize(size uint64) {
	size = (size + 31) / 32 * 32
	if uint64(len(m.store)) < size {
		grown := make([]byte, size)
		copy(grown, m.store)
		m.store = grown
	}
}

func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	m.Resize(offset + size)
	copy(m.store[offset:offset+size], value)
}

func (m *Memory) Get(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	out := make([]byte, size)
	if int64(len(m.store)) > offset {
		copy(out, m.store[offset:])
	}
	return out
}

func (m *Memory) Len() int { return len(m.store) }
func (m *Memory) Data() []byte { return m.store }
