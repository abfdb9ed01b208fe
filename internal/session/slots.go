package session

import "sync"

const (
	SlotToken    = "token"
	SlotUserData = "userData"
)

// Slots is the persisted form of a session
type Slots struct {
	Token    string
	UserData []byte
}

// SlotStore persists the `token` and `userData` slots as a pair: both
// are written or removed together, and Load only reports a session when
// both are present
type SlotStore interface {
	Load() (*Slots, error)
	Save(slots Slots) error
	Clear() error
}

// MemorySlots is a SlotStore that does not outlive the process
type MemorySlots struct {
	mutex sync.Mutex
	slots *Slots
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{}
}

func (m *MemorySlots) Load() (*Slots, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.slots == nil {
		return nil, nil
	}
	copied := *m.slots
	copied.UserData = append([]byte(nil), m.slots.UserData...)
	return &copied, nil
}

func (m *MemorySlots) Save(slots Slots) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	slots.UserData = append([]byte(nil), slots.UserData...)
	m.slots = &slots
	return nil
}

func (m *MemorySlots) Clear() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.slots = nil
	return nil
}
