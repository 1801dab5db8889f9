package wizard

import "sync"

type memoryManager struct {
	mu    sync.RWMutex
	steps map[int64]Step
}

// NewMemoryManager constructs the in-memory Manager used in production.
// Pending steps are transient by design: a restart discards every
// half-finished wizard.
func NewMemoryManager() Manager {
	return &memoryManager{
		steps: make(map[int64]Step),
	}
}

// Set replaces the chat's pending step. Replacement, never accumulation,
// guarantees at most one active wizard per chat.
func (m *memoryManager) Set(chatID int64, step Step) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps[chatID] = step
}

// Current returns the chat's pending step if one is registered.
func (m *memoryManager) Current(chatID int64) (Step, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	step, ok := m.steps[chatID]
	return step, ok
}

// Clear removes the chat's pending step.
func (m *memoryManager) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.steps, chatID)
}

// InProgress reports whether the chat currently awaits a wizard reply.
func (m *memoryManager) InProgress(chatID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.steps[chatID]
	return ok
}
