package cache

import (
	"context"
	"encoding/json"
	"sync"

	"leadquiz/internal/model"
)

// memorySessionCache is a process-local SessionCache used in tests and when
// no redis is configured. Sessions round-trip through JSON so the two
// implementations have identical serialization behavior.
type memorySessionCache struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemorySessionCache creates an in-memory session cache
func NewMemorySessionCache() SessionCache {
	return &memorySessionCache{sessions: make(map[string][]byte)}
}

func (c *memorySessionCache) Set(_ context.Context, session *model.QuizSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[session.ID] = data
	return nil
}

func (c *memorySessionCache) Get(_ context.Context, id string) (*model.QuizSession, error) {
	c.mu.RLock()
	data, ok := c.sessions[id]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var session model.QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *memorySessionCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, id)
	return nil
}
