package objectstore

import (
	"context"
	"sync"
)

// Object is what Memory keeps per key.
type Object struct {
	Data        []byte
	ContentType string
}

// Memory keeps uploads in a map.
type Memory struct {
	mu      sync.Mutex
	Objects map[string]Object
	// Fail, when set, decides per key whether Upload returns an error.
	Fail func(key string) error
}

func NewMemory() *Memory {
	return &Memory{Objects: map[string]Object{}}
}

func (m *Memory) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if m.Fail != nil {
		if err := m.Fail(key); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = Object{Data: append([]byte(nil), data...), ContentType: contentType}
	return nil
}

func (m *Memory) Close() error { return nil }
