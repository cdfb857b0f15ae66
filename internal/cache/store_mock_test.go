package cache

import (
	"context"
	"sync"
	"time"
)

// Ensure, that StoreMock does implement Store.
var _ Store = &StoreMock{}

// StoreMock is a mock implementation of Store.
type StoreMock struct {
	GetFunc           func(ctx context.Context, key string) (string, bool, error)
	SetWithExpiryFunc func(ctx context.Context, key string, ttl time.Duration, value string) error

	calls struct {
		Get []struct {
			Key string
		}
		SetWithExpiry []struct {
			Key   string
			TTL   time.Duration
			Value string
		}
	}
	lockGet           sync.RWMutex
	lockSetWithExpiry sync.RWMutex
}

func (m *StoreMock) Get(ctx context.Context, key string) (string, bool, error) {
	if m.GetFunc == nil {
		panic("StoreMock.GetFunc: method is nil but Store.Get was just called")
	}
	m.lockGet.Lock()
	m.calls.Get = append(m.calls.Get, struct{ Key string }{Key: key})
	m.lockGet.Unlock()
	return m.GetFunc(ctx, key)
}

func (m *StoreMock) GetCalls() []struct{ Key string } {
	m.lockGet.RLock()
	defer m.lockGet.RUnlock()
	return m.calls.Get
}

func (m *StoreMock) SetWithExpiry(ctx context.Context, key string, ttl time.Duration, value string) error {
	if m.SetWithExpiryFunc == nil {
		panic("StoreMock.SetWithExpiryFunc: method is nil but Store.SetWithExpiry was just called")
	}
	m.lockSetWithExpiry.Lock()
	m.calls.SetWithExpiry = append(m.calls.SetWithExpiry, struct {
		Key   string
		TTL   time.Duration
		Value string
	}{Key: key, TTL: ttl, Value: value})
	m.lockSetWithExpiry.Unlock()
	return m.SetWithExpiryFunc(ctx, key, ttl, value)
}

func (m *StoreMock) SetWithExpiryCalls() []struct {
	Key   string
	TTL   time.Duration
	Value string
} {
	m.lockSetWithExpiry.RLock()
	defer m.lockSetWithExpiry.RUnlock()
	return m.calls.SetWithExpiry
}
