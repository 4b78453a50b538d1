package store

import (
	"sync"

	"github.com/sovenok-bot/sovenok/internal/domain"
)

// ActiveRequests serializes in-flight requests per conversation thread: one
// request per UserKey at a time, threads never block each other. The lock
// below guards the map only, never the backend call itself.
type ActiveRequests struct {
	mu       sync.Mutex
	inFlight map[domain.UserKey]struct{}
}

func NewActiveRequests() *ActiveRequests {
	return &ActiveRequests{inFlight: make(map[domain.UserKey]struct{})}
}

// TryAcquire claims the thread, reporting false if a request is already in
// flight for it.
func (a *ActiveRequests) TryAcquire(key domain.UserKey) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, busy := a.inFlight[key]; busy {
		return false
	}
	a.inFlight[key] = struct{}{}
	return true
}

// Release frees the thread for the next request.
func (a *ActiveRequests) Release(key domain.UserKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.inFlight, key)
}
