package realtime

import (
	"log/slog"
	"sync"

	"github.com/heartmarshall/threads-backend/internal/metrics"
)

// Registry maps user ids to their live sessions.
//
// Users are spread over shards, each guarded by its own RWMutex, so that
// operations on one user serialize while users on different shards never
// contend. A user with no sessions has no entry at all.
type Registry struct {
	shards []*shard
	log    *slog.Logger
}

type shard struct {
	mu    sync.RWMutex
	users map[int64]map[*Session]struct{}
}

// NewRegistry creates a registry with n shards (at least one).
func NewRegistry(n int, log *slog.Logger) *Registry {
	if n < 1 {
		n = 1
	}
	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = &shard{users: make(map[int64]map[*Session]struct{})}
	}
	return &Registry{
		shards: shards,
		log:    log.With("component", "registry"),
	}
}

func (r *Registry) shardFor(userID int64) *shard {
	return r.shards[uint64(userID)%uint64(len(r.shards))]
}

// Register adds s to the sessions of userID. Registering the same session
// again is a no-op.
func (r *Registry) Register(userID int64, s *Session) error {
	if s.UserID() != userID {
		return ErrForeignSession
	}
	if !s.Alive() {
		return ErrSessionClosed
	}

	sh := r.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	set, ok := sh.users[userID]
	if !ok {
		set = make(map[*Session]struct{})
		sh.users[userID] = set
		metrics.ConnectedUsers.Inc()
	}
	if _, dup := set[s]; dup {
		return nil
	}
	set[s] = struct{}{}
	metrics.LiveSessions.Inc()

	return nil
}

// Unregister removes s from the sessions of userID and drops the user
// entry once it holds no sessions. Unknown sessions are ignored.
func (r *Registry) Unregister(userID int64, s *Session) {
	sh := r.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	set, ok := sh.users[userID]
	if !ok {
		return
	}
	if _, ok := set[s]; !ok {
		return
	}
	delete(set, s)
	metrics.LiveSessions.Dec()

	if len(set) == 0 {
		delete(sh.users, userID)
		metrics.ConnectedUsers.Dec()
	}
}

// Broadcast queues msg on every session of userID registered at call time
// and returns how many accepted it. Closed and backed-up sessions are
// skipped. It never blocks on the network.
func (r *Registry) Broadcast(userID int64, msg []byte) int {
	sh := r.shardFor(userID)
	sh.mu.RLock()
	set := sh.users[userID]
	targets := make([]*Session, 0, len(set))
	for s := range set {
		targets = append(targets, s)
	}
	sh.mu.RUnlock()

	delivered := 0
	for _, s := range targets {
		if err := s.Send(msg); err != nil {
			metrics.Deliveries.WithLabelValues(metrics.DeliverySkipped).Inc()
			r.log.Debug("skip session",
				slog.Int64("user_id", userID),
				slog.String("session_id", s.ID().String()),
				slog.String("reason", err.Error()),
			)
			continue
		}
		metrics.Deliveries.WithLabelValues(metrics.DeliverySent).Inc()
		delivered++
	}

	return delivered
}

// Sessions returns the number of sessions registered for userID.
func (r *Registry) Sessions(userID int64) int {
	sh := r.shardFor(userID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return len(sh.users[userID])
}

// Connected reports whether userID has an entry in the registry.
func (r *Registry) Connected(userID int64) bool {
	sh := r.shardFor(userID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	_, ok := sh.users[userID]
	return ok
}

// Users returns the number of users with at least one session.
func (r *Registry) Users() int {
	n := 0
	for _, sh := range r.shards {
		sh.mu.RLock()
		n += len(sh.users)
		sh.mu.RUnlock()
	}
	return n
}

// CloseAll closes every registered session with code and reason.
// Sessions unregister themselves as their connections shut down.
func (r *Registry) CloseAll(code int, reason string) {
	for _, sh := range r.shards {
		sh.mu.RLock()
		for _, set := range sh.users {
			for s := range set {
				s.CloseWith(code, reason)
			}
		}
		sh.mu.RUnlock()
	}
}
