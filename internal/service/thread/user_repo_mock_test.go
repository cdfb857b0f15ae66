package thread

import (
	"context"
	"sync"

	"github.com/heartmarshall/threads-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	ListByUsernamesFunc func(ctx context.Context, names []string) ([]domain.User, error)

	calls struct {
		ListByUsernames []struct {
			Names []string
		}
	}
	lockListByUsernames sync.RWMutex
}

func (mock *userRepoMock) ListByUsernames(ctx context.Context, names []string) ([]domain.User, error) {
	if mock.ListByUsernamesFunc == nil {
		panic("userRepoMock.ListByUsernamesFunc: method is nil but userRepo.ListByUsernames was just called")
	}
	callInfo := struct {
		Names []string
	}{Names: names}
	mock.lockListByUsernames.Lock()
	mock.calls.ListByUsernames = append(mock.calls.ListByUsernames, callInfo)
	mock.lockListByUsernames.Unlock()
	return mock.ListByUsernamesFunc(ctx, names)
}

func (mock *userRepoMock) ListByUsernamesCalls() []struct {
	Names []string
} {
	mock.lockListByUsernames.RLock()
	calls := mock.calls.ListByUsernames
	mock.lockListByUsernames.RUnlock()
	return calls
}
