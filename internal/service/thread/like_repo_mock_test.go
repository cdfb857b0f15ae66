package thread

import (
	"context"
	"sync"
)

var _ likeRepo = &likeRepoMock{}

type likeRepoMock struct {
	LikedThreadsFunc func(ctx context.Context, userID int64, threadIDs []int64) (map[int64]bool, error)

	calls struct {
		LikedThreads []struct {
			UserID    int64
			ThreadIDs []int64
		}
	}
	lockLikedThreads sync.RWMutex
}

func (mock *likeRepoMock) LikedThreads(ctx context.Context, userID int64, threadIDs []int64) (map[int64]bool, error) {
	if mock.LikedThreadsFunc == nil {
		panic("likeRepoMock.LikedThreadsFunc: method is nil but likeRepo.LikedThreads was just called")
	}
	callInfo := struct {
		UserID    int64
		ThreadIDs []int64
	}{UserID: userID, ThreadIDs: threadIDs}
	mock.lockLikedThreads.Lock()
	mock.calls.LikedThreads = append(mock.calls.LikedThreads, callInfo)
	mock.lockLikedThreads.Unlock()
	return mock.LikedThreadsFunc(ctx, userID, threadIDs)
}

func (mock *likeRepoMock) LikedThreadsCalls() []struct {
	UserID    int64
	ThreadIDs []int64
} {
	mock.lockLikedThreads.RLock()
	calls := mock.calls.LikedThreads
	mock.lockLikedThreads.RUnlock()
	return calls
}
