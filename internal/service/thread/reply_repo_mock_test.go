package thread

import (
	"context"
	"sync"

	"github.com/heartmarshall/threads-backend/internal/domain"
)

var _ replyRepo = &replyRepoMock{}

type replyRepoMock struct {
	ListFunc   func(ctx context.Context, threadID int64, q domain.ListQuery) ([]domain.ThreadReply, int, error)
	CreateFunc func(ctx context.Context, threadID int64, authorID int64, content string) (domain.ThreadReply, error)

	calls struct {
		List []struct {
			ThreadID int64
			Q        domain.ListQuery
		}
		Create []struct {
			ThreadID int64
			AuthorID int64
			Content  string
		}
	}
	lockList   sync.RWMutex
	lockCreate sync.RWMutex
}

func (mock *replyRepoMock) List(ctx context.Context, threadID int64, q domain.ListQuery) ([]domain.ThreadReply, int, error) {
	if mock.ListFunc == nil {
		panic("replyRepoMock.ListFunc: method is nil but replyRepo.List was just called")
	}
	callInfo := struct {
		ThreadID int64
		Q        domain.ListQuery
	}{ThreadID: threadID, Q: q}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, threadID, q)
}

func (mock *replyRepoMock) ListCalls() []struct {
	ThreadID int64
	Q        domain.ListQuery
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *replyRepoMock) Create(ctx context.Context, threadID int64, authorID int64, content string) (domain.ThreadReply, error) {
	if mock.CreateFunc == nil {
		panic("replyRepoMock.CreateFunc: method is nil but replyRepo.Create was just called")
	}
	callInfo := struct {
		ThreadID int64
		AuthorID int64
		Content  string
	}{ThreadID: threadID, AuthorID: authorID, Content: content}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, threadID, authorID, content)
}

func (mock *replyRepoMock) CreateCalls() []struct {
	ThreadID int64
	AuthorID int64
	Content  string
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
