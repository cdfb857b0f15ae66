package thread

import (
	"context"
	"sync"

	"github.com/heartmarshall/threads-backend/internal/domain"
)

var _ threadRepo = &threadRepoMock{}

type threadRepoMock struct {
	ListFunc     func(ctx context.Context, f domain.ThreadFilter) ([]domain.Thread, int, error)
	GetByIDFunc  func(ctx context.Context, id int64) (domain.Thread, error)
	AuthorIDFunc func(ctx context.Context, id int64) (int64, error)
	CreateFunc   func(ctx context.Context, authorID int64, title string, content string, image *string) (domain.Thread, error)

	calls struct {
		List []struct {
			F domain.ThreadFilter
		}
		GetByID []struct {
			ID int64
		}
		AuthorID []struct {
			ID int64
		}
		Create []struct {
			AuthorID int64
			Title    string
			Content  string
			Image    *string
		}
	}
	lockList     sync.RWMutex
	lockGetByID  sync.RWMutex
	lockAuthorID sync.RWMutex
	lockCreate   sync.RWMutex
}

func (mock *threadRepoMock) List(ctx context.Context, f domain.ThreadFilter) ([]domain.Thread, int, error) {
	if mock.ListFunc == nil {
		panic("threadRepoMock.ListFunc: method is nil but threadRepo.List was just called")
	}
	callInfo := struct {
		F domain.ThreadFilter
	}{F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *threadRepoMock) ListCalls() []struct {
	F domain.ThreadFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *threadRepoMock) GetByID(ctx context.Context, id int64) (domain.Thread, error) {
	if mock.GetByIDFunc == nil {
		panic("threadRepoMock.GetByIDFunc: method is nil but threadRepo.GetByID was just called")
	}
	callInfo := struct {
		ID int64
	}{ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *threadRepoMock) GetByIDCalls() []struct {
	ID int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *threadRepoMock) AuthorID(ctx context.Context, id int64) (int64, error) {
	if mock.AuthorIDFunc == nil {
		panic("threadRepoMock.AuthorIDFunc: method is nil but threadRepo.AuthorID was just called")
	}
	callInfo := struct {
		ID int64
	}{ID: id}
	mock.lockAuthorID.Lock()
	mock.calls.AuthorID = append(mock.calls.AuthorID, callInfo)
	mock.lockAuthorID.Unlock()
	return mock.AuthorIDFunc(ctx, id)
}

func (mock *threadRepoMock) AuthorIDCalls() []struct {
	ID int64
} {
	mock.lockAuthorID.RLock()
	calls := mock.calls.AuthorID
	mock.lockAuthorID.RUnlock()
	return calls
}

func (mock *threadRepoMock) Create(ctx context.Context, authorID int64, title string, content string, image *string) (domain.Thread, error) {
	if mock.CreateFunc == nil {
		panic("threadRepoMock.CreateFunc: method is nil but threadRepo.Create was just called")
	}
	callInfo := struct {
		AuthorID int64
		Title    string
		Content  string
		Image    *string
	}{AuthorID: authorID, Title: title, Content: content, Image: image}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, authorID, title, content, image)
}

func (mock *threadRepoMock) CreateCalls() []struct {
	AuthorID int64
	Title    string
	Content  string
	Image    *string
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
