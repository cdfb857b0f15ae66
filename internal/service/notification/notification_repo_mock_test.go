package notification

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/threads-backend/internal/domain"
)

var _ notificationRepo = &notificationRepoMock{}

type notificationRepoMock struct {
	CreateFunc           func(ctx context.Context, n domain.Notification) (domain.Notification, error)
	ListFunc             func(ctx context.Context, userID int64, q domain.ListQuery) ([]domain.Notification, int, error)
	CountUnreadFunc      func(ctx context.Context, userID int64) (int, error)
	MarkReadFunc         func(ctx context.Context, userID int64, id int64) error
	MarkAllReadFunc      func(ctx context.Context, userID int64) (int, error)
	DeleteFunc           func(ctx context.Context, userID int64, id int64) error
	DeleteAllFunc        func(ctx context.Context, userID int64) (int, error)
	DeleteReadBeforeFunc func(ctx context.Context, before time.Time) (int, error)

	calls struct {
		Create []struct {
			N domain.Notification
		}
		List []struct {
			UserID int64
			Q      domain.ListQuery
		}
		CountUnread []struct {
			UserID int64
		}
		MarkRead []struct {
			UserID int64
			ID     int64
		}
		MarkAllRead []struct {
			UserID int64
		}
		Delete []struct {
			UserID int64
			ID     int64
		}
		DeleteAll []struct {
			UserID int64
		}
		DeleteReadBefore []struct {
			Before time.Time
		}
	}
	lockCreate           sync.RWMutex
	lockList             sync.RWMutex
	lockCountUnread      sync.RWMutex
	lockMarkRead         sync.RWMutex
	lockMarkAllRead      sync.RWMutex
	lockDelete           sync.RWMutex
	lockDeleteAll        sync.RWMutex
	lockDeleteReadBefore sync.RWMutex
}

func (mock *notificationRepoMock) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	if mock.CreateFunc == nil {
		panic("notificationRepoMock.CreateFunc: method is nil but notificationRepo.Create was just called")
	}
	callInfo := struct {
		N domain.Notification
	}{N: n}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, n)
}

func (mock *notificationRepoMock) CreateCalls() []struct {
	N domain.Notification
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *notificationRepoMock) List(ctx context.Context, userID int64, q domain.ListQuery) ([]domain.Notification, int, error) {
	if mock.ListFunc == nil {
		panic("notificationRepoMock.ListFunc: method is nil but notificationRepo.List was just called")
	}
	callInfo := struct {
		UserID int64
		Q      domain.ListQuery
	}{UserID: userID, Q: q}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, userID, q)
}

func (mock *notificationRepoMock) ListCalls() []struct {
	UserID int64
	Q      domain.ListQuery
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *notificationRepoMock) CountUnread(ctx context.Context, userID int64) (int, error) {
	if mock.CountUnreadFunc == nil {
		panic("notificationRepoMock.CountUnreadFunc: method is nil but notificationRepo.CountUnread was just called")
	}
	callInfo := struct {
		UserID int64
	}{UserID: userID}
	mock.lockCountUnread.Lock()
	mock.calls.CountUnread = append(mock.calls.CountUnread, callInfo)
	mock.lockCountUnread.Unlock()
	return mock.CountUnreadFunc(ctx, userID)
}

func (mock *notificationRepoMock) CountUnreadCalls() []struct {
	UserID int64
} {
	mock.lockCountUnread.RLock()
	calls := mock.calls.CountUnread
	mock.lockCountUnread.RUnlock()
	return calls
}

func (mock *notificationRepoMock) MarkRead(ctx context.Context, userID int64, id int64) error {
	if mock.MarkReadFunc == nil {
		panic("notificationRepoMock.MarkReadFunc: method is nil but notificationRepo.MarkRead was just called")
	}
	callInfo := struct {
		UserID int64
		ID     int64
	}{UserID: userID, ID: id}
	mock.lockMarkRead.Lock()
	mock.calls.MarkRead = append(mock.calls.MarkRead, callInfo)
	mock.lockMarkRead.Unlock()
	return mock.MarkReadFunc(ctx, userID, id)
}

func (mock *notificationRepoMock) MarkReadCalls() []struct {
	UserID int64
	ID     int64
} {
	mock.lockMarkRead.RLock()
	calls := mock.calls.MarkRead
	mock.lockMarkRead.RUnlock()
	return calls
}

func (mock *notificationRepoMock) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	if mock.MarkAllReadFunc == nil {
		panic("notificationRepoMock.MarkAllReadFunc: method is nil but notificationRepo.MarkAllRead was just called")
	}
	callInfo := struct {
		UserID int64
	}{UserID: userID}
	mock.lockMarkAllRead.Lock()
	mock.calls.MarkAllRead = append(mock.calls.MarkAllRead, callInfo)
	mock.lockMarkAllRead.Unlock()
	return mock.MarkAllReadFunc(ctx, userID)
}

func (mock *notificationRepoMock) MarkAllReadCalls() []struct {
	UserID int64
} {
	mock.lockMarkAllRead.RLock()
	calls := mock.calls.MarkAllRead
	mock.lockMarkAllRead.RUnlock()
	return calls
}

func (mock *notificationRepoMock) Delete(ctx context.Context, userID int64, id int64) error {
	if mock.DeleteFunc == nil {
		panic("notificationRepoMock.DeleteFunc: method is nil but notificationRepo.Delete was just called")
	}
	callInfo := struct {
		UserID int64
		ID     int64
	}{UserID: userID, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID, id)
}

func (mock *notificationRepoMock) DeleteCalls() []struct {
	UserID int64
	ID     int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *notificationRepoMock) DeleteAll(ctx context.Context, userID int64) (int, error) {
	if mock.DeleteAllFunc == nil {
		panic("notificationRepoMock.DeleteAllFunc: method is nil but notificationRepo.DeleteAll was just called")
	}
	callInfo := struct {
		UserID int64
	}{UserID: userID}
	mock.lockDeleteAll.Lock()
	mock.calls.DeleteAll = append(mock.calls.DeleteAll, callInfo)
	mock.lockDeleteAll.Unlock()
	return mock.DeleteAllFunc(ctx, userID)
}

func (mock *notificationRepoMock) DeleteAllCalls() []struct {
	UserID int64
} {
	mock.lockDeleteAll.RLock()
	calls := mock.calls.DeleteAll
	mock.lockDeleteAll.RUnlock()
	return calls
}

func (mock *notificationRepoMock) DeleteReadBefore(ctx context.Context, before time.Time) (int, error) {
	if mock.DeleteReadBeforeFunc == nil {
		panic("notificationRepoMock.DeleteReadBeforeFunc: method is nil but notificationRepo.DeleteReadBefore was just called")
	}
	callInfo := struct {
		Before time.Time
	}{Before: before}
	mock.lockDeleteReadBefore.Lock()
	mock.calls.DeleteReadBefore = append(mock.calls.DeleteReadBefore, callInfo)
	mock.lockDeleteReadBefore.Unlock()
	return mock.DeleteReadBeforeFunc(ctx, before)
}

func (mock *notificationRepoMock) DeleteReadBeforeCalls() []struct {
	Before time.Time
} {
	mock.lockDeleteReadBefore.RLock()
	calls := mock.calls.DeleteReadBefore
	mock.lockDeleteReadBefore.RUnlock()
	return calls
}
