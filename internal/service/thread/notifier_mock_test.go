package thread

import (
	"context"
	"sync"

	"github.com/heartmarshall/threads-backend/internal/domain"
	"github.com/heartmarshall/threads-backend/internal/service/notification"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyFunc     func(ctx context.Context, userID int64, e domain.Event, persist bool) (domain.NotificationPayload, error)
	NotifyManyFunc func(ctx context.Context, recipients []int64, build func(userID int64) domain.Event, persist bool) notification.BatchResult

	calls struct {
		Notify []struct {
			UserID  int64
			E       domain.Event
			Persist bool
		}
		NotifyMany []struct {
			Recipients []int64
			Build      func(userID int64) domain.Event
			Persist    bool
		}
	}
	lockNotify     sync.RWMutex
	lockNotifyMany sync.RWMutex
}

func (mock *notifierMock) Notify(ctx context.Context, userID int64, e domain.Event, persist bool) (domain.NotificationPayload, error) {
	if mock.NotifyFunc == nil {
		panic("notifierMock.NotifyFunc: method is nil but notifier.Notify was just called")
	}
	callInfo := struct {
		UserID  int64
		E       domain.Event
		Persist bool
	}{UserID: userID, E: e, Persist: persist}
	mock.lockNotify.Lock()
	mock.calls.Notify = append(mock.calls.Notify, callInfo)
	mock.lockNotify.Unlock()
	return mock.NotifyFunc(ctx, userID, e, persist)
}

func (mock *notifierMock) NotifyCalls() []struct {
	UserID  int64
	E       domain.Event
	Persist bool
} {
	mock.lockNotify.RLock()
	calls := mock.calls.Notify
	mock.lockNotify.RUnlock()
	return calls
}

func (mock *notifierMock) NotifyMany(ctx context.Context, recipients []int64, build func(userID int64) domain.Event, persist bool) notification.BatchResult {
	if mock.NotifyManyFunc == nil {
		panic("notifierMock.NotifyManyFunc: method is nil but notifier.NotifyMany was just called")
	}
	callInfo := struct {
		Recipients []int64
		Build      func(userID int64) domain.Event
		Persist    bool
	}{Recipients: recipients, Build: build, Persist: persist}
	mock.lockNotifyMany.Lock()
	mock.calls.NotifyMany = append(mock.calls.NotifyMany, callInfo)
	mock.lockNotifyMany.Unlock()
	return mock.NotifyManyFunc(ctx, recipients, build, persist)
}

func (mock *notifierMock) NotifyManyCalls() []struct {
	Recipients []int64
	Build      func(userID int64) domain.Event
	Persist    bool
} {
	mock.lockNotifyMany.RLock()
	calls := mock.calls.NotifyMany
	mock.lockNotifyMany.RUnlock()
	return calls
}
