package notification

import (
	"sync"
)

var _ broadcaster = &broadcasterMock{}

type broadcasterMock struct {
	BroadcastFunc func(userID int64, msg []byte) int

	calls struct {
		Broadcast []struct {
			UserID int64
			Msg    []byte
		}
	}
	lockBroadcast sync.RWMutex
}

func (mock *broadcasterMock) Broadcast(userID int64, msg []byte) int {
	if mock.BroadcastFunc == nil {
		panic("broadcasterMock.BroadcastFunc: method is nil but broadcaster.Broadcast was just called")
	}
	callInfo := struct {
		UserID int64
		Msg    []byte
	}{UserID: userID, Msg: msg}
	mock.lockBroadcast.Lock()
	mock.calls.Broadcast = append(mock.calls.Broadcast, callInfo)
	mock.lockBroadcast.Unlock()
	return mock.BroadcastFunc(userID, msg)
}

func (mock *broadcasterMock) BroadcastCalls() []struct {
	UserID int64
	Msg    []byte
} {
	mock.lockBroadcast.RLock()
	calls := mock.calls.Broadcast
	mock.lockBroadcast.RUnlock()
	return calls
}
