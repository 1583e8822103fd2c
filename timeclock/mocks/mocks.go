package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/carlsburger/gastrocore/timeclock"
)

// StatusSource is a mock for timeclock.StatusSource.
type StatusSource struct {
	mock.Mock
}

func (m *StatusSource) Status(ctx context.Context) (timeclock.Session, error) {
	args := m.Called(ctx)
	if sess, ok := args.Get(0).(timeclock.Session); ok {
		return sess, args.Error(1)
	}
	return timeclock.NoSession(), args.Error(1)
}

// ActionSender is a mock for timeclock.ActionSender.
type ActionSender struct {
	mock.Mock
}

func (m *ActionSender) Send(ctx context.Context, action timeclock.Action) (timeclock.Session, error) {
	args := m.Called(ctx, action)
	if sess, ok := args.Get(0).(timeclock.Session); ok {
		return sess, args.Error(1)
	}
	return timeclock.NoSession(), args.Error(1)
}

// Reporter is a mock for timeclock.Reporter.
type Reporter struct {
	mock.Mock
}

func (m *Reporter) Info(msg string)  { m.Called(msg) }
func (m *Reporter) Error(msg string) { m.Called(msg) }
