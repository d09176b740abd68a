package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/library_management_app/internal/core/ports/infra"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type recordingNotifier struct {
	notices chan infra.DueDateNotice
	err     error
}

func newRecordingNotifier(err error) *recordingNotifier {
	return &recordingNotifier{notices: make(chan infra.DueDateNotice, 16), err: err}
}

func (n *recordingNotifier) NotifyDueDate(ctx context.Context, notice infra.DueDateNotice) error {
	n.notices <- notice
	return n.err
}
