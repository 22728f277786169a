package notification

import (
	"context"
	"fmt"
	"sync"
)

type FakeDispatcher struct {
	Sent        []Message
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeDispatcher() *FakeDispatcher {
	return &FakeDispatcher{}
}

func (d *FakeDispatcher) Dispatch(ctx context.Context, message Message) error {
	if d.ReturnError {
		return fmt.Errorf("could not dispatch message to %v", message.To)
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	d.Sent = append(d.Sent, message)
	return nil
}

func (d *FakeDispatcher) SentCount() int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return len(d.Sent)
}

func (d *FakeDispatcher) LastSent() Message {
	d.lock.Lock()
	defer d.lock.Unlock()
	if len(d.Sent) == 0 {
		panic("no messages have been dispatched")
	}
	return d.Sent[len(d.Sent)-1]
}
