package app

import (
	"context"
	"sync"

	"petasare/internal/domain"
)

const defaultInboxSize = 32

// Inbox keeps the most recent notifications until a client drains them.
type Inbox struct {
	mu    sync.Mutex
	size  int
	items []domain.Notification
}

func NewInbox(size int) *Inbox {
	if size <= 0 {
		size = defaultInboxSize
	}
	return &Inbox{size: size}
}

func (i *Inbox) Notify(_ context.Context, n domain.Notification) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.items = append(i.items, n)
	if over := len(i.items) - i.size; over > 0 {
		i.items = append([]domain.Notification(nil), i.items[over:]...)
	}
}

// Drain returns pending notifications oldest first and empties the inbox.
func (i *Inbox) Drain() []domain.Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.items
	i.items = nil
	if out == nil {
		out = []domain.Notification{}
	}
	return out
}

// Notifiers fans a notification out to every member.
type Notifiers []domain.Notifier

func (ns Notifiers) Notify(ctx context.Context, n domain.Notification) {
	for _, x := range ns {
		x.Notify(ctx, n)
	}
}
