package notify

import (
	"fmt"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

const DefaultTTL = 5 * time.Second

type NotificationType string

const (
	TypeSuccess NotificationType = "success"
	TypeError   NotificationType = "error"
	TypeInfo    NotificationType = "info"
)

type Notification struct {
	ID      int64
	Type    NotificationType
	Message string
}

// Snapshot is an immutable view of the active notification list at a
// given version. Versions increase by one on every mutation, so a
// consumer can detect missed updates by comparing versions.
type Snapshot struct {
	Version       uint64
	Notifications []Notification
}

type Config struct {
	TTL time.Duration
}

type timerHandle interface {
	Stop() bool
}

// Center owns a transient, ordered notification list. A single timer
// backs expiry: every mutation stops and re-arms it, and when it fires
// the oldest entry is dismissed. An entry therefore lives for at least
// TTL after the most recent change to the list, not TTL after its own
// arrival.
type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries []Notification
	nextID  int64
	version uint64
	timer   timerHandle
	arm     func(d time.Duration, fn func()) timerHandle
	subs    map[int]chan Snapshot
	nextSub int
	closed  bool
}

func NewCenter(cfg Config) *Center {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl: ttl,
		arm: func(d time.Duration, fn func()) timerHandle {
			return time.AfterFunc(d, fn)
		},
		subs: map[int]chan Snapshot{},
	}
}

// Notify appends a notification and returns its id. Ids are monotonic
// for the lifetime of the center.
func (c *Center) Notify(notificationType NotificationType, message string) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("notify: center is not configured")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, fmt.Errorf("notify: center is closed")
	}

	c.nextID++
	entry := Notification{
		ID:      c.nextID,
		Type:    notificationType,
		Message: message,
	}
	c.entries = append(c.entries, entry)
	c.mutatedLocked()
	return entry.ID, nil
}

// NotifyError appends an error-derived notification, picking the
// notification type from the error's category.
func (c *Center) NotifyError(err error) (int64, error) {
	if err == nil {
		return 0, fmt.Errorf("notify: error is required")
	}
	return c.Notify(TypeForError(err), err.Error())
}

// Active returns a snapshot of the current list, oldest first.
func (c *Center) Active() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers a consumer for mutation snapshots. Snapshots are
// delivered best-effort: a slow consumer misses intermediate versions
// rather than blocking the center. The returned cancel func releases
// the subscription.
func (c *Center) Subscribe() (<-chan Snapshot, func()) {
	if c == nil {
		ch := make(chan Snapshot)
		close(ch)
		return ch, func() {}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Snapshot, 8)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Close stops the expiry timer and closes all subscriber channels. The
// center rejects further notifications once closed.
func (c *Center) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	for id, sub := range c.subs {
		delete(c.subs, id)
		close(sub)
	}
}

// mutatedLocked records a list change: bump the version, publish a
// snapshot, and re-arm the expiry timer. Callers hold c.mu.
func (c *Center) mutatedLocked() {
	c.version++
	snapshot := c.snapshotLocked()
	for _, sub := range c.subs {
		select {
		case sub <- snapshot:
		default:
		}
	}

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if len(c.entries) == 0 {
		return
	}
	c.timer = c.arm(c.ttl, c.expireOldest)
}

func (c *Center) expireOldest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || len(c.entries) == 0 {
		return
	}
	c.entries = append([]Notification(nil), c.entries[1:]...)
	c.mutatedLocked()
}

func (c *Center) snapshotLocked() Snapshot {
	return Snapshot{
		Version:       c.version,
		Notifications: append([]Notification(nil), c.entries...),
	}
}

// TypeForError maps an error to the notification type a UI layer would
// render it with. Input and validation failures read as informational,
// everything else as an error.
func TypeForError(err error) NotificationType {
	if err == nil {
		return TypeInfo
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		switch richErr.Category {
		case goerrors.CategoryBadInput, goerrors.CategoryValidation:
			return TypeInfo
		}
	}
	return TypeError
}
