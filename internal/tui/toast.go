package tui

import (
	"sync"
	"time"
)

const toastTTL = 3 * time.Second

type toast struct {
	Title   string
	Message string
	Seq     int
}

// toastBoard is the header notification area. Only the newest toast is
// shown; each one expires after toastTTL unless replaced earlier.
type toastBoard struct {
	mu      sync.Mutex
	current *toast
	seq     int
	fresh   bool
}

func newToastBoard() *toastBoard {
	return &toastBoard{}
}

// Notify implements Notifier
func (b *toastBoard) Notify(title, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	b.current = &toast{Title: title, Message: message, Seq: b.seq}
	b.fresh = true
}

// takeFresh returns the sequence number of a toast posted since the last
// call, so the shell can schedule its expiry exactly once
func (b *toastBoard) takeFresh() (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.fresh {
		return 0, false
	}
	b.fresh = false
	return b.seq, true
}

func (b *toastBoard) expire(seq int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current != nil && b.current.Seq == seq {
		b.current = nil
	}
}

func (b *toastBoard) Current() (toast, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return toast{}, false
	}
	return *b.current, true
}
