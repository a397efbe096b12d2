// Package chat holds the conversation with the simulated assistant.
package chat

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/strrl/elevate/pkg/models"
)

// Greeting opens every new transcript
const Greeting = "Hello! I'm your AI business consultant. How can I assist you today?"

// ErrEmptyMessage is returned for blank input. The UI drops it silently.
var ErrEmptyMessage = errors.New("empty message")

// Transcript is the ordered, append-only list of messages of one chat view
type Transcript struct {
	messages    []models.Message
	outstanding int
	recording   bool
	attachments []models.FileMeta
}

// NewTranscript starts a conversation with the assistant's greeting
func NewTranscript(now time.Time) *Transcript {
	t := &Transcript{}
	t.append(Greeting, models.SenderAssistant, now)
	return t
}

func (t *Transcript) append(content string, sender models.Sender, now time.Time) models.Message {
	msg := models.Message{
		ID:        len(t.messages) + 1,
		Content:   content,
		Sender:    sender,
		Timestamp: now,
	}
	t.messages = append(t.messages, msg)
	return msg
}

// Send appends a user message and marks a reply as outstanding
func (t *Transcript) Send(text string, now time.Time) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, ErrEmptyMessage
	}
	msg := t.append(text, models.SenderUser, now)
	t.outstanding++
	return msg, nil
}

// AppendReply appends an assistant message and settles one outstanding reply
func (t *Transcript) AppendReply(text string, now time.Time) models.Message {
	t.Settle()
	return t.append(text, models.SenderAssistant, now)
}

// Settle marks one outstanding reply as no longer expected
func (t *Transcript) Settle() {
	if t.outstanding > 0 {
		t.outstanding--
	}
}

// Pending reports whether any reply is still outstanding
func (t *Transcript) Pending() bool {
	return t.outstanding > 0
}

// Messages returns a copy of the transcript
func (t *Transcript) Messages() []models.Message {
	out := make([]models.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len is the number of messages
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the newest message
func (t *Transcript) Last() (models.Message, bool) {
	if len(t.messages) == 0 {
		return models.Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// ToggleRecording flips the voice recording indicator. No audio is captured.
func (t *Transcript) ToggleRecording() bool {
	t.recording = !t.recording
	return t.recording
}

// Recording reports the voice recording indicator
func (t *Transcript) Recording() bool {
	return t.recording
}

// Attach records an acknowledged upload. Nothing is read or stored.
func (t *Transcript) Attach(f models.FileMeta) {
	t.attachments = append(t.attachments, f)
}

// Attachments lists files acknowledged during this visit
func (t *Transcript) Attachments() []models.FileMeta {
	return append([]models.FileMeta(nil), t.attachments...)
}

// LatePolicy decides the fate of a reply whose chat view is gone
type LatePolicy string

const (
	// DropLate discards the reply and cancels its timer on teardown
	DropLate LatePolicy = "drop"
	// DeliverLate keeps the timer running and hands the reply to the next chat view
	DeliverLate LatePolicy = "deliver"
)

// ParseLatePolicy parses "drop" or "deliver"
func ParseLatePolicy(s string) (LatePolicy, error) {
	switch LatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case DropLate:
		return DropLate, nil
	case DeliverLate:
		return DeliverLate, nil
	default:
		return DropLate, fmt.Errorf("unknown late reply policy %q", s)
	}
}

// Reply is an assistant message waiting for a chat view
type Reply struct {
	TaskID  string
	Content string
	DueAt   time.Time
}

// Mailbox queues replies that outlived their chat view. It is owned by the
// shell, which survives page switches.
type Mailbox struct {
	mu      sync.Mutex
	replies []Reply
}

// Put queues a reply
func (b *Mailbox) Put(r Reply) {
	b.mu.Lock()
	b.replies = append(b.replies, r)
	b.mu.Unlock()
}

// Drain returns and clears the queued replies in arrival order
func (b *Mailbox) Drain() []Reply {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.replies
	b.replies = nil
	return out
}

// Len is the number of queued replies
func (b *Mailbox) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.replies)
}
