package chat

import (
	"testing"
	"time"

	"github.com/strrl/elevate/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestNewTranscriptGreets(t *testing.T) {
	tr := NewTranscript(t0)
	require.Equal(t, 1, tr.Len())
	first := tr.Messages()[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, Greeting, first.Content)
	assert.Equal(t, models.SenderAssistant, first.Sender)
	assert.False(t, tr.Pending())
}

func TestSendRejectsBlank(t *testing.T) {
	tr := NewTranscript(t0)
	for _, in := range []string{"", " ", "\t\n  "} {
		_, err := tr.Send(in, t0)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	assert.Equal(t, 1, tr.Len())
	assert.False(t, tr.Pending())
}

func TestSendThenReply(t *testing.T) {
	tr := NewTranscript(t0)

	msg, err := tr.Send("Hello", t0)
	require.NoError(t, err)
	assert.Equal(t, 2, msg.ID)
	assert.Equal(t, "Hello", msg.Content)
	assert.Equal(t, models.SenderUser, msg.Sender)
	assert.True(t, tr.Pending())

	reply := tr.AppendReply("fixed", t0.Add(2*time.Second))
	assert.Equal(t, 3, reply.ID)
	assert.Equal(t, models.SenderAssistant, reply.Sender)
	assert.False(t, tr.Pending())
	assert.Equal(t, 3, tr.Len())

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, reply, last)
}

func TestPendingCoversEveryOutstandingReply(t *testing.T) {
	tr := NewTranscript(t0)
	_, _ = tr.Send("one", t0)
	_, _ = tr.Send("two", t0)

	tr.AppendReply("r1", t0)
	assert.True(t, tr.Pending(), "second reply still outstanding")
	tr.AppendReply("r2", t0)
	assert.False(t, tr.Pending())

	// Extra replies (queued from an earlier view) never drive the count negative
	tr.AppendReply("late", t0)
	assert.False(t, tr.Pending())

	ids := []int{}
	for _, m := range tr.Messages() {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids)
}

func TestMessagesIsACopy(t *testing.T) {
	tr := NewTranscript(t0)
	msgs := tr.Messages()
	msgs[0].Content = "changed"
	assert.Equal(t, Greeting, tr.Messages()[0].Content)
}

func TestStubs(t *testing.T) {
	tr := NewTranscript(t0)
	assert.True(t, tr.ToggleRecording())
	assert.True(t, tr.Recording())
	assert.False(t, tr.ToggleRecording())

	tr.Attach(models.FileMeta{Name: "deck.pdf", Size: 10})
	require.Len(t, tr.Attachments(), 1)
	assert.Equal(t, 1, tr.Len(), "attaching does not touch the transcript")
}

func TestParseLatePolicy(t *testing.T) {
	p, err := ParseLatePolicy("deliver")
	require.NoError(t, err)
	assert.Equal(t, DeliverLate, p)

	p, err = ParseLatePolicy(" DROP ")
	require.NoError(t, err)
	assert.Equal(t, DropLate, p)

	_, err = ParseLatePolicy("queue")
	assert.Error(t, err)
}

func TestMailbox(t *testing.T) {
	var box Mailbox
	assert.Empty(t, box.Drain())

	box.Put(Reply{TaskID: "a"})
	box.Put(Reply{TaskID: "b"})
	assert.Equal(t, 2, box.Len())

	got := box.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].TaskID)
	assert.Equal(t, "b", got[1].TaskID)
	assert.Equal(t, 0, box.Len())
}
