package scan

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"rollcall/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, flow *TeacherFlow, ctx context.Context, input io.Reader) ([]Outcome, error) {
	t.Helper()
	outcomes := make(chan Outcome)
	done := make(chan error, 1)
	go func() {
		done <- flow.Run(ctx, input, outcomes)
		close(outcomes)
	}()
	collected := []Outcome{}
	for outcome := range outcomes {
		collected = append(collected, outcome)
	}
	return collected, <-done
}

func TestTeacherFlow_Process(t *testing.T) {
	fake := newFakeTracker()
	client, store, _ := setup(t, fake, teacher())
	flow := NewTeacherFlow(client, store)
	var mutex sync.Mutex
	transitions := []TeacherState{}
	flow.OnTransition = func(_ int, state TeacherState) {
		mutex.Lock()
		defer mutex.Unlock()
		transitions = append(transitions, state)
	}

	malformed := flow.Process(context.Background(), "not a payload")
	assert.Equal(t, TeacherMalformed, malformed.State)
	assert.ErrorIs(t, malformed.Err, ErrMalformedPayload)
	assert.Zero(t, fake.submissions())

	confirmed := flow.Process(context.Background(), scanText(11, 7))
	assert.Equal(t, TeacherConfirmed, confirmed.State)
	assert.True(t, confirmed.Result.Recorded)

	assert.Equal(t, []TeacherState{
		TeacherDecoding, TeacherMalformed,
		TeacherDecoding, TeacherValidating, TeacherConfirmed,
	}, transitions)
}

func TestTeacherFlow_RunUntilEndOfInput(t *testing.T) {
	fake := newFakeTracker()
	client, store, _ := setup(t, fake, teacher())
	flow := NewTeacherFlow(client, store)

	input := strings.Join([]string{
		scanText(11, 7),
		"garbage",
		"",
		scanText(11, 8),
		scanText(11, 7),
	}, "\n")
	outcomes, err := collect(t, flow, context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, outcomes, 4)
	assert.Equal(t, TeacherIdle, flow.State())

	stats := flow.Stats()
	assert.Equal(t, Stats{Scanned: 4, Recorded: 2, AlreadyMarked: 1, Malformed: 1}, stats)
	assert.Equal(t, 3, fake.submissions())
}

func TestTeacherFlow_StopsWhenSessionEnds(t *testing.T) {
	fake := newFakeTracker()
	client, store, _ := setup(t, fake, teacher())
	flow := NewTeacherFlow(client, store)

	reader, writer := io.Pipe()
	defer writer.Close()
	go func() {
		writer.Write([]byte(scanText(11, 7) + "\n"))
		require.Eventually(t, func() bool { return flow.Stats().Recorded == 1 }, time.Second, 5*time.Millisecond)
		store.Logout()
	}()
	outcomes, err := collect(t, flow, context.Background(), reader)
	assert.ErrorIs(t, err, session.ErrNoSession)
	require.Len(t, outcomes, 1)
	assert.Equal(t, TeacherConfirmed, outcomes[0].State)
}

func TestTeacherFlow_StopsOnCancel(t *testing.T) {
	client, store, _ := setup(t, http.NotFoundHandler(), teacher())
	flow := NewTeacherFlow(client, store)
	reader, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outcomes, err := collect(t, flow, ctx, reader)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcomes)
}

func TestTeacherFlow_RequiresSession(t *testing.T) {
	client, store, _ := setup(t, newFakeTracker(), teacher())
	require.NoError(t, store.Logout())
	flow := NewTeacherFlow(client, store)
	_, err := collect(t, flow, context.Background(), strings.NewReader(scanText(1, 2)))
	assert.ErrorIs(t, err, session.ErrNoSession)
}
