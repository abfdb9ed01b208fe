package challenge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentFlow_HappyPath(t *testing.T) {
	client, store, _ := setup(t, &fakeTracker{}, student())
	flow := NewStudentFlow(client, store)
	assert.Equal(t, StudentIdle, flow.Snapshot().State)

	_, err := flow.Submit(context.Background(), validPassword)
	assert.ErrorIs(t, err, ErrFlowState)

	require.NoError(t, flow.Begin(11))
	assert.Equal(t, StudentPasswordEntry, flow.Snapshot().State)

	payload, err := flow.Submit(context.Background(), validPassword)
	require.NoError(t, err)
	snapshot := flow.Snapshot()
	assert.Equal(t, StudentDisplaying, snapshot.State)
	assert.Equal(t, payload, snapshot.Payload)

	require.NoError(t, flow.Consume())
	assert.Equal(t, StudentConsumed, flow.Snapshot().State)
	assert.ErrorIs(t, flow.Consume(), ErrFlowState)
}

func TestStudentFlow_WrongPasswordNeverDisplays(t *testing.T) {
	client, store, _ := setup(t, &fakeTracker{}, student())
	flow := NewStudentFlow(client, store)
	require.NoError(t, flow.Begin(11))

	_, err := flow.Submit(context.Background(), "000000")
	require.ErrorIs(t, err, ErrChallengeRejected)
	snapshot := flow.Snapshot()
	assert.Equal(t, StudentPasswordEntry, snapshot.State)
	assert.Nil(t, snapshot.Payload)
	assert.ErrorIs(t, snapshot.Err, ErrChallengeRejected)

	_, err = flow.Submit(context.Background(), validPassword)
	require.NoError(t, err)
	assert.Nil(t, flow.Snapshot().Err)
}

func TestStudentFlow_Expires(t *testing.T) {
	client, store, _ := setup(t, &fakeTracker{}, student())
	flow := NewStudentFlow(client, store)
	require.NoError(t, flow.Begin(11))
	payload, err := flow.Submit(context.Background(), validPassword)
	require.NoError(t, err)

	assert.Equal(t, StudentDisplaying, flow.Tick())
	flow.now = func() time.Time { return payload.ExpiresAtTime() }
	assert.Equal(t, StudentExpired, flow.Tick())

	require.NoError(t, flow.Begin(11))
	assert.Nil(t, flow.Snapshot().Payload)
}

func TestStudentFlow_NewerRequestSupersedes(t *testing.T) {
	fake := &fakeTracker{gate: make(chan struct{})}
	client, store, _ := setup(t, fake, student())
	flow := NewStudentFlow(client, store)
	require.NoError(t, flow.Begin(11))

	slowResult := make(chan error, 1)
	go func() {
		_, err := flow.Submit(context.Background(), "slow")
		slowResult <- err
	}()
	require.Eventually(t, func() bool { return fake.requests.Load() == 1 }, time.Second, 5*time.Millisecond)

	payload, err := flow.Submit(context.Background(), validPassword)
	require.NoError(t, err)
	close(fake.gate)

	assert.ErrorIs(t, <-slowResult, ErrRequestSuperseded)
	snapshot := flow.Snapshot()
	assert.Equal(t, StudentDisplaying, snapshot.State)
	assert.Equal(t, payload, snapshot.Payload)
	assert.Equal(t, validPassword, snapshot.Payload.Token)
}
