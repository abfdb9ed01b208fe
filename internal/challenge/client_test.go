package challenge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"rollcall/internal/session"
	"rollcall/pkg/tracker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPassword = "424242"

type fakeTracker struct {
	requests atomic.Int32
	status   int
	code     string

	// gate, when set, is waited on before a response is written
	gate chan struct{}
}

func (f *fakeTracker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	var input tracker.CreateChallengeV1Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if f.gate != nil && input.Password == "slow" {
		<-f.gate
	}
	w.Header().Set("Content-Type", "application/json")
	if f.code != "" {
		w.WriteHeader(f.status)
		json.NewEncoder(w).Encode(map[string]any{"data": f.code, "message": "refused", "success": false})
		return
	}
	if input.Password != validPassword && input.Password != "slow" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"data": "invalid_password", "message": "wrong password", "success": false})
		return
	}
	now := time.Now().Unix()
	json.NewEncoder(w).Encode(map[string]any{
		"data": tracker.ChallengePayload{
			ClassSessionId: input.ClassSessionId,
			StudentId:      7,
			IssuedAt:       now,
			ExpiresAt:      now + 60,
			Token:          input.Password,
		},
		"message": "ok",
		"success": true,
	})
}

func setup(t *testing.T, fake *fakeTracker, claims session.Claims) (*Client, *session.Store, *session.Session) {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	trackerClient, err := tracker.NewClient(tracker.NewClientOpts{TrackerUrl: server.URL})
	require.NoError(t, err)
	store, err := session.NewStore(session.StoreOpts{Slots: session.NewMemorySlots()})
	require.NoError(t, err)
	sess, err := store.Login("token", claims)
	require.NoError(t, err)
	client, err := NewClient(NewClientOpts{Store: store, Api: TrackerApi(trackerClient)})
	require.NoError(t, err)
	return client, store, sess
}

func student() session.Claims {
	return session.Claims{Subject: "ana@uni.pt", UserId: 7, ExpiresAt: time.Now().Add(time.Hour), IsStudent: true}
}

func TestRequestChallenge(t *testing.T) {
	client, _, sess := setup(t, &fakeTracker{}, student())
	payload, err := client.RequestChallenge(context.Background(), sess, 11, validPassword)
	require.NoError(t, err)
	assert.Equal(t, int64(11), payload.ClassSessionId)
	assert.Equal(t, int64(7), payload.StudentId)

	decoded, err := tracker.ParseChallengePayload([]byte(payload.String()))
	require.NoError(t, err)
	assert.Equal(t, payload.ChallengePayload, *decoded)
}

func TestRequestChallenge_WrongPassword(t *testing.T) {
	client, store, sess := setup(t, &fakeTracker{}, student())
	payload, err := client.RequestChallenge(context.Background(), sess, 11, "000000")
	assert.Nil(t, payload)
	require.ErrorIs(t, err, ErrChallengeRejected)
	var rejected *ChallengeRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "invalid_password", rejected.Reason)
	assert.NotNil(t, store.Current())
}

func TestRequestChallenge_Rejections(t *testing.T) {
	for _, code := range []string{"class_session_inactive", "class_session_not_found", "not_enrolled", "rate_limited"} {
		t.Run(code, func(t *testing.T) {
			client, _, sess := setup(t, &fakeTracker{status: http.StatusConflict, code: code}, student())
			_, err := client.RequestChallenge(context.Background(), sess, 11, validPassword)
			var rejected *ChallengeRejectedError
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, code, rejected.Reason)
		})
	}
}

func TestRequestChallenge_RequiresStudent(t *testing.T) {
	fake := &fakeTracker{}
	teacher := student()
	teacher.IsStudent = false
	teacher.IsTeacher = true
	client, _, sess := setup(t, fake, teacher)
	_, err := client.RequestChallenge(context.Background(), sess, 11, validPassword)
	assert.ErrorIs(t, err, session.ErrAuthorization)
	assert.Zero(t, fake.requests.Load())

	_, err = client.RequestChallenge(context.Background(), nil, 11, validPassword)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestRequestChallenge_AuthRequiredLogsOut(t *testing.T) {
	client, store, sess := setup(t, &fakeTracker{status: http.StatusUnauthorized, code: "auth_required"}, student())
	_, err := client.RequestChallenge(context.Background(), sess, 11, validPassword)
	assert.ErrorIs(t, err, session.ErrAuth)
	assert.Nil(t, store.Current())
}

func TestRequestChallenge_StaleResponse(t *testing.T) {
	fake := &fakeTracker{status: http.StatusUnauthorized, code: "auth_required"}
	client, store, sess := setup(t, fake, student())
	fresh, err := store.Login("fresh", student())
	require.NoError(t, err)

	_, err = client.RequestChallenge(context.Background(), sess, 11, validPassword)
	assert.ErrorIs(t, err, session.ErrStaleResponse)
	require.NotNil(t, store.Current())
	assert.Equal(t, fresh.Id, store.Current().Id)
}
