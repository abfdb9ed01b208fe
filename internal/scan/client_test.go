package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"rollcall/internal/session"
	"rollcall/pkg/tracker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTracker records a presence once per class session and student
type fakeTracker struct {
	mutex     sync.Mutex
	submitted int
	presences map[string]bool

	// reject, when set, is returned as the error code of every check-in
	reject string
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{presences: map[string]bool{}}
}

func (f *fakeTracker) submissions() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.submitted
}

func (f *fakeTracker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.submitted++
	w.Header().Set("Content-Type", "application/json")
	if f.reject != "" {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{"data": f.reject, "message": "refused", "success": false})
		return
	}
	var payload tracker.ChallengePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"data": "invalid_input", "message": err.Error(), "success": false})
		return
	}
	key := fmt.Sprintf("%v:%v", payload.ClassSessionId, payload.StudentId)
	result := tracker.CheckinResult{ClassSessionId: payload.ClassSessionId, StudentId: payload.StudentId}
	if f.presences[key] {
		result.AlreadyMarked = true
	} else {
		f.presences[key] = true
		result.Recorded = true
	}
	json.NewEncoder(w).Encode(map[string]any{"data": result, "message": "ok", "success": true})
}

func teacher() session.Claims {
	return session.Claims{Subject: "rui@uni.pt", UserId: 3, ExpiresAt: time.Now().Add(time.Hour), IsTeacher: true}
}

func setup(t *testing.T, fake http.Handler, claims session.Claims) (*Client, *session.Store, *session.Session) {
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

func scanText(classSessionId, studentId int64) string {
	data, _ := json.Marshal(tracker.ChallengePayload{
		ClassSessionId: classSessionId,
		StudentId:      studentId,
		IssuedAt:       time.Now().Unix(),
		ExpiresAt:      time.Now().Add(time.Minute).Unix(),
		Token:          "signed",
	})
	return string(data)
}

func TestDecode(t *testing.T) {
	payload, err := Decode("  " + scanText(11, 7) + "\n")
	require.NoError(t, err)
	assert.Equal(t, int64(11), payload.ClassSessionId)

	for _, text := range []string{"", "   ", "hello", "{", `{"id_aula":11}`, `[1,2]`, "null", `{"id_aula":"11"}`, "\x00\xff", `{"id_aula":-1,"id_aluno":7,"iat":1,"exp":2,"token":"x"}`} {
		assert.NotPanics(t, func() {
			payload, err := Decode(text)
			assert.Nil(t, payload)
			assert.ErrorIs(t, err, ErrMalformedPayload, text)
		})
	}
}

func TestSubmit_DuplicateIsAlreadyMarked(t *testing.T) {
	fake := newFakeTracker()
	client, _, sess := setup(t, fake, teacher())
	payload, err := Decode(scanText(11, 7))
	require.NoError(t, err)

	first, err := client.Submit(context.Background(), sess, payload)
	require.NoError(t, err)
	assert.True(t, first.Recorded)
	assert.False(t, first.AlreadyMarked)

	second, err := client.Submit(context.Background(), sess, payload)
	require.NoError(t, err)
	assert.False(t, second.Recorded)
	assert.True(t, second.AlreadyMarked)
	assert.Len(t, fake.presences, 1)
}

func TestSubmit_RequiresTeacher(t *testing.T) {
	fake := newFakeTracker()
	claims := teacher()
	claims.IsTeacher = false
	claims.IsStudent = true
	client, _, sess := setup(t, fake, claims)
	payload, err := Decode(scanText(11, 7))
	require.NoError(t, err)

	_, err = client.Submit(context.Background(), sess, payload)
	assert.ErrorIs(t, err, session.ErrAuthorization)
	assert.Zero(t, fake.submissions())
}

func TestSubmit_Rejected(t *testing.T) {
	for _, code := range []string{"payload_expired", "payload_invalid", "payload_superseded", "not_class_teacher", "class_session_inactive"} {
		t.Run(code, func(t *testing.T) {
			fake := newFakeTracker()
			fake.reject = code
			client, store, sess := setup(t, fake, teacher())
			payload, err := Decode(scanText(11, 7))
			require.NoError(t, err)

			_, err = client.Submit(context.Background(), sess, payload)
			var rejected *ScanRejectedError
			require.ErrorAs(t, err, &rejected)
			assert.ErrorIs(t, err, ErrScanRejected)
			assert.Equal(t, code, rejected.Reason)
			assert.NotNil(t, store.Current())
		})
	}
}

func TestSubmit_AuthRequiredLogsOut(t *testing.T) {
	fake := newFakeTracker()
	fake.reject = "auth_required"
	client, store, sess := setup(t, fake, teacher())
	payload, err := Decode(scanText(11, 7))
	require.NoError(t, err)

	_, err = client.Submit(context.Background(), sess, payload)
	assert.ErrorIs(t, err, session.ErrAuth)
	assert.Nil(t, store.Current())
}
