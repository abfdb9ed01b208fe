package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"data": data, "message": message, "success": success})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(NewClientOpts{TrackerUrl: server.URL, Id: "test"})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresSchemeAndHost(t *testing.T) {
	_, err := NewClient(NewClientOpts{TrackerUrl: "localhost:8000"})
	require.Error(t, err)
	client, err := NewClient(NewClientOpts{TrackerUrl: "http://localhost:8000"})
	require.NoError(t, err)
	assert.Nil(t, client.BearerAuth)
	assert.Equal(t, "abc", client.WithToken("abc").BearerAuth.Token)
	assert.Nil(t, client.BearerAuth)
}

func TestLoginV1(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		if r.PostForm.Get("password") != "hunter2" {
			writeEnvelope(w, http.StatusUnauthorized, false, "bad credentials", "invalid_credentials")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	})

	output, err := client.LoginV1(context.Background(), LoginV1Input{Username: "ana@uni.pt", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "tok", output.Data.AccessToken)
	assert.Equal(t, "bearer", output.Data.TokenType)

	output, err = client.LoginV1(context.Background(), LoginV1Input{Username: "ana@uni.pt", Password: "nope"})
	assert.ErrorIs(t, err, ErrorInvalidCredentials)
	require.NotNil(t, output)
	assert.Equal(t, http.StatusUnauthorized, output.StatusCode)
}

func TestCreateChallengeV1(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer student-token", r.Header.Get("Authorization"))
		var input CreateChallengeV1Input
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		switch input.Password {
		case "123456":
			writeEnvelope(w, http.StatusOK, true, "ok", ChallengePayload{
				ClassSessionId: input.ClassSessionId,
				StudentId:      7,
				IssuedAt:       1000,
				ExpiresAt:      1060,
				Token:          "signed",
			})
		case "shape":
			writeEnvelope(w, http.StatusOK, true, "ok", map[string]any{"id_aula": 1})
		default:
			writeEnvelope(w, http.StatusBadRequest, false, "wrong password", "invalid_password")
		}
	}).WithToken("student-token")

	output, err := client.CreateChallengeV1(context.Background(), CreateChallengeV1Input{ClassSessionId: 11, Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), output.Data.ClassSessionId)
	assert.JSONEq(t, `{"id_aula":11,"id_aluno":7,"iat":1000,"exp":1060,"token":"signed"}`, string(output.Raw))

	_, err = client.CreateChallengeV1(context.Background(), CreateChallengeV1Input{ClassSessionId: 11, Password: "000000"})
	assert.ErrorIs(t, err, ErrorInvalidPassword)

	_, err = client.CreateChallengeV1(context.Background(), CreateChallengeV1Input{ClassSessionId: 11, Password: "shape"})
	assert.ErrorIs(t, err, ErrorUnexpectedResponse)
}

func TestDo_StatusFallbacks(t *testing.T) {
	status := http.StatusUnauthorized
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if status == http.StatusBadGateway {
			w.WriteHeader(status)
			w.Write([]byte("<html>bad gateway</html>"))
			return
		}
		writeEnvelope(w, status, false, "nope", "something_new")
	})

	_, err := client.GetStudentTodayV1(context.Background())
	assert.ErrorIs(t, err, ErrorAuthRequired)

	status = http.StatusForbidden
	_, err = client.GetStudentTodayV1(context.Background())
	assert.ErrorIs(t, err, ErrorForbiddenRole)

	status = http.StatusInternalServerError
	_, err = client.GetStudentTodayV1(context.Background())
	assert.ErrorIs(t, err, ErrorUnexpectedResponse)
	assert.ErrorIs(t, err, ErrorGeneric)

	status = http.StatusBadGateway
	_, err = client.GetStudentTodayV1(context.Background())
	assert.ErrorIs(t, err, ErrorUnexpectedResponse)
}

func TestDo_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client, err := NewClient(NewClientOpts{TrackerUrl: server.URL})
	require.NoError(t, err)

	output, err := client.ListCourseUnitsV1(context.Background())
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrorConnection)
}

func TestParseChallengePayload(t *testing.T) {
	payload, err := ParseChallengePayload([]byte(`{"id_aula":1,"id_aluno":2,"iat":10,"exp":70,"token":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(70), payload.ExpiresAtTime().Unix())

	for _, input := range []string{
		``,
		`null`,
		`[]`,
		`{"id_aula":"1"}`,
		`{"id_aula":1,"id_aluno":2,"iat":10,"exp":70}`,
		`{"id_aula":1,"id_aluno":2,"iat":70,"exp":10,"token":"x"}`,
	} {
		_, err := ParseChallengePayload([]byte(input))
		assert.Error(t, err, input)
	}
}
