package retrieval

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vanishlink/vanish/internal/upstream"
)

func TestReduceHappyPath(t *testing.T) {
	var s State
	s = Reduce(s, Started{Gen: 1})
	assert.True(t, s.IsLoading())
	assert.Empty(t, s.Secret)
	assert.Empty(t, s.Message)

	s = Reduce(s, Fetched{Gen: 1, Secret: "hello"})
	assert.True(t, s.IsRevealed())
	assert.Equal(t, "hello", s.Secret)
	assert.Empty(t, s.Message, "revealed state carries no error")
}

func TestReducePasswordChallenge(t *testing.T) {
	var s State
	s = Reduce(s, Started{Gen: 1})
	s = Reduce(s, Challenged{Gen: 1, Prompt: "Enter password"})
	assert.True(t, s.IsPasswordRequired())
	assert.Equal(t, "Enter password", s.Prompt)
	assert.Empty(t, s.Secret, "no secret text while challenged")

	// Wrong password: retry ends in a re-prompt.
	s = Reduce(s, Started{Gen: 2})
	assert.True(t, s.IsLoading())
	s = Reduce(s, Challenged{Gen: 2, Prompt: "Enter password"})
	assert.True(t, s.IsPasswordRequired())
}

func TestReduceFailure(t *testing.T) {
	var s State
	s = Reduce(s, Started{Gen: 1})
	s = Reduce(s, Errored{Gen: 1, Message: "boom"})
	assert.True(t, s.IsFailed())
	assert.Equal(t, "boom", s.Message)
}

func TestReduceDiscardsStaleEvents(t *testing.T) {
	var s State
	s = Reduce(s, Started{Gen: 1})
	// A second attempt begins before the first resolves.
	s = Reduce(s, Started{Gen: 2})
	s = Reduce(s, Fetched{Gen: 2, Secret: "fresh"})

	// The slow first response arrives late and must not win.
	s2 := Reduce(s, Errored{Gen: 1, Message: "stale failure"})
	assert.Equal(t, s, s2)
	assert.True(t, s2.IsRevealed())
	assert.Equal(t, "fresh", s2.Secret)

	// A stale Started cannot rewind either.
	s3 := Reduce(s, Started{Gen: 2})
	assert.Equal(t, s, s3)
}

func TestReduceIgnoresEventsWithoutInFlightFetch(t *testing.T) {
	var s State
	s = Reduce(s, Started{Gen: 1})
	s = Reduce(s, Fetched{Gen: 1, Secret: "hello"})
	// Terminal event for a generation that was never started.
	s2 := Reduce(s, Fetched{Gen: 5, Secret: "bogus"})
	assert.Equal(t, s, s2)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "revealed", Revealed.String())
	assert.Equal(t, "password_required", PasswordRequired.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", Phase(42).String())
}

// mockGetter scripts upstream outcomes and records calls.
type mockGetter struct {
	outcome  upstream.Outcome
	err      error
	calls    int
	code     string
	password string
}

func (m *mockGetter) Retrieve(_ context.Context, code, password string) (upstream.Outcome, error) {
	m.calls++
	m.code = code
	m.password = password
	if m.err != nil {
		return upstream.Outcome{}, m.err
	}
	return m.outcome, nil
}

func TestFetchRevealed(t *testing.T) {
	g := &mockGetter{outcome: upstream.Outcome{Status: http.StatusOK, Body: "hello"}}
	s := Fetch(context.Background(), g, State{}, "abc123", "")
	assert.True(t, s.IsRevealed())
	assert.Equal(t, "hello", s.Secret)
	assert.Equal(t, 1, g.calls)
	assert.Equal(t, "abc123", g.code)
	assert.Empty(t, g.password)
}

func TestFetchChallenged(t *testing.T) {
	g := &mockGetter{outcome: upstream.Outcome{Status: http.StatusUnauthorized, Body: "Enter password"}}
	s := Fetch(context.Background(), g, State{}, "abc123", "")
	assert.True(t, s.IsPasswordRequired())
	assert.Equal(t, "Enter password", s.Prompt)
	assert.Empty(t, s.Secret)
}

func TestFetchServerError(t *testing.T) {
	g := &mockGetter{outcome: upstream.Outcome{Status: http.StatusInternalServerError, Body: "boom"}}
	s := Fetch(context.Background(), g, State{}, "abc123", "")
	assert.True(t, s.IsFailed())
	assert.Equal(t, "boom", s.Message)
}

func TestFetchJSONErrorBodyExtractsMessage(t *testing.T) {
	g := &mockGetter{outcome: upstream.Outcome{Status: http.StatusInternalServerError, Body: `{"message":"boom"}`}}
	s := Fetch(context.Background(), g, State{}, "abc123", "")
	assert.True(t, s.IsFailed())
	assert.Equal(t, "boom", s.Message)
}

func TestFetchEmptyErrorBodyFallsBackToStatusText(t *testing.T) {
	g := &mockGetter{outcome: upstream.Outcome{Status: http.StatusNotFound}}
	s := Fetch(context.Background(), g, State{}, "abc123", "")
	assert.True(t, s.IsFailed())
	assert.Equal(t, http.StatusText(http.StatusNotFound), s.Message)
}

func TestFetchTransportError(t *testing.T) {
	g := &mockGetter{err: errors.New("offline")}
	s := Fetch(context.Background(), g, State{}, "abc123", "")
	assert.True(t, s.IsFailed())
	assert.Equal(t, "offline", s.Message)
}

func TestFetchTransportErrorOmitsRequestURL(t *testing.T) {
	// http.Client failures arrive as *url.Error; the URL carries the
	// password query and must never surface in the failure message.
	g := &mockGetter{err: &url.Error{
		Op:  "Get",
		URL: "https://api.example.com/secrets/abc123?password=hunter2",
		Err: errors.New("connection refused"),
	}}
	s := Fetch(context.Background(), g, State{}, "abc123", "hunter2")
	assert.True(t, s.IsFailed())
	assert.Equal(t, "connection refused", s.Message)
	assert.NotContains(t, s.Message, "hunter2")
	assert.NotContains(t, s.Message, "api.example.com")
}

func TestFetchPasswordRetryIssuesOneGet(t *testing.T) {
	g := &mockGetter{outcome: upstream.Outcome{Status: http.StatusOK, Body: "hello"}}
	challenged := State{Phase: PasswordRequired, Gen: 1, Prompt: "Enter password"}
	s := Fetch(context.Background(), g, challenged, "abc123", "pw 1")
	assert.Equal(t, 1, g.calls, "resubmission triggers exactly one new GET")
	assert.Equal(t, "pw 1", g.password)
	assert.True(t, s.IsRevealed())
	assert.Equal(t, uint64(2), s.Gen)
}
