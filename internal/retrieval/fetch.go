package retrieval

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/vanishlink/vanish/internal/upstream"
)

// Getter is the subset of the upstream client the viewer needs.
// Satisfied by *upstream.Client in production and mocked in tests.
type Getter interface {
	Retrieve(ctx context.Context, code, password string) (upstream.Outcome, error)
}

// Fetch runs one fetch attempt against the upstream and folds the result
// into the state machine: it bumps the generation, performs exactly one GET
// (password included and URL-encoded when non-empty), and reduces the
// outcome to the next state. Transport failures become Failed with the
// underlying error's message.
func Fetch(ctx context.Context, g Getter, s State, code, password string) State {
	s = Reduce(s, Started{Gen: s.Gen + 1})
	out, err := g.Retrieve(ctx, code, password)
	if err != nil {
		return Reduce(s, Errored{Gen: s.Gen, Message: transportMessage(err)})
	}
	return Reduce(s, eventFor(s.Gen, out))
}

// transportMessage renders a transport failure for display. http.Client
// wraps failures in *url.Error, whose text embeds the full request URL,
// password query included; only the wrapped cause may reach the page.
func transportMessage(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err.Error()
	}
	return err.Error()
}

// eventFor maps an upstream outcome to the corresponding event.
// 401 is an expected rejection modeled as its own state, not an error.
func eventFor(gen uint64, out upstream.Outcome) Event {
	switch {
	case out.Status == http.StatusOK:
		return Fetched{Gen: gen, Secret: out.Body}
	case out.Status == http.StatusUnauthorized:
		return Challenged{Gen: gen, Prompt: out.Body}
	default:
		return Errored{Gen: gen, Message: upstream.ErrorMessage([]byte(out.Body), out.Status)}
	}
}
