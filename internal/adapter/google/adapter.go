package google

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/theakshaypant/doven/internal/core"
	"github.com/theakshaypant/doven/internal/util"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	// DefaultBaseURL is the public Calendar v3 root.
	DefaultBaseURL = "https://www.googleapis.com/calendar/v3/"

	// Public group calendars are addressed by a short id plus this domain.
	groupCalendarDomain = "group.calendar.google.com"

	// Longest response body kept on an HTTP error.
	bodyExcerptLen = 512

	redactedKey = "REDACTED"
)

// Options tunes how the adapter talks to the provider.
type Options struct {
	// Empty means DefaultBaseURL
	BaseURL string
	// Defaults to a plain http.Client; bound the call with the context
	HTTPClient *http.Client
	// Optional static bearer token for calendars the API key cannot read
	AccessToken string
	// Defaults to a no-op logger
	Logger *zap.Logger
}

type GoogleAdapter struct {
	id      string
	name    string
	baseURL string
	service *calendar.Service
	log     *zap.Logger
}

func NewGoogleAdapter(ctx context.Context, id, name string, opts Options) (*GoogleAdapter, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	if opts.AccessToken != "" {
		// oauth2 picks the base transport up from the context.
		ctx = context.WithValue(ctx, oauth2.HTTPClient, client)
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: opts.AccessToken,
			TokenType:   "Bearer",
		}))
	}

	// The key travels as a per-call parameter, so the service itself is
	// unauthenticated.
	service, err := calendar.NewService(ctx,
		option.WithHTTPClient(client),
		option.WithEndpoint(baseURL),
	)
	if err != nil {
		return nil, &core.Error{Kind: core.KindConfig, Op: "create calendar service", Err: err}
	}

	return &GoogleAdapter{
		id:      id,
		name:    name,
		baseURL: baseURL,
		service: service,
		log:     logger,
	}, nil
}

func (g *GoogleAdapter) ID() string   { return g.id }
func (g *GoogleAdapter) Name() string { return g.name }

// FetchEvents runs one events.list round trip for q. The batch is atomic:
// a single malformed item fails the whole call.
func (g *GoogleAdapter) FetchEvents(ctx context.Context, q core.Query) ([]core.Event, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	log := g.log.With(zap.String("provider", g.id), zap.String("calendar_id", q.CalendarID))
	log.Debug("fetch events", zap.String("url", RequestURL(g.baseURL, q)))

	res, err := g.service.Events.List(q.CalendarID).
		SingleEvents(true).
		TimeZone(q.Window.Zone).
		MaxResults(int64(q.MaxResults)).
		TimeMin(q.Window.TimeMin()).
		TimeMax(q.Window.TimeMax()).
		Context(ctx).
		Do(googleapi.QueryParameter("key", q.APIKey))
	if err != nil {
		cerr := classify(err)
		log.Warn("fetch events failed",
			zap.Stringer("kind", cerr.Kind),
			zap.Int("status", cerr.Status),
			zap.Error(cerr.Err),
		)
		return nil, cerr
	}

	// A missing "items" decodes to nil, an empty array to an empty slice.
	if res.Items == nil {
		return nil, malformed(errors.New(`response has no "items" array`))
	}

	events := make([]core.Event, 0, len(res.Items))
	for i, item := range res.Items {
		event, err := parseEvent(item, q.Window.Start.Location())
		if err != nil {
			id := ""
			if item != nil {
				id = item.Id
			}
			return nil, malformed(fmt.Errorf("item %d (id %q): %w", i, id, err))
		}
		events = append(events, event)
	}

	log.Debug("fetch events done", zap.Int("count", len(events)))
	return events, nil
}

// classify maps a client error onto exactly one error kind.
func classify(err error) *core.Error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &core.Error{
			Kind:   core.KindHTTP,
			Op:     "fetch events",
			Status: gerr.Code,
			Body:   util.TruncateText(gerr.Body, bodyExcerptLen),
			Err:    err,
		}
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		// Only a connection dropped mid-body; truncated 2xx JSON still reports as malformed.
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.As(err, &netErr):
		return &core.Error{Kind: core.KindNetwork, Op: "fetch events", Err: redact(err)}
	}

	// The round trip succeeded with a 2xx but the body did not decode.
	return malformed(err)
}

// redact strips the API key from the request URL that transport errors
// carry in their message.
func redact(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	u, perr := url.Parse(uerr.URL)
	if perr != nil {
		return &url.Error{Op: uerr.Op, URL: redactedKey, Err: uerr.Err}
	}
	v := u.Query()
	if v.Has("key") {
		v.Set("key", redactedKey)
		u.RawQuery = v.Encode()
	}
	return &url.Error{Op: uerr.Op, URL: u.String(), Err: uerr.Err}
}

func malformed(err error) *core.Error {
	return &core.Error{Kind: core.KindMalformedResponse, Op: "fetch events", Err: err}
}

// RequestURL renders the request FetchEvents sends, with the API key
// redacted. Useful for logs and for showing the query to a user.
func RequestURL(baseURL string, q core.Query) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	v := q.Window.Values()
	v.Set("key", redactedKey)
	v.Set("singleEvents", "true")
	v.Set("maxResults", strconv.Itoa(q.MaxResults))

	return strings.TrimSuffix(baseURL, "/") + "/calendars/" + url.PathEscape(q.CalendarID) + "/events?" + v.Encode()
}

// QualifyCalendarID expands a short public calendar id into its full form.
// Ids that already carry a domain, and "primary", are returned unchanged.
func QualifyCalendarID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || id == "primary" || strings.Contains(id, "@") {
		return id
	}
	return id + "@" + groupCalendarDomain
}
