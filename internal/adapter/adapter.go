// Package adapter implements the protocol adapter: it receives decoded
// SNS-shaped requests, dispatches on the requested action, validates
// required fields, applies deduplication, and hands the resulting record
// off to the capture store, translating every outcome into the XML
// envelope the client SDK expects.
package adapter

import (
	"net/http"

	"github.com/dwalleck/TopicTracker/internal/apierr"
	"github.com/dwalleck/TopicTracker/internal/store"
	"github.com/dwalleck/TopicTracker/internal/wire"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Adapter dispatches decoded wire requests against a Store and renders
// XML responses. It holds no request-scoped state; each Handle call is
// independent.
type Adapter struct {
	store   *store.Store
	region  string
	account string
	log     zerolog.Logger
}

// Option configures an Adapter at construction.
type Option func(*Adapter)

// WithARNStub overrides the stub region/account used to synthesize
// CreateTopic ARNs. Defaults to "us-east-1" / "000000000000".
func WithARNStub(region, account string) Option {
	return func(a *Adapter) {
		a.region = region
		a.account = account
	}
}

// WithLogger attaches a component logger. Defaults to a disabled logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Adapter) { a.log = log }
}

// New constructs an Adapter backed by s.
func New(s *store.Store, opts ...Option) *Adapter {
	a := &Adapter{
		store:   s,
		region:  "us-east-1",
		account: "000000000000",
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Response is the outcome of Handle: an HTTP status, a content type, and
// the response body bytes.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Handle parses and dispatches one inbound request, returning a Response
// that is always safe to write back to the caller. It never panics on
// malformed input.
func (a *Adapter) Handle(header http.Header, body []byte) Response {
	requestID := uuid.NewString()

	form, err := wire.ParseForm(body)
	if err != nil {
		return a.errorResponse(err, requestID)
	}

	action, err := wire.ResolveAction(form, header)
	if err != nil {
		return a.errorResponse(err, requestID)
	}

	switch action {
	case "Publish":
		return a.handlePublish(form, body, requestID)
	case "CreateTopic":
		return a.handleCreateTopic(form, requestID)
	default:
		return a.errorResponse(
			apierr.Field(apierr.InvalidAction, action, "unsupported action"),
			requestID,
		)
	}
}

func (a *Adapter) errorResponse(err error, requestID string) Response {
	apiErr, ok := err.(*apierr.Error)
	if !ok {
		apiErr = apierr.New(apierr.Internal, err.Error())
	}

	status, code := statusAndCode(apiErr.Kind)
	message := apiErr.Message
	if apiErr.Field != "" {
		message = message + ": " + apiErr.Field
	}

	a.log.Warn().Str("code", code).Str("request_id", requestID).Msg(message)

	xmlBody, marshalErr := wire.EncodeError(code, message, requestID)
	if marshalErr != nil {
		return Response{Status: http.StatusInternalServerError, ContentType: wire.ContentType}
	}
	return Response{Status: status, ContentType: wire.ContentType, Body: xmlBody}
}

// statusAndCode maps the closed error taxonomy to the HTTP status and
// wire Code the client SDK expects, per the taxonomy's SDK-visible subset.
func statusAndCode(kind apierr.Kind) (int, string) {
	switch kind {
	case apierr.MissingAction:
		return http.StatusBadRequest, "MissingAction"
	case apierr.InvalidAction:
		return http.StatusBadRequest, "InvalidAction"
	case apierr.InvalidParameter:
		return http.StatusBadRequest, "InvalidParameter"
	default:
		return http.StatusInternalServerError, "InternalError"
	}
}
