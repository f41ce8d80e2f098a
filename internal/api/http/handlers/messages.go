// Package handlers implements the two HTTP-facing surfaces: the SNS-shaped
// ingest endpoint and the JSON verification API used by tests to assert
// what was published.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dwalleck/TopicTracker/internal/apierr"
	"github.com/dwalleck/TopicTracker/internal/model"
	"github.com/dwalleck/TopicTracker/internal/query"
	"github.com/dwalleck/TopicTracker/internal/store"
)

// AttributeDTO is the JSON shape of a captured message attribute.
type AttributeDTO struct {
	DataType    string  `json:"data_type"`
	StringValue *string `json:"string_value,omitempty"`
	BinaryValue []byte  `json:"binary_value,omitempty"`
}

// MessageDTO is the JSON shape of a captured message returned by the
// verification API. Optional fields are omitted when absent.
type MessageDTO struct {
	ID         string                  `json:"id"`
	Topic      string                  `json:"topic"`
	Body       string                  `json:"body"`
	Subject    string                  `json:"subject,omitempty"`
	Structure  string                  `json:"structure,omitempty"`
	DedupID    string                  `json:"dedup_id,omitempty"`
	GroupID    string                  `json:"group_id,omitempty"`
	Attributes map[string]AttributeDTO `json:"attributes,omitempty"`
	Timestamp  time.Time               `json:"timestamp"`
	RawPayload []byte                  `json:"raw_payload,omitempty"`
}

func toDTO(r model.Record) MessageDTO {
	dto := MessageDTO{
		ID:         r.ID,
		Topic:      r.Topic,
		Body:       r.Body,
		Subject:    r.Subject,
		Structure:  r.Structure,
		DedupID:    r.DedupID,
		GroupID:    r.GroupID,
		Timestamp:  r.Timestamp,
		RawPayload: r.RawPayload,
	}
	if len(r.Attributes) > 0 {
		dto.Attributes = make(map[string]AttributeDTO, len(r.Attributes))
		for name, attr := range r.Attributes {
			dto.Attributes[name] = AttributeDTO{
				DataType:    attr.DataType,
				StringValue: attr.StringValue,
				BinaryValue: attr.BinaryValue,
			}
		}
	}
	return dto
}

// errorDTO is the JSON error shape for the verification API. Unlike the
// ingest endpoint, this surface is not SDK-facing, so its errors are JSON
// rather than the SNS XML envelope.
type errorDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorDTO{Code: code, Message: message})
}

// MessageHandlers serves the verification API (C6): read-only lookups over
// the capture store plus a clear-all operation.
type MessageHandlers struct {
	store *store.Store
}

// NewMessageHandlers constructs handlers backed by s.
func NewMessageHandlers(s *store.Store) *MessageHandlers {
	return &MessageHandlers{store: s}
}

// List handles GET {prefix}?topic=&since=&until=&contains=.
func (h *MessageHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var records []model.Record
	since, sinceErr := parseTimeParam(q.Get("since"))
	until, untilErr := parseTimeParam(q.Get("until"))
	if sinceErr != nil {
		writeJSONError(w, http.StatusBadRequest, "InvalidParameter", "since is not a valid RFC3339 timestamp")
		return
	}
	if untilErr != nil {
		writeJSONError(w, http.StatusBadRequest, "InvalidParameter", "until is not a valid RFC3339 timestamp")
		return
	}

	if since != nil || until != nil {
		start, end := timeRangeBounds(since, until)
		records = h.store.GetByTimeRange(start, end)
	} else {
		records = h.store.GetAll()
	}

	filtered := query.Apply(records, query.Filter{
		Topic:    q.Get("topic"),
		Contains: q.Get("contains"),
	})

	dtos := make([]MessageDTO, 0, len(filtered))
	for _, r := range filtered {
		dtos = append(dtos, toDTO(r))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dtos)
}

// Get handles GET {prefix}/{id}.
func (h *MessageHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	record, err := h.store.GetByID(id)
	if err != nil {
		apiErr, ok := err.(*apierr.Error)
		if ok && apiErr.Kind == apierr.NotFound {
			writeJSONError(w, http.StatusNotFound, "NotFound", "no message with id "+id)
			return
		}
		writeJSONError(w, http.StatusBadRequest, "InvalidParameter", "id is required")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toDTO(record))
}

// Delete handles DELETE {prefix}, dropping every captured message.
func (h *MessageHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func parseTimeParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// timeRangeBounds fills in an unbounded side of the range with the widest
// value the caller could plausibly mean, so a caller supplying only
// "since" or only "until" still gets an inclusive one-sided range.
func timeRangeBounds(since, until *time.Time) (time.Time, time.Time) {
	start := time.Unix(0, 0).UTC()
	end := time.Unix(1<<62, 0).UTC()
	if since != nil {
		start = *since
	}
	if until != nil {
		end = *until
	}
	return start, end
}
