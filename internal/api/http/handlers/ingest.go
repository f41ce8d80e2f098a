package handlers

import (
	"io"
	"net/http"

	"github.com/dwalleck/TopicTracker/internal/adapter"
)

// IngestHandler adapts the SNS-shaped protocol adapter to net/http: it
// reads the raw body, hands it to the adapter, and writes back whatever
// status/content-type/body the adapter produced.
func IngestHandler(a *adapter.Adapter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			body = nil
		}

		resp := a.Handle(r.Header, body)

		w.Header().Set("Content-Type", resp.ContentType)
		w.WriteHeader(resp.Status)
		w.Write(resp.Body)
	}
}
