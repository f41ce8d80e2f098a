package adapter

import (
	"net/http"
	"net/url"
	"time"

	"github.com/dwalleck/TopicTracker/internal/apierr"
	"github.com/dwalleck/TopicTracker/internal/model"
	"github.com/dwalleck/TopicTracker/internal/wire"
	"github.com/google/uuid"
)

func (a *Adapter) handlePublish(form url.Values, rawBody []byte, requestID string) Response {
	parsed, err := wire.ParsePublishForm(form)
	if err != nil {
		return a.errorResponse(err, requestID)
	}

	if parsed.TopicArn == "" {
		return a.errorResponse(
			apierr.Field(apierr.InvalidParameter, "TopicArn", "TopicArn is required"), requestID)
	}
	if parsed.Message == "" {
		return a.errorResponse(
			apierr.Field(apierr.InvalidParameter, "Message", "Message is required"), requestID)
	}

	if parsed.MessageDeduplicationId != "" {
		if existing, ok := a.store.GetByTopicAndDedupID(parsed.TopicArn, parsed.MessageDeduplicationId); ok {
			return a.publishSuccess(existing.ID, requestID)
		}
	}

	record := model.Record{
		ID:         uuid.NewString(),
		Topic:      parsed.TopicArn,
		Body:       parsed.Message,
		Subject:    parsed.Subject,
		Structure:  parsed.MessageStructure,
		DedupID:    parsed.MessageDeduplicationId,
		GroupID:    parsed.MessageGroupId,
		Attributes: parsed.Attributes,
		Timestamp:  time.Now(),
		RawPayload: rawBody,
	}

	if err := a.store.Add(record); err != nil {
		return a.errorResponse(apierr.New(apierr.Internal, "failed to capture message"), requestID)
	}

	a.log.Info().
		Str("topic", record.Topic).
		Str("message_id", record.ID).
		Msg("captured publish")

	return a.publishSuccess(record.ID, requestID)
}

func (a *Adapter) publishSuccess(messageID, requestID string) Response {
	body, err := wire.EncodePublishSuccess(messageID, requestID)
	if err != nil {
		return a.errorResponse(apierr.New(apierr.Internal, "failed to render response"), requestID)
	}
	return Response{Status: http.StatusOK, ContentType: wire.ContentType, Body: body}
}
