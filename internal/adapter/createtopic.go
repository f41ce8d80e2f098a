package adapter

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/dwalleck/TopicTracker/internal/apierr"
	"github.com/dwalleck/TopicTracker/internal/wire"
)

func (a *Adapter) handleCreateTopic(form url.Values, requestID string) Response {
	parsed, err := wire.ParseCreateTopicForm(form)
	if err != nil {
		return a.errorResponse(err, requestID)
	}

	if parsed.Name == "" {
		return a.errorResponse(
			apierr.Field(apierr.InvalidParameter, "Name", "Name is required"), requestID)
	}

	topicArn := fmt.Sprintf("arn:aws:sns:%s:%s:%s", a.region, a.account, parsed.Name)

	body, err := wire.EncodeCreateTopicSuccess(topicArn, requestID)
	if err != nil {
		return a.errorResponse(apierr.New(apierr.Internal, "failed to render response"), requestID)
	}
	return Response{Status: http.StatusOK, ContentType: wire.ContentType, Body: body}
}
