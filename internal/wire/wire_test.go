package wire

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"testing"

	"github.com/dwalleck/TopicTracker/internal/apierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAction_FromFormField(t *testing.T) {
	form := url.Values{"Action": {"Publish"}}
	action, err := ResolveAction(form, http.Header{})
	require.NoError(t, err)
	assert.Equal(t, "Publish", action)
}

func TestResolveAction_FromAmzTargetHeader(t *testing.T) {
	form := url.Values{}
	header := http.Header{"X-Amz-Target": {"com.example.sns.Publish"}}
	action, err := ResolveAction(form, header)
	require.NoError(t, err)
	assert.Equal(t, "Publish", action)
}

func TestResolveAction_MissingBoth(t *testing.T) {
	_, err := ResolveAction(url.Values{}, http.Header{})
	require.Error(t, err)
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierr.MissingAction, apiErr.Kind)
}

func TestParsePublishForm_Fields(t *testing.T) {
	form := url.Values{
		"TopicArn":                {"arn:aws:sns:us-east-1:123456789012:t1"},
		"Message":                 {"hello"},
		"Subject":                 {"subj"},
		"MessageDeduplicationId":  {"dedup-1"},
		"MessageGroupId":          {"group-1"},
	}

	parsed, err := ParsePublishForm(form)
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:t1", parsed.TopicArn)
	assert.Equal(t, "hello", parsed.Message)
	assert.Equal(t, "subj", parsed.Subject)
	assert.Equal(t, "dedup-1", parsed.MessageDeduplicationId)
	assert.Equal(t, "group-1", parsed.MessageGroupId)
}

func TestParsePublishForm_Attributes(t *testing.T) {
	binary := []byte("binary-payload")
	form := url.Values{
		"MessageAttributes.entry.1.Name":              {"attr-one"},
		"MessageAttributes.entry.1.Value.DataType":     {"String"},
		"MessageAttributes.entry.1.Value.StringValue":  {"value-one"},
		"MessageAttributes.entry.2.Name":               {"attr-two"},
		"MessageAttributes.entry.2.Value.DataType":     {"Binary"},
		"MessageAttributes.entry.2.Value.BinaryValue":  {base64.StdEncoding.EncodeToString(binary)},
	}

	parsed, err := ParsePublishForm(form)
	require.NoError(t, err)
	require.Len(t, parsed.Attributes, 2)

	assert.Equal(t, "String", parsed.Attributes["attr-one"].DataType)
	require.NotNil(t, parsed.Attributes["attr-one"].StringValue)
	assert.Equal(t, "value-one", *parsed.Attributes["attr-one"].StringValue)

	assert.Equal(t, "Binary", parsed.Attributes["attr-two"].DataType)
	assert.Equal(t, binary, parsed.Attributes["attr-two"].BinaryValue)
}

func TestParsePublishForm_AttributeIterationStopsAtFirstGap(t *testing.T) {
	form := url.Values{
		"MessageAttributes.entry.1.Name": {"attr-one"},
		// n=2 has no Name, so n=3 must not be considered even if present.
		"MessageAttributes.entry.3.Name": {"attr-three"},
	}

	parsed, err := ParsePublishForm(form)
	require.NoError(t, err)
	assert.Len(t, parsed.Attributes, 1)
	_, hasThree := parsed.Attributes["attr-three"]
	assert.False(t, hasThree)
}

func TestParsePublishForm_MalformedBinaryValueIsInvalidParameter(t *testing.T) {
	form := url.Values{
		"MessageAttributes.entry.1.Name":             {"attr-one"},
		"MessageAttributes.entry.1.Value.DataType":    {"Binary"},
		"MessageAttributes.entry.1.Value.BinaryValue": {"not-valid-base64!!"},
	}

	_, err := ParsePublishForm(form)
	require.Error(t, err)
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierr.InvalidParameter, apiErr.Kind)
	assert.Contains(t, apiErr.Field, "BinaryValue")
}

func TestEncodePublishSuccess_ContainsMessageId(t *testing.T) {
	body, err := EncodePublishSuccess("msg-123", "req-456")
	require.NoError(t, err)
	assert.Contains(t, string(body), "<MessageId>msg-123</MessageId>")
	assert.Contains(t, string(body), "<RequestId>req-456</RequestId>")
	assert.Contains(t, string(body), Namespace)
}

func TestEncodeCreateTopicSuccess_ContainsTopicArn(t *testing.T) {
	body, err := EncodeCreateTopicSuccess("arn:aws:sns:us-east-1:000000000000:orders", "req-1")
	require.NoError(t, err)
	assert.Contains(t, string(body), "<TopicArn>arn:aws:sns:us-east-1:000000000000:orders</TopicArn>")
}

func TestEncodeError_ContainsCodeAndMessage(t *testing.T) {
	body, err := EncodeError("InvalidParameter", "TopicArn is required", "req-1")
	require.NoError(t, err)
	s := string(body)
	assert.Contains(t, s, "<Type>Sender</Type>")
	assert.Contains(t, s, "<Code>InvalidParameter</Code>")
	assert.Contains(t, s, "<Message>TopicArn is required</Message>")
}
