package wire

import "encoding/xml"

// Namespace is the fixed XML namespace every envelope declares, matching
// what the client SDK's XML unmarshaler expects.
const Namespace = "http://sns.amazonaws.com/doc/2010-03-31/"

// ContentType is the fixed content type for every wire response.
const ContentType = "text/xml"

type responseMetadata struct {
	RequestId string `xml:"RequestId"`
}

type publishResult struct {
	MessageId string `xml:"MessageId"`
}

// PublishResponse is the success envelope for Action=Publish.
type PublishResponse struct {
	XMLName  xml.Name         `xml:"PublishResponse"`
	Xmlns    string           `xml:"xmlns,attr"`
	Result   publishResult    `xml:"PublishResult"`
	Metadata responseMetadata `xml:"ResponseMetadata"`
}

type createTopicResult struct {
	TopicArn string `xml:"TopicArn"`
}

// CreateTopicResponse is the success envelope for Action=CreateTopic.
type CreateTopicResponse struct {
	XMLName  xml.Name          `xml:"CreateTopicResponse"`
	Xmlns    string            `xml:"xmlns,attr"`
	Result   createTopicResult `xml:"CreateTopicResult"`
	Metadata responseMetadata  `xml:"ResponseMetadata"`
}

type errorBody struct {
	Type    string `xml:"Type"`
	Code    string `xml:"Code"`
	Message string `xml:"Message"`
}

// ErrorResponse is the shared error envelope for every failure mode.
type ErrorResponse struct {
	XMLName   xml.Name  `xml:"ErrorResponse"`
	Error     errorBody `xml:"Error"`
	RequestId string    `xml:"RequestId"`
}

// EncodePublishSuccess renders the Publish success envelope.
func EncodePublishSuccess(messageID, requestID string) ([]byte, error) {
	return marshal(PublishResponse{
		Xmlns:    Namespace,
		Result:   publishResult{MessageId: messageID},
		Metadata: responseMetadata{RequestId: requestID},
	})
}

// EncodeCreateTopicSuccess renders the CreateTopic success envelope.
func EncodeCreateTopicSuccess(topicArn, requestID string) ([]byte, error) {
	return marshal(CreateTopicResponse{
		Xmlns:    Namespace,
		Result:   createTopicResult{TopicArn: topicArn},
		Metadata: responseMetadata{RequestId: requestID},
	})
}

// EncodeError renders the shared error envelope. code is one of the
// apierr.Kind values mapped to a wire code by the adapter. Type is always
// "Sender", including for the 500 InternalError envelope.
func EncodeError(code, message, requestID string) ([]byte, error) {
	return marshal(ErrorResponse{
		Error: errorBody{
			Type:    "Sender",
			Code:    code,
			Message: message,
		},
		RequestId: requestID,
	})
}

func marshal(v any) ([]byte, error) {
	out, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
