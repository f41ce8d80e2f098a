// Package wire implements the SNS-shaped wire codec: parsing the
// form-encoded publish/create-topic request bodies clients send, and
// emitting the XML success/error envelopes their SDKs expect back.
package wire

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dwalleck/TopicTracker/internal/apierr"
	"github.com/dwalleck/TopicTracker/internal/model"
)

// PublishForm is the decoded set of fields relevant to Action=Publish.
type PublishForm struct {
	TopicArn               string
	Message                string
	Subject                string
	MessageStructure       string
	MessageDeduplicationId string
	MessageGroupId         string
	Attributes             map[string]model.Attribute
}

// CreateTopicForm is the decoded set of fields relevant to Action=CreateTopic.
type CreateTopicForm struct {
	Name string
}

// ParseForm decodes an application/x-www-form-urlencoded request body.
func ParseForm(body []byte) (url.Values, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, apierr.New(apierr.MissingAction, "could not parse request body")
	}
	return values, nil
}

// ResolveAction determines the requested action from the decoded form, or
// falling back to the last dot-separated segment of the X-Amz-Target
// header when the form carries no Action field.
func ResolveAction(form url.Values, header http.Header) (string, error) {
	if action := form.Get("Action"); action != "" {
		return action, nil
	}

	target := header.Get("X-Amz-Target")
	if target == "" {
		return "", apierr.New(apierr.MissingAction, "could not find operation to perform")
	}

	idx := strings.LastIndex(target, ".")
	if idx == -1 || idx == len(target)-1 {
		return "", apierr.New(apierr.MissingAction, "could not find operation to perform")
	}
	return target[idx+1:], nil
}

// ParsePublishForm extracts the Publish fields, including repeated
// indexed message attribute tuples, from a decoded form.
func ParsePublishForm(form url.Values) (*PublishForm, error) {
	attrs, err := parseAttributes(form)
	if err != nil {
		return nil, err
	}

	return &PublishForm{
		TopicArn:               form.Get("TopicArn"),
		Message:                form.Get("Message"),
		Subject:                form.Get("Subject"),
		MessageStructure:       form.Get("MessageStructure"),
		MessageDeduplicationId: form.Get("MessageDeduplicationId"),
		MessageGroupId:         form.Get("MessageGroupId"),
		Attributes:             attrs,
	}, nil
}

// ParseCreateTopicForm extracts the CreateTopic fields from a decoded form.
func ParseCreateTopicForm(form url.Values) (*CreateTopicForm, error) {
	return &CreateTopicForm{Name: form.Get("Name")}, nil
}

// parseAttributes reads MessageAttributes.entry.<n>.* tuples starting at
// n=1 and stopping at the first n with no Name field.
func parseAttributes(form url.Values) (map[string]model.Attribute, error) {
	attrs := make(map[string]model.Attribute)

	for n := 1; ; n++ {
		prefix := fmt.Sprintf("MessageAttributes.entry.%d.", n)
		name := form.Get(prefix + "Name")
		if name == "" {
			break
		}

		dataType := form.Get(prefix + "Value.DataType")
		attr := model.Attribute{DataType: dataType}

		if sv := form.Get(prefix + "Value.StringValue"); sv != "" {
			attr.StringValue = &sv
		}

		if bv := form.Get(prefix + "Value.BinaryValue"); bv != "" {
			decoded, err := base64.StdEncoding.DecodeString(bv)
			if err != nil {
				return nil, apierr.Field(apierr.InvalidParameter,
					prefix+"Value.BinaryValue", "binary attribute value is not valid base64")
			}
			attr.BinaryValue = decoded
		}

		attrs[name] = attr
	}

	if len(attrs) == 0 {
		return nil, nil
	}
	return attrs, nil
}
