// Package model holds the value types captured off the ingest path.
package model

import "time"

// Attribute is a single named, typed side-channel value attached to a
// published message. StringValue and BinaryValue are mutually exclusive in
// presence; either or both may be nil.
type Attribute struct {
	DataType    string
	StringValue *string
	BinaryValue []byte
}

// Record is an immutable snapshot of one captured publish. Once returned
// from the store, a Record's fields are never mutated in place; any
// "update" replaces the record wholesale (see store.Add).
type Record struct {
	ID         string
	Topic      string
	Body       string
	Subject    string
	Structure  string
	DedupID    string
	GroupID    string
	Attributes map[string]Attribute
	Timestamp  time.Time
	RawPayload []byte
}

// Clone returns a deep copy of r, safe to hand to a caller outside the
// store's lock.
func (r Record) Clone() Record {
	c := r
	if r.Attributes != nil {
		c.Attributes = make(map[string]Attribute, len(r.Attributes))
		for k, v := range r.Attributes {
			av := v
			if v.StringValue != nil {
				sv := *v.StringValue
				av.StringValue = &sv
			}
			if v.BinaryValue != nil {
				av.BinaryValue = append([]byte(nil), v.BinaryValue...)
			}
			c.Attributes[k] = av
		}
	}
	if r.RawPayload != nil {
		c.RawPayload = append([]byte(nil), r.RawPayload...)
	}
	return c
}
