package model

import (
	"bytes"
	"encoding/json"
)

// ResultCodeSuccess is the result code the advisory API reports on success
const ResultCodeSuccess = "00"

// RawResponse is an upstream response for one (year, page), either fetched
// from the network or served from the cache
type RawResponse struct {
	Data       json.RawMessage `json:"data"`
	Status     int             `json:"status"`
	StatusText string          `json:"statusText"`
}

// Envelope is the outer shape of an advisory API response. Every level is a
// pointer so that absence is observable at the validation boundary.
type Envelope struct {
	Response *EnvelopeResponse `json:"response"`
}

// EnvelopeResponse holds the header and body of an API response
type EnvelopeResponse struct {
	Header *EnvelopeHeader `json:"header"`
	Body   *EnvelopeBody   `json:"body"`
}

// EnvelopeHeader carries the business result of the request
type EnvelopeHeader struct {
	ResultCode string `json:"resultCode"`
	ResultMsg  string `json:"resultMsg"`
}

// EnvelopeBody carries the items. Paging fields are not decoded; the upstream
// emits them inconsistently as numbers or strings and nothing reads them.
type EnvelopeBody struct {
	Items AlertItems `json:"items"`
}

// AlertItems decodes the items list of an advisory response. Anything other
// than an array decodes to an empty list, and elements that are not valid
// records are skipped and counted in Dropped.
type AlertItems struct {
	Records []AlertRecord
	Dropped int
}

// UnmarshalJSON implements lenient decoding of the items list
func (x *AlertItems) UnmarshalJSON(data []byte) error {
	x.Records = nil
	x.Dropped = 0

	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil
	}

	x.Records = make([]AlertRecord, 0, len(elements))
	for _, element := range elements {
		var record AlertRecord
		if err := json.Unmarshal(element, &record); err != nil {
			x.Dropped++
			continue
		}
		if err := record.Validate(); err != nil {
			x.Dropped++
			continue
		}
		x.Records = append(x.Records, record)
	}
	return nil
}

// MarshalJSON emits the decoded records as a plain array
func (x AlertItems) MarshalJSON() ([]byte, error) {
	if x.Records == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(x.Records)
}

// DecodeEnvelope decodes the payload of a raw response. It returns nil when
// the payload is not a JSON object.
func DecodeEnvelope(raw *RawResponse) *Envelope {
	if raw == nil {
		return nil
	}
	data := bytes.TrimSpace(raw.Data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil
	}
	return &env
}

// HasBody returns true if the envelope carries a body object
func (e *Envelope) HasBody() bool {
	return e != nil && e.Response != nil && e.Response.Body != nil
}

// IsSuccess returns true if the envelope reports the success result code
func (e *Envelope) IsSuccess() bool {
	return e != nil && e.Response != nil && e.Response.Header != nil &&
		e.Response.Header.ResultCode == ResultCodeSuccess
}

// Records returns the decoded items, or an empty list if the body is absent
func (e *Envelope) Records() []AlertRecord {
	if !e.HasBody() {
		return []AlertRecord{}
	}
	if e.Response.Body.Items.Records == nil {
		return []AlertRecord{}
	}
	return e.Response.Body.Items.Records
}
