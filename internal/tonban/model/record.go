package model

import "encoding/json"

// Record is one denormalized result row keyed by column name.
// Values are strings, numbers or nil.
type Record map[string]any

// Envelope is the response wrapper shared by every route.
// A successful envelope always carries data, a failed one never does.
type Envelope struct {
	ResultCd bool
	Message  string
	Data     []Record
}

// Success wraps rows in a successful envelope.
func Success(rows []Record) Envelope {
	if rows == nil {
		rows = []Record{}
	}
	return Envelope{ResultCd: true, Data: rows}
}

// Failure wraps a message in a failed envelope.
func Failure(message string) Envelope {
	return Envelope{ResultCd: false, Message: message}
}

// MarshalJSON implements json.Marshaler
func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.ResultCd {
		data := e.Data
		if data == nil {
			data = []Record{}
		}
		return json.Marshal(struct {
			ResultCd bool     `json:"resultCd"`
			Message  string   `json:"message,omitempty"`
			Data     []Record `json:"data"`
		}{true, e.Message, data})
	}
	return json.Marshal(struct {
		ResultCd bool   `json:"resultCd"`
		Message  string `json:"message"`
	}{false, e.Message})
}
