package transport

import "encoding/json"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every API response. Error carries the user-facing message.
type Envelope struct {
	Status string `json:"status"`
	Code   string `json:"code,omitempty"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
	Meta   any    `json:"meta,omitempty"`
}

func NewSuccess(data, meta any) Envelope {
	return Envelope{Status: StatusSuccess, Data: data, Meta: meta}
}

// NewError builds an error envelope; code is a domain error code or a transport-level one
// such as DEGRADED.
func NewError(code, message string, meta any) Envelope {
	return Envelope{Status: StatusError, Code: code, Error: message, Meta: meta}
}

// Marshal encodes e. A payload that cannot be encoded degrades to a bare error envelope so
// the client always receives JSON.
func (e Envelope) Marshal() []byte {
	out, err := json.Marshal(e)
	if err == nil {
		return out
	}
	out, _ = json.Marshal(Envelope{Status: StatusError, Code: "UNKNOWN", Error: "response could not be encoded"})
	return out
}
