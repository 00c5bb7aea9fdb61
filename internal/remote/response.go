package remote

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/wdremote/internal/wderr"
)

var errNotAnObject = errors.New("response body is not a JSON object")

// Response is the outcome of one command. Either Err is nil and Value
// holds the remote result, or Err describes the error the remote end
// reported.
type Response struct {
	// Status is the HTTP status code.
	Status    int
	Value     any
	SessionID string

	// Raw is the decoded envelope as sent, nil for binary bodies.
	Raw map[string]any

	Err *wderr.CommandExecutionError
}

// OK reports whether the remote end accepted the command.
func (r *Response) OK() bool {
	return r.Err == nil
}

// Unwrap returns the value, or the remote error.
func (r *Response) Unwrap() (any, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Value, nil
}

// normalize turns an HTTP response into a Response. Non-2xx statuses
// become Response.Err; undecodable 2xx bodies are ProtocolErrors.
func normalize(method, url string, status int, contentType string, body []byte) (*Response, error) {
	if status >= http.StatusBadRequest {
		return errorResponse(status, body), nil
	}

	if strings.Contains(contentType, "image/png") {
		return &Response{Status: status, Value: body}, nil
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &Response{Status: status}, nil
	}

	envelope, err := decodeEnvelope(trimmed)
	if err != nil {
		return nil, wderr.NewProtocolError(method, url, status, string(trimmed), err)
	}

	resp := &Response{Status: status, Value: envelope["value"], Raw: envelope}
	resp.SessionID, _ = envelope["sessionId"].(string)
	if resp.SessionID == "" {
		// newSession carries the id inside the value.
		if v, ok := resp.Value.(map[string]any); ok {
			resp.SessionID, _ = v["sessionId"].(string)
		}
	}
	return resp, nil
}

func decodeEnvelope(body []byte) (map[string]any, error) {
	var envelope map[string]any
	if err := sonic.ConfigStd.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if envelope == nil {
		return nil, errNotAnObject
	}
	return envelope, nil
}

// errorResponse reads the W3C error envelope
// {"value": {"error", "message", "stacktrace", "data"}}, falling back to
// the legacy {"status", "value": {"message"}} shape and then to plain text.
func errorResponse(status int, body []byte) *Response {
	trimmed := strings.TrimSpace(string(body))
	cee := &wderr.CommandExecutionError{Status: status}
	resp := &Response{Status: status, Err: cee}

	envelope, err := decodeEnvelope([]byte(trimmed))
	if err != nil {
		resp.Value = trimmed
		cee.Message = trimmed
		if status == http.StatusUnauthorized {
			cee.Message = "Authorization Required"
		}
		return resp
	}

	resp.Raw = envelope
	resp.Value = envelope["value"]
	resp.SessionID, _ = envelope["sessionId"].(string)

	switch v := envelope["value"].(type) {
	case map[string]any:
		cee.Code, _ = v["error"].(string)
		cee.Message, _ = v["message"].(string)
		cee.Stacktrace, _ = v["stacktrace"].(string)
		cee.Data = v["data"]
	case string:
		cee.Message = v
	}
	if cee.Message == "" {
		cee.Message = http.StatusText(status)
	}
	return resp
}
