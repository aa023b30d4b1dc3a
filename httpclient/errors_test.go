package httpclient

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeRequest, "request"},
		{ErrCodeTimeout, "timeout"},
		{ErrCodeConnection, "connection"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestTransportError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &TransportError{Code: ErrCodeConnection, Method: "GET", URL: "http://x/y", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected TransportError to unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "connection: GET http://x/y") {
		t.Errorf("unexpected message %q", err.Error())
	}

	wrapped := fmt.Errorf("call: %w", err)
	if !IsConnection(wrapped) || IsTimeout(wrapped) || IsRequest(wrapped) {
		t.Error("Is helpers should classify through wrapping")
	}
	if IsConnection(cause) {
		t.Error("plain errors are not transport errors")
	}
}
