package discord

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/websocket"

	"github.com/angas/weatherbot-go/errs"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSendDmRequiresToken(t *testing.T) {
	n := NewNotifier("", testLogger())
	err := n.SendDM(context.Background(), "123", "hello", bytes.NewReader(nil))
	if !errors.Is(err, errs.ErrAuth) {
		t.Errorf("expected auth error for missing token, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	restErr := func(code int, status int) error {
		e := &discordgo.RESTError{}
		if code != 0 {
			e.Message = &discordgo.APIErrorMessage{Code: code}
		}
		if status != 0 {
			e.Response = &http.Response{StatusCode: status}
		}
		return e
	}

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "unknown user code",
			err:      restErr(discordgo.ErrCodeUnknownUser, http.StatusNotFound),
			expected: errs.ErrRecipientNotFound,
		},
		{
			name:     "cannot dm user code",
			err:      restErr(discordgo.ErrCodeCannotSendMessagesToThisUser, http.StatusForbidden),
			expected: errs.ErrPermissionDenied,
		},
		{
			name:     "unauthorized status",
			err:      restErr(0, http.StatusUnauthorized),
			expected: errs.ErrAuth,
		},
		{
			name:     "forbidden status",
			err:      restErr(0, http.StatusForbidden),
			expected: errs.ErrPermissionDenied,
		},
		{
			name:     "not found status",
			err:      restErr(0, http.StatusNotFound),
			expected: errs.ErrRecipientNotFound,
		},
		{
			name:     "server error",
			err:      restErr(0, http.StatusBadGateway),
			expected: errs.ErrTransport,
		},
		{
			name:     "gateway auth close",
			err:      &websocket.CloseError{Code: 4004, Text: "Authentication failed."},
			expected: errs.ErrAuth,
		},
		{
			name:     "plain network error",
			err:      errors.New("connection reset"),
			expected: errs.ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify("op", tt.err)
			if !errors.Is(got, tt.expected) {
				t.Errorf("classify(%v) expected %v, got %v", tt.err, tt.expected, got)
			}
		})
	}
}
