package logging

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantLen int
	}{
		{
			name:    "empty email",
			email:   "",
			wantLen: 0,
		},
		{
			name:    "valid email",
			email:   "owner@example.com",
			wantLen: 21, // "user:" (5) + 16 hex chars (8 bytes * 2)
		},
		{
			name:    "different email produces different hash",
			email:   "guest@example.com",
			wantLen: 21,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnonymizeEmail(tt.email)

			if tt.email == "" {
				assert.Empty(t, result)
				return
			}

			assert.Len(t, result, tt.wantLen)
			assert.Contains(t, result, "user:")
			assert.NotContains(t, result, "example.com")
			assert.Equal(t, result, AnonymizeEmail(tt.email))
		})
	}

	assert.NotEqual(t, AnonymizeEmail("owner@example.com"), AnonymizeEmail("guest@example.com"))
}

func TestSanitizeHost(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected string
	}{
		{
			name:     "empty host",
			host:     "",
			expected: "<empty>",
		},
		{
			name:     "hostname without IP",
			host:     "wss://hub.example.com/spruthub",
			expected: "wss://hub.example.com/spruthub",
		},
		{
			name:     "IP address URL",
			host:     "ws://192.168.1.100:7777/spruthub",
			expected: "ws://<redacted-ip>:7777/spruthub",
		},
		{
			name:     "bare IP address",
			host:     "192.168.1.100",
			expected: "<redacted-ip>",
		},
		{
			name:     "IP with port no scheme",
			host:     "10.0.0.1:7777",
			expected: "<redacted-ip>:7777",
		},
		{
			name:     "IPv6 address URL with brackets",
			host:     "ws://[2001:db8::1]:7777",
			expected: "ws://<redacted-ip>:7777",
		},
		{
			name:     "bare IPv6 address",
			host:     "2001:db8::1",
			expected: "<redacted-ip>",
		},
		{
			name:     "full IPv6 address",
			host:     "2001:0db8:85a3:0000:0000:8a2e:0370:7334",
			expected: "<redacted-ip>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeHost(tt.host))
		})
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{
			name:     "empty token",
			token:    "",
			expected: "<empty>",
		},
		{
			name:     "short token",
			token:    "abc",
			expected: "[token:3 chars]",
		},
		{
			name:     "session token",
			token:    "5f2b8c1e-7a44-4f0e-9d1a-0c3e2b6a9f10",
			expected: "[token:36 chars]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeToken(tt.token))
		})
	}

	t.Run("no token content leaked", func(t *testing.T) {
		token := "5f2b8c1e-7a44-4f0e-9d1a-0c3e2b6a9f10"
		assert.NotContains(t, SanitizeToken(token), token[:4])
	})
}

func TestSlogAttributes(t *testing.T) {
	t.Run("Operation", func(t *testing.T) {
		attr := Operation("list_accessories")
		assert.Equal(t, KeyOperation, attr.Key)
		assert.Equal(t, "list_accessories", attr.Value.String())
	})

	t.Run("Tool", func(t *testing.T) {
		attr := Tool("spruthub_list_rooms")
		assert.Equal(t, KeyTool, attr.Key)
		assert.Equal(t, "spruthub_list_rooms", attr.Value.String())
	})

	t.Run("AccessoryID", func(t *testing.T) {
		attr := AccessoryID(42)
		assert.Equal(t, KeyAccessoryID, attr.Key)
		assert.Equal(t, int64(42), attr.Value.Int64())
	})

	t.Run("RoomID", func(t *testing.T) {
		attr := RoomID(3)
		assert.Equal(t, KeyRoomID, attr.Key)
		assert.Equal(t, int64(3), attr.Value.Int64())
	})

	t.Run("CharacteristicID", func(t *testing.T) {
		attr := CharacteristicID(13, 14)
		assert.Equal(t, KeyCharacteristicID, attr.Key)
		assert.Equal(t, "13/14", attr.Value.String())
	})

	t.Run("Serial", func(t *testing.T) {
		attr := Serial("SN-1")
		assert.Equal(t, KeySerial, attr.Key)
		assert.Equal(t, "SN-1", attr.Value.String())
	})

	t.Run("Count", func(t *testing.T) {
		attr := Count(7)
		assert.Equal(t, KeyCount, attr.Key)
		assert.Equal(t, int64(7), attr.Value.Int64())
	})

	t.Run("Status", func(t *testing.T) {
		attr := Status(StatusSuccess)
		assert.Equal(t, KeyStatus, attr.Key)
		assert.Equal(t, StatusSuccess, attr.Value.String())
	})

	t.Run("Err with nil", func(t *testing.T) {
		attr := Err(nil)
		assert.Equal(t, KeyError, attr.Key)
		assert.Equal(t, "", attr.Value.String())
	})

	t.Run("Err with error", func(t *testing.T) {
		attr := Err(fmt.Errorf("test error message"))
		assert.Equal(t, "test error message", attr.Value.String())
	})

	t.Run("SanitizedErr with IP in error message", func(t *testing.T) {
		attr := SanitizedErr(fmt.Errorf("dial ws://192.168.1.100:7777: connection refused"))
		assert.Equal(t, KeyError, attr.Key)
		assert.NotContains(t, attr.Value.String(), "192.168.1.100")
		assert.Contains(t, attr.Value.String(), "<redacted-ip>")
		assert.Contains(t, attr.Value.String(), "connection refused")
	})

	t.Run("UserHash", func(t *testing.T) {
		attr := UserHash("owner@example.com")
		assert.Equal(t, KeyUserHash, attr.Key)
		assert.Contains(t, attr.Value.String(), "user:")
	})

	t.Run("Host", func(t *testing.T) {
		attr := Host("ws://192.168.1.1:7777")
		assert.Equal(t, KeyHost, attr.Key)
		assert.NotContains(t, attr.Value.String(), "192.168")
	})
}

func TestWithOperationLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	WithOperation(logger, "hub.login").Info("test message")

	output := buf.String()
	assert.Contains(t, output, `"operation":"hub.login"`)
}

func TestWithToolLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	WithTool(logger, "spruthub_list_accessories").Info("test message")

	output := buf.String()
	assert.Contains(t, output, `"tool":"spruthub_list_accessories"`)
}
