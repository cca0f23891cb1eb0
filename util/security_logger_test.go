package util

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestLogger captures security log output and restores the original
// logger on cleanup.
func setupTestLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := SetSecurityLoggerForTest(zerolog.New(buf))
	t.Cleanup(func() { SetSecurityLoggerForTest(prev) })
	return buf
}

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "removes newlines", input: "hello\nworld", expected: "hello world"},
		{name: "removes carriage returns", input: "hello\rworld", expected: "hello world"},
		{name: "removes tabs", input: "hello\tworld", expected: "hello world"},
		{name: "truncates long values", input: strings.Repeat("a", 250), expected: strings.Repeat("a", 200) + "..."},
		{name: "handles empty string", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeLogValue(tt.input))
		})
	}
}

func TestLogSecurityEventWritesStructuredFields(t *testing.T) {
	buf := setupTestLogger(t)

	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginSuccess,
		UserID:    "7",
		ClinicID:  "clinic-a",
		Email:     "ana@example.com\nforged=1",
		IP:        "203.0.113.5",
		Message:   "ok",
		Details:   map[string]interface{}{"a": 1, "b": 2},
	})

	out := buf.String()
	assert.Contains(t, out, `"event":"LOGIN_SUCCESS"`)
	assert.Contains(t, out, `"clinic_id":"clinic-a"`)
	assert.Contains(t, out, `"details_count":2`)
	assert.Contains(t, out, "ana@example.com forged=1")
	assert.Contains(t, out, `"level":"info"`)
}

func TestLoginFailureIsWarning(t *testing.T) {
	buf := setupTestLogger(t)
	LogLoginFailure("x@example.com", "203.0.113.9", "curl", "invalid password")
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "Login failed: invalid password")
}

func TestLogSecurityEventPersists(t *testing.T) {
	setupTestLogger(t)
	dsn := fmt.Sprintf("file:seclog_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.SecurityLog{}))

	SetSecurityLoggerDB(db)
	t.Cleanup(func() { SetSecurityLoggerDB(nil) })

	LogSecurityEvent(SecurityEvent{
		EventType: EventPasswordChanged,
		UserID:    "3",
		ClinicID:  "clinic-a",
		IP:        "127.0.0.1",
		Message:   "changed",
		Details:   map[string]interface{}{"via": "account"},
	})

	var logs []model.SecurityLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "PASSWORD_CHANGED", logs[0].EventType)
	assert.Equal(t, "clinic-a", logs[0].ClinicID)
	assert.Empty(t, logs[0].Location)
	assert.JSONEq(t, `{"via":"account"}`, string(logs[0].Details))
}

func TestFormatLocation(t *testing.T) {
	assert.Equal(t, "Madrid/Spain", formatLocation("Madrid", "Spain"))
	assert.Equal(t, "Spain", formatLocation("", "Spain"))
	assert.Equal(t, "Madrid", formatLocation("Madrid", ""))
	assert.Equal(t, "", formatLocation("", ""))
}
