package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockLoggerRecordsEntries(t *testing.T) {
	mock := NewMockLogger()

	mock.Info("Register written", Field{Key: FieldCount, Value: 3})
	mock.WithField("component", "RegisterWriter").Debug("Hid auxiliary sheet")
	mock.WithError(errors.New("boom")).Warn("Failed to close workbook")

	assert.Len(t, mock.Entries, 3)
	assert.True(t, mock.HasEntry("INFO", "Register written"))
	assert.True(t, mock.HasEntry("DEBUG", "Hid auxiliary sheet"))
	assert.True(t, mock.HasEntry("WARN", "Failed to close workbook"))
	assert.False(t, mock.HasEntry("ERROR", "Register written"))
}

func TestSetLoggerIgnoresNil(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	mock := NewMockLogger()
	SetLogger(mock)
	assert.Equal(t, mock, GetLogger())

	SetLogger(nil)
	assert.Equal(t, mock, GetLogger())
}
