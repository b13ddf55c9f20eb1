package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{OffLevel, "OFF"},
		{ErrorLevel, "ERROR"},
		{WarnLevel, "WARN"},
		{InfoLevel, "INFO"},
		{DebugLevel, "DEBUG"},
		{TraceLevel, "TRACE"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.String())
		})
	}
}

func TestLevel_Ordering(t *testing.T) {
	order := []Level{OffLevel, ErrorLevel, WarnLevel, InfoLevel, DebugLevel, TraceLevel}
	for i := 1; i < len(order); i++ {
		assert.Less(t, order[i-1], order[i])
	}
	assert.Equal(t, TraceLevel, MaxLevel)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"off", OffLevel},
		{"ERROR", ErrorLevel},
		{"Warn", WarnLevel},
		{"info", InfoLevel},
		{"DeBuG", DebugLevel},
		{"trace", TraceLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("warning")
	assert.ErrorIs(t, err, ErrInvalidLevel)
	_, err = ParseLevel("verbose")
	assert.ErrorIs(t, err, ErrInvalidLevel)
	_, err = ParseLevel("")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestLevel_Letter(t *testing.T) {
	assert.Equal(t, byte('E'), ErrorLevel.Letter())
	assert.Equal(t, byte('W'), WarnLevel.Letter())
	assert.Equal(t, byte('I'), InfoLevel.Letter())
	assert.Equal(t, byte('D'), DebugLevel.Letter())
	assert.Equal(t, byte('T'), TraceLevel.Letter())
	assert.Equal(t, byte('?'), OffLevel.Letter())
}

func TestLevel_TextRoundTrip(t *testing.T) {
	var l Level
	require.NoError(t, l.UnmarshalText([]byte("Debug")))
	assert.Equal(t, DebugLevel, l)

	text, err := l.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "debug", string(text))

	assert.Error(t, l.UnmarshalText([]byte("loud")))
	assert.Equal(t, DebugLevel, l, "failed unmarshal must not modify the level")
}
