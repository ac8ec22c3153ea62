package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{1955, "32:35"},
		{3600, "1:00:00"},
		{3661, "1:01:01"},
		{86399, "23:59:59"},
		{-75, "-1:15"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSeconds(tt.seconds))
	}
}

func TestFormat_NilIsEmpty(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	v := 125
	assert.Equal(t, "2:05", Format(&v))
}

func TestSafeSub(t *testing.T) {
	a, b := 300, 120
	got := SafeSub(&a, &b)
	require.NotNil(t, got)
	assert.Equal(t, 180, *got)

	assert.Nil(t, SafeSub(nil, &b))
	assert.Nil(t, SafeSub(&a, nil))
}

func TestSafeDivPace(t *testing.T) {
	leg := 300
	length := 1000
	got := SafeDivPace(&leg, &length)
	require.NotNil(t, got)
	assert.Equal(t, 300, *got)

	// 300 s over 700 m is 428.57 s/km, rounded to 429.
	length = 700
	got = SafeDivPace(&leg, &length)
	require.NotNil(t, got)
	assert.Equal(t, 429, *got)

	zero := 0
	assert.Nil(t, SafeDivPace(&leg, &zero))
	assert.Nil(t, SafeDivPace(nil, &length))
	assert.Nil(t, SafeDivPace(&leg, nil))
}

func TestMaxZero(t *testing.T) {
	assert.Equal(t, 0, MaxZero(-5))
	assert.Equal(t, 7, MaxZero(7))
}
