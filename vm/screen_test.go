package vm

import (
	"strings"
	"testing"
)

func TestScreenDeviceClearBoldAndWrite(t *testing.T) {
	var sb strings.Builder
	s := NewScreenDeviceTo(&sb)

	// addr 0x11 = 17 -> x=(17%16)+1=2, y=(17/16)+1=2; command 0xFF clears,
	// low byte 0x41 is 'A'.
	assert(t, s.Set16(0x11, 0xFF41) == nil, "unexpected error")

	got := sb.String()
	assert(t, strings.Contains(got, "\x1b[2J"), "expected clear sequence, got %q", got)
	assert(t, strings.Contains(got, "\x1b[2;4H"), "expected cursor move to row 2 col 4, got %q", got)
	assert(t, strings.HasSuffix(got, "A"), "expected trailing character A, got %q", got)
}

func TestScreenDeviceBoldThenRegular(t *testing.T) {
	var sb strings.Builder
	s := NewScreenDeviceTo(&sb)

	assert(t, s.Set16(0, 0x0142) == nil, "unexpected error")
	assert(t, strings.Contains(sb.String(), "\x1b[1m"), "expected bold sequence")

	sb.Reset()
	assert(t, s.Set16(0, 0x0242) == nil, "unexpected error")
	assert(t, strings.Contains(sb.String(), "\x1b[0m"), "expected regular sequence")
}

func TestScreenDeviceReadsAreZero(t *testing.T) {
	s := NewScreenDevice()
	v, err := s.Get16(5)
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, v == 0, "expected zero read, got %d", v)
}
