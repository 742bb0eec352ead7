package irc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFramer_Feed(t *testing.T) {
	tests := []struct {
		name     string
		feeds    []string
		expected []string
	}{
		{
			name:     "single complete line",
			feeds:    []string{"PING :tmi.twitch.tv\r\n"},
			expected: []string{"PING :tmi.twitch.tv"},
		},
		{
			name:     "many lines in one feed",
			feeds:    []string{"one\r\ntwo\r\nthree\r\n"},
			expected: []string{"one", "two", "three"},
		},
		{
			name:     "no complete line",
			feeds:    []string{"PING :tmi"},
			expected: nil,
		},
		{
			name:     "fragment completed by later feed",
			feeds:    []string{"PING :tmi", ".twitch.tv\r\n"},
			expected: []string{"PING :tmi.twitch.tv"},
		},
		{
			name:     "crlf split across feeds",
			feeds:    []string{"hello\r", "\nworld\r\n"},
			expected: []string{"hello", "world"},
		},
		{
			name:     "byte at a time",
			feeds:    []string{"h", "i", "\r", "\n", "y", "o", "\r", "\n"},
			expected: []string{"hi", "yo"},
		},
		{
			name:     "empty line",
			feeds:    []string{"\r\n"},
			expected: []string{""},
		},
		{
			name:     "bare lf is not a terminator",
			feeds:    []string{"one\ntwo\r\n"},
			expected: []string{"one\ntwo"},
		},
		{
			name:     "unterminated tail stays buffered",
			feeds:    []string{"done\r\nleftover"},
			expected: []string{"done"},
		},
		{
			name:     "invalid utf8 replaced",
			feeds:    []string{"ab\xffcd\r\n"},
			expected: []string{"ab�cd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Framer{}
			var got []string
			for _, feed := range tt.feeds {
				got = append(got, f.Feed([]byte(feed))...)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

// Framing must not depend on where the byte stream is cut: any split
// of the same input yields the same lines.
func TestFramer_SplitInvariance(t *testing.T) {
	input := "@color=#FF0000 :bob!bob@bob.tmi.twitch.tv PRIVMSG #chan :hello world\r\nPING :tmi.twitch.tv\r\nshort\r\n"

	whole := (&Framer{}).Feed([]byte(input))

	for cut := 1; cut < len(input); cut++ {
		f := &Framer{}
		got := append(f.Feed([]byte(input[:cut])), f.Feed([]byte(input[cut:]))...)
		assert.Equal(t, whole, got, "split at byte %d", cut)
	}

	// feed one byte at a time
	f := &Framer{}
	var got []string
	for i := 0; i < len(input); i++ {
		got = append(got, f.Feed([]byte{input[i]})...)
	}
	assert.Equal(t, whole, got)
}
