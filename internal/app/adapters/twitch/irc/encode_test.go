package irc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeLines(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{"pass", PassLine("oauth:abc123"), "PASS oauth:abc123\r\n"},
		{"nick", NickLine("somebot"), "NICK somebot\r\n"},
		{"join", JoinLine("somechannel"), "JOIN #somechannel\r\n"},
		{"join with hash", JoinLine("#somechannel"), "JOIN #somechannel\r\n"},
		{"part", PartLine("somechannel"), "PART #somechannel\r\n"},
		{"privmsg", PrivmsgLine("chan", "hi"), "PRIVMSG #chan :hi\r\n"},
		{"reply", ReplyLine("msg1", "chan", "hi"), "@reply-parent-msg-id=msg1 PRIVMSG #chan :hi\r\n"},
		{"pong", PongLine("tmi.twitch.tv"), "PONG :tmi.twitch.tv\r\n"},
		{"cap req", CapReqLine("twitch.tv/tags"), "CAP REQ :twitch.tv/tags\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.line)
		})
	}
}

func TestPrivmsgRoundTrip(t *testing.T) {
	msg := ParseMessage(trimCRLF(PrivmsgLine("chan", "hi")))

	assert.NotNil(t, msg)
	assert.Equal(t, "PRIVMSG", msg.Command)
	assert.Equal(t, []string{"#chan", "hi"}, msg.Params)
	assert.Equal(t, "hi", msg.Trailing())
}

// A message id carrying tag-special characters must survive the reply
// tag segment unchanged.
func TestReplyTagRoundTrip(t *testing.T) {
	id := "abc;def ghi\\jkl"

	msg := ParseMessage(trimCRLF(ReplyLine(id, "chan", "text")))

	assert.NotNil(t, msg)
	assert.Equal(t, id, msg.Tags["reply-parent-msg-id"])
	assert.Equal(t, []string{"#chan", "text"}, msg.Params)
}

func trimCRLF(s string) string {
	return s[:len(s)-2]
}
