package irc

import "strings"

// Outbound wire lines. Every encoder is a pure function returning one
// complete CRLF-terminated line; serializing the writes is the
// caller's job. Caller-supplied text containing CR or LF corrupts the
// frame and is a contract violation, not something sanitized here.

func PassLine(token string) string {
	return "PASS " + token + "\r\n"
}

func NickLine(user string) string {
	return "NICK " + user + "\r\n"
}

func JoinLine(channel string) string {
	return "JOIN #" + strings.TrimPrefix(channel, "#") + "\r\n"
}

func PartLine(channel string) string {
	return "PART #" + strings.TrimPrefix(channel, "#") + "\r\n"
}

func PrivmsgLine(channel, text string) string {
	return "PRIVMSG #" + strings.TrimPrefix(channel, "#") + " :" + text + "\r\n"
}

// ReplyLine threads text onto an earlier message via the
// reply-parent-msg-id tag. The id is escaped per the IRCv3 tag rules
// so it round-trips through ParseMessage.
func ReplyLine(messageID, channel, text string) string {
	return "@reply-parent-msg-id=" + escapeTagValue(messageID) +
		" PRIVMSG #" + strings.TrimPrefix(channel, "#") + " :" + text + "\r\n"
}

func PongLine(token string) string {
	return "PONG :" + token + "\r\n"
}

func CapReqLine(capability string) string {
	return "CAP REQ :" + capability + "\r\n"
}
