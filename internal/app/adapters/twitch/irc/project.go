package irc

import (
	"strconv"
	"strings"
)

// Event is one projected inbound message. Concrete types: *ChatMessage
// for PRIVMSG, PingEvent for PING, ReconnectEvent for RECONNECT.
// Everything else projects to nil.
type Event interface {
	event()
}

// PingEvent carries the server token that must be echoed back in a
// PONG to keep the connection alive.
type PingEvent struct {
	Token string
}

// ReconnectEvent is Twitch telling the client to drop the connection
// and redial.
type ReconnectEvent struct{}

// ChatMessage is one PRIVMSG with its Twitch tag metadata coerced into
// typed fields. Tags the server did not send keep their zero values.
type ChatMessage struct {
	Badges           map[string]struct{}
	Color            string
	DisplayName      string
	FirstMessage     bool
	MessageID        string
	Mod              bool
	Broadcaster      bool
	ReturningChatter bool
	RoomID           int
	Subscriber       bool
	Turbo            bool
	UserID           int
	Name             string
	Channel          string
	Text             string
}

func (*ChatMessage) event()   {}
func (PingEvent) event()      {}
func (ReconnectEvent) event() {}

// Project maps a decoded message onto its chat-level meaning. Tag
// handling is total: a missing or malformed tag falls back to its zero
// value, never an error, because Twitch does not guarantee the tag set
// per message.
func Project(msg *Message) Event {
	switch strings.ToUpper(msg.Command) {
	case "PING":
		return PingEvent{Token: msg.Trailing()}
	case "RECONNECT":
		return ReconnectEvent{}
	case "PRIVMSG":
		return projectPrivmsg(msg)
	default:
		return nil
	}
}

func projectPrivmsg(msg *Message) *ChatMessage {
	m := &ChatMessage{
		Badges: make(map[string]struct{}),
		Name:   msg.Nick(),
	}

	if len(msg.Params) > 0 {
		m.Channel = strings.TrimPrefix(msg.Params[0], "#")
	}
	if len(msg.Params) > 1 {
		m.Text = msg.Trailing()
	}

	if v := msg.Tags["badges"]; v != "" {
		for _, entry := range strings.Split(v, ",") {
			name, _, _ := strings.Cut(entry, "/")
			if name == "" {
				continue
			}
			m.Badges[name] = struct{}{}
			if name == "broadcaster" {
				m.Broadcaster = true
			}
		}
	}

	m.Color = msg.Tags["color"]
	m.DisplayName = msg.Tags["display-name"]
	m.FirstMessage = msg.Tags["first-msg"] == "1"
	m.MessageID = msg.Tags["id"]
	m.Mod = msg.Tags["mod"] == "1"
	m.ReturningChatter = msg.Tags["returning-chatter"] == "1"
	m.RoomID = tagInt(msg.Tags, "room-id")
	m.Subscriber = msg.Tags["subscriber"] == "1"
	m.Turbo = msg.Tags["turbo"] == "1"
	m.UserID = tagInt(msg.Tags, "user-id")

	return m
}

func tagInt(tags map[string]string, key string) int {
	n, err := strconv.Atoi(tags[key])
	if err != nil {
		return 0
	}
	return n
}
