package irc

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"twitchchat/internal/app/adapters/metrics"
	"twitchchat/internal/app/infrastructure/config"
	"twitchchat/pkg/logger"
)

const serverAddr = "irc.chat.twitch.tv:443"

// Anonymous read-only login used when the config carries no credentials.
const (
	anonUser  = "justinfan12345"
	anonToken = "1234567890"
)

// ErrReconnect ends a Next stream when the server sends RECONNECT; the
// caller is expected to Close and Connect again.
var ErrReconnect = errors.New("server requested reconnect")

// ErrNotConnected is returned for reads and writes before Connect.
var ErrNotConnected = errors.New("not connected")

// Client is one Twitch IRC connection. Inbound messages are pulled
// with Next by a single consumer; outbound writes are serialized
// internally and may come from other goroutines.
type Client struct {
	log logger.Logger
	cfg *config.Config

	mu       sync.Mutex // guards conn writes and the channel set
	conn     net.Conn
	channels map[string]bool

	framer  *Framer
	pending []string
	readBuf []byte
}

func New(log logger.Logger, cfg *config.Config) *Client {
	return &Client{
		log:      log,
		cfg:      cfg,
		channels: make(map[string]bool),
		readBuf:  make([]byte, 2048),
	}
}

// Connect dials the chat endpoint over TLS, authenticates, requests
// the tags and commands capabilities and rejoins every tracked
// channel.
func (c *Client) Connect() error {
	conn, err := tls.Dial("tcp", serverAddr, &tls.Config{MinVersion: tls.VersionTLS12})
	if err != nil {
		return fmt.Errorf("dial %s: %w", serverAddr, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.framer = &Framer{}
	c.pending = nil

	user, token := c.cfg.App.Username, strings.TrimPrefix(c.cfg.App.OAuth, "oauth:")
	if user == "" || token == "" {
		user, token = anonUser, anonToken
	}

	c.writeLocked(PassLine("oauth:" + token))
	c.writeLocked(NickLine(user))
	c.writeLocked(CapReqLine("twitch.tv/tags"))
	c.writeLocked(CapReqLine("twitch.tv/commands"))

	for ch := range c.channels {
		c.writeLocked(JoinLine(ch))
	}
	c.mu.Unlock()

	metrics.Connected.Set(1)
	c.log.Info("Connected to Twitch IRC", slog.String("user", user))
	return nil
}

// Close drops the connection. A blocked Next returns with the read
// error this causes.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	metrics.Connected.Set(0)
	return err
}

// Join adds the channel to the tracked set and joins it if connected.
// Joining a channel twice is a no-op.
func (c *Client) Join(channel string) error {
	channel = strings.ToLower(strings.TrimPrefix(channel, "#"))

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channels[channel] {
		return nil
	}
	c.channels[channel] = true

	if c.conn == nil {
		return nil
	}
	return c.writeLocked(JoinLine(channel))
}

func (c *Client) Part(channel string) error {
	channel = strings.ToLower(strings.TrimPrefix(channel, "#"))

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.channels[channel] {
		return nil
	}
	delete(c.channels, channel)

	if c.conn == nil {
		return nil
	}
	return c.writeLocked(PartLine(channel))
}

// Say sends a chat message to the channel. Twitch cuts messages at 500
// characters, longer ones are rejected here instead of sent truncated.
func (c *Client) Say(message, channel string) error {
	if len(message) >= 500 {
		return fmt.Errorf("message too long: %d chars", len(message))
	}
	return c.write(PrivmsgLine(channel, message))
}

// Reply sends a chat message threaded onto the message with the given id.
func (c *Client) Reply(messageID, channel, message string) error {
	if len(message) >= 500 {
		return fmt.Errorf("message too long: %d chars", len(message))
	}
	return c.write(ReplyLine(messageID, channel, message))
}

// Next blocks until the next chat message arrives on the connection.
// Server PINGs are answered inline and never yielded; RECONNECT ends
// the stream with ErrReconnect; EOF or a read failure ends it with
// that error. Single consumer only.
func (c *Client) Next() (*ChatMessage, error) {
	for {
		line, err := c.readLine()
		if err != nil {
			metrics.Connected.Set(0)
			return nil, err
		}

		msg := ParseMessage(line)
		if msg == nil {
			continue
		}

		switch ev := Project(msg).(type) {
		case PingEvent:
			c.log.Debug("Answering keepalive", slog.String("token", ev.Token))
			metrics.Pings.Inc()
			if err := c.write(PongLine(ev.Token)); err != nil {
				return nil, fmt.Errorf("pong: %w", err)
			}
		case ReconnectEvent:
			return nil, ErrReconnect
		case *ChatMessage:
			return ev, nil
		default:
			c.log.Trace("Ignoring line", slog.String("command", msg.Command))
		}
	}
}

// readLine reads the socket until the framer yields at least one
// complete line. Lines framed before a read error are still delivered
// first; the error surfaces once they are drained.
func (c *Client) readLine() (string, error) {
	for len(c.pending) == 0 {
		if c.conn == nil {
			return "", ErrNotConnected
		}

		n, err := c.conn.Read(c.readBuf)
		if n > 0 {
			c.pending = append(c.pending, c.framer.Feed(c.readBuf[:n])...)
		}
		if err != nil && len(c.pending) == 0 {
			return "", err
		}
	}

	line := c.pending[0]
	c.pending = c.pending[1:]
	return line, nil
}

func (c *Client) write(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeLocked(line)
}

func (c *Client) writeLocked(line string) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	_, err := c.conn.Write([]byte(line))
	return err
}
