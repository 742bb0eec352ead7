package ports

type ChatPort interface {
	Connect() error
	Close() error
	Join(channel string) error
	Part(channel string) error
	Say(message, channel string) error
	Reply(messageID, channel, message string) error
}

type StreamPort interface {
	ChannelName() string
	AddMessage(username string, first bool)
}
