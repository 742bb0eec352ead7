package app

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"
	router "twitchchat/internal/app/adapters/http"
	"twitchchat/internal/app/adapters/metrics"
	"twitchchat/internal/app/adapters/twitch/irc"
	"twitchchat/internal/app/domain/stream"
	"twitchchat/internal/app/infrastructure/config"
	"twitchchat/internal/app/infrastructure/storage"
	"twitchchat/internal/app/ports"
	"twitchchat/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const configPath = "config.json"

func New() error {
	log := logger.New()

	manager, err := config.New(configPath)
	if err != nil {
		log.Fatal("Error loading config", err)
	}

	cfg := manager.Get()
	log.SetLogLevel(cfg.App.LogLevel)
	gin.SetMode(cfg.App.GinMode)

	if err := os.MkdirAll("cache", 0700); err != nil {
		log.Error("Error creating cache directory", err)
		return err
	}

	metrics.StartCPUSampler(15 * time.Second)

	cacheStats := storage.NewCache[stream.SessionStats](0, 0, true, true, "cache/stats.json", 0)

	client := irc.New(log, cfg)
	streams := make(map[string]ports.StreamPort, len(cfg.App.Channels))
	logs := make(map[string]logger.Logger, len(cfg.App.Channels))
	for _, channel := range cfg.App.Channels {
		streams[channel] = stream.NewStream(channel, cacheStats)
		logs[channel] = logger.NewPrefixedLogger(log, channel)
		if err := client.Join(channel); err != nil {
			return err
		}
	}

	go runChat(log, client, streams, logs)

	if cfg.App.ListenAddr == "" {
		select {}
	}
	return router.NewRouter(log, manager).Run()
}

// runChat drives the connection: dial, pull messages until the stream
// ends, redial. Reconnect policy lives here, not in the client.
func runChat(log logger.Logger, client *irc.Client, streams map[string]ports.StreamPort, logs map[string]logger.Logger) {
	limiter := rate.NewLimiter(rate.Every(30*time.Second), 1)

	for {
		if err := client.Connect(); err != nil {
			log.Error("Failed to connect to IRC chat Twitch", err)
			time.Sleep(5 * time.Second)
			continue
		}

		for {
			msg, err := client.Next()
			if err != nil {
				if errors.Is(err, irc.ErrReconnect) {
					log.Warn("Server requested reconnect")
				} else {
					log.Error("IRC connection lost, retrying...", err)
				}
				metrics.Reconnects.Inc()
				_ = client.Close()
				time.Sleep(time.Second)
				break
			}

			clog := log
			if l, ok := logs[msg.Channel]; ok {
				clog = l
			}
			clog.Debug("New message",
				slog.String("username", msg.Name),
				slog.String("text", msg.Text),
				slog.Bool("isFirst", msg.FirstMessage))

			metrics.MessagesPerChannel.WithLabelValues(msg.Channel).Inc()
			if st, ok := streams[msg.Channel]; ok {
				st.AddMessage(msg.Name, msg.FirstMessage)
			}

			respond(client, limiter, clog, msg)
		}
	}
}

// respond answers chat commands addressed to the bot.
func respond(chat ports.ChatPort, limiter *rate.Limiter, log logger.Logger, msg *irc.ChatMessage) {
	if !strings.EqualFold(strings.TrimSpace(msg.Text), "!ping") {
		return
	}
	if !limiter.Allow() {
		return
	}

	if err := chat.Reply(msg.MessageID, msg.Channel, "pong"); err != nil {
		log.Error("Failed to send reply", err)
	}
}
