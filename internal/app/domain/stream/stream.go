package stream

import (
	"sync"
	"twitchchat/internal/app/infrastructure/storage"
)

// SessionStats is the per-channel chat activity snapshot persisted
// between runs.
type SessionStats struct {
	Messages      int            `json:"messages"`
	FirstMessages int            `json:"first_messages"`
	Chatters      map[string]int `json:"chatters"`
}

// Stream is one joined channel: its name plus running chat stats.
type Stream struct {
	mu          sync.RWMutex
	channelName string
	stats       SessionStats

	cache *storage.Cache[SessionStats]
}

func NewStream(channelName string, cache *storage.Cache[SessionStats]) *Stream {
	s := &Stream{
		channelName: channelName,
		cache:       cache,
	}

	if prev, ok := cache.Get(channelName); ok {
		s.stats = prev
	}
	if s.stats.Chatters == nil {
		s.stats.Chatters = make(map[string]int)
	}

	return s
}

func (s *Stream) ChannelName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.channelName
}

// AddMessage records one chat message from username.
func (s *Stream) AddMessage(username string, first bool) {
	s.mu.Lock()
	s.stats.Messages++
	if first {
		s.stats.FirstMessages++
	}
	if username != "" {
		s.stats.Chatters[username]++
	}
	snapshot := s.stats
	snapshot.Chatters = make(map[string]int, len(s.stats.Chatters))
	for k, v := range s.stats.Chatters {
		snapshot.Chatters[k] = v
	}
	s.mu.Unlock()

	s.cache.Set(s.channelName, snapshot)
}

func (s *Stream) Stats() SessionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}
