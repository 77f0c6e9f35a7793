package media

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/jens1o/smashcast/client"
)

// Emoji is a single chat emoji of a channel.
type Emoji struct {
	Path  string `json:"icon_path"`
	Words string `json:"words"`
}

// EmojiHandle is a channel's chat-emoji sub-resource. The first successful
// fetch is memoized for the handle's lifetime.
type EmojiHandle struct {
	api     client.Requester
	channel string
	log     *slog.Logger

	mu     sync.Mutex
	emojis []Emoji
	cached bool
}

// NewEmojiHandle creates the chat-emoji handle for the named channel.
func NewEmojiHandle(api client.Requester, channel string, log *slog.Logger) *EmojiHandle {
	if log == nil {
		log = slog.Default()
	}
	return &EmojiHandle{api: api, channel: channel, log: log}
}

type emojiResponse struct {
	Items []Emoji `json:"items"`
}

// List returns the channel's chat emojis, fetching them on first use.
// Absent on remote failure or when the response lacks the items field.
func (h *EmojiHandle) List(ctx context.Context) ([]Emoji, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cached {
		return h.emojis, true
	}

	var resp emojiResponse
	err := h.api.Request(ctx, http.MethodGet, "chat/icons/"+h.channel, client.RequestOptions{}, &resp)
	if err != nil {
		h.log.DebugContext(ctx, "chat emoji fetch failed", "channel", h.channel, "error", err)
		return nil, false
	}
	if resp.Items == nil {
		return nil, false
	}

	h.emojis = resp.Items
	h.cached = true
	return h.emojis, true
}
