package media

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jens1o/smashcast/client"
)

// timeLayout is the timestamp format of the media endpoints (UTC).
const timeLayout = "2006-01-02 15:04:05"

// LiveInfo describes a channel's live media entry.
type LiveInfo struct {
	ID          string `json:"media_id"`
	Channel     string `json:"media_user_name"`
	Title       string `json:"media_status"`
	IsLive      string `json:"media_is_live"`
	LiveSince   string `json:"media_live_since"`
	TimeCreated string `json:"media_time_created"`
	Category    string `json:"category_name"`
}

// Live reports whether the media entry is currently broadcasting.
func (i *LiveInfo) Live() bool {
	return i.IsLive == "1"
}

// LiveHandle is a channel's live-media sub-resource. The first successful
// fetch is memoized for the handle's lifetime.
type LiveHandle struct {
	api     client.Requester
	channel string
	log     *slog.Logger

	mu   sync.Mutex
	info *LiveInfo
}

// NewLiveHandle creates the live-media handle for the named channel.
func NewLiveHandle(api client.Requester, channel string, log *slog.Logger) *LiveHandle {
	if log == nil {
		log = slog.Default()
	}
	return &LiveHandle{api: api, channel: channel, log: log}
}

type liveResponse struct {
	Livestream []LiveInfo `json:"livestream"`
}

// Info returns the live media entry, fetching it on first use. Absent on
// remote failure or when the response carries no entry.
func (h *LiveHandle) Info(ctx context.Context) (*LiveInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.info != nil {
		return h.info, true
	}

	var resp liveResponse
	err := h.api.Request(ctx, http.MethodGet, "media/live/"+h.channel, client.RequestOptions{}, &resp)
	if err != nil {
		h.log.DebugContext(ctx, "live media fetch failed", "channel", h.channel, "error", err)
		return nil, false
	}
	if len(resp.Livestream) == 0 {
		return nil, false
	}

	h.info = &resp.Livestream[0]
	return h.info, true
}

// TimeCreated reports when the media entry was created. Absent when the
// entry is unavailable or the timestamp cannot be parsed.
func (h *LiveHandle) TimeCreated(ctx context.Context) (time.Time, bool) {
	info, ok := h.Info(ctx)
	if !ok || info.TimeCreated == "" {
		return time.Time{}, false
	}

	created, err := time.ParseInLocation(timeLayout, info.TimeCreated, time.UTC)
	if err != nil {
		h.log.DebugContext(ctx, "unparseable media creation time", "channel", h.channel, "value", info.TimeCreated)
		return time.Time{}, false
	}

	return created, true
}
