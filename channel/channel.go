package channel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jens1o/smashcast/apierror"
	"github.com/jens1o/smashcast/client"
	"github.com/jens1o/smashcast/media"
	"golang.org/x/sync/singleflight"
)

// Editor is a user with delegated management permission over a channel.
type Editor struct {
	UserName string `json:"user_name"`
	UserID   string `json:"user_id"`
}

// Hoster is a channel relaying this channel's broadcast to its audience.
type Hoster struct {
	UserName string `json:"user_name"`
	UserID   string `json:"user_id"`
}

// Channel exposes the channel-scoped remote operations. The name is
// canonicalized to lowercase at construction and immutable thereafter.
// Cache fields are owned exclusively by the instance; concurrent refreshes
// of the same field are deduplicated and resolve last-write-wins.
type Channel struct {
	name string
	api  client.Requester
	log  *slog.Logger

	mu            sync.Mutex
	editors       []Editor
	editorsCached bool
	hosters       []Hoster
	hostersCached bool
	views         *int

	liveOnce  sync.Once
	live      *media.LiveHandle
	emojiOnce sync.Once
	emojis    *media.EmojiHandle

	group singleflight.Group
}

// Option customizes a Channel.
type Option func(*Channel)

// WithLogger overrides the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Channel) { c.log = log }
}

// New creates the facade for the named channel. The name is caller-supplied
// and trusted; it is never re-derived from a response.
func New(api client.Requester, name string, opts ...Option) *Channel {
	c := &Channel{
		name: strings.ToLower(name),
		api:  api,
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the canonical (lowercased) channel name.
func (c *Channel) Name() string {
	return c.name
}

// String returns the canonical channel name.
func (c *Channel) String() string {
	return c.name
}

type ackResponse struct {
	Message string `json:"message"`
}

type streamKeyResponse struct {
	StreamKey string `json:"streamKey"`
}

// StreamKey returns the channel's secret broadcast key. The key may rotate
// server-side at any time, so it is never cached. Absent on failure.
func (c *Channel) StreamKey(ctx context.Context) (string, bool) {
	return c.fetchStreamKey(ctx, http.MethodGet)
}

// ResetStreamKey rotates the broadcast key server-side and returns the new
// key. Absent on failure.
func (c *Channel) ResetStreamKey(ctx context.Context) (string, bool) {
	return c.fetchStreamKey(ctx, http.MethodPut)
}

func (c *Channel) fetchStreamKey(ctx context.Context, method string) (string, bool) {
	var resp streamKeyResponse
	err := c.api.Request(ctx, method, "mediakey/"+c.name, client.RequestOptions{AppendAuthToken: true}, &resp)
	if err != nil {
		c.log.DebugContext(ctx, "stream key unavailable", "channel", c.name, "error", err)
		return "", false
	}
	if resp.StreamKey == "" {
		return "", false
	}
	return resp.StreamKey, true
}

// Editors returns the channel's editor list. Served from cache unless
// skipCache is set or the cache is empty; a successful fetch refreshes the
// cache. Absent on failure.
func (c *Channel) Editors(ctx context.Context, skipCache bool) ([]Editor, bool) {
	if !skipCache {
		c.mu.Lock()
		if c.editorsCached {
			list := c.editors
			c.mu.Unlock()
			return list, true
		}
		c.mu.Unlock()
	}

	v, err, _ := c.group.Do("editors", func() (any, error) {
		var resp struct {
			List []Editor `json:"list"`
		}
		err := c.api.Request(ctx, http.MethodGet, "editor/list/"+c.name, client.RequestOptions{AppendAuthToken: true}, &resp)
		if err != nil {
			return nil, err
		}
		if resp.List == nil {
			return nil, apierror.Remote("response missing list field", nil)
		}

		c.mu.Lock()
		c.editors = resp.List
		c.editorsCached = true
		c.mu.Unlock()

		return resp.List, nil
	})
	if err != nil {
		c.log.DebugContext(ctx, "editor list unavailable", "channel", c.name, "error", err)
		return nil, false
	}

	return v.([]Editor), true
}

// IsEditor reports whether name is an editor of the channel, comparing
// case-insensitively against the (cache-respecting) editor list.
func (c *Channel) IsEditor(ctx context.Context, name string) bool {
	needle := strings.ToLower(name)

	editors, ok := c.Editors(ctx, false)
	if !ok {
		return false
	}
	for i := range editors {
		if strings.ToLower(editors[i].UserName) == needle {
			return true
		}
	}
	return false
}

// cachedEditorState reports whether needle (already lowercased) appears in
// the editor cache, and whether the cache is populated at all.
func (c *Channel) cachedEditorState(needle string) (found, cached bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.editorsCached {
		return false, false
	}
	for i := range c.editors {
		if strings.ToLower(c.editors[i].UserName) == needle {
			return true, true
		}
	}
	return false, true
}

// AddEditor grants name editor permission. Precondition violations (adding
// the owner, or a user already cached as an editor) return an invalid-usage
// error before any request; remote failures return false without error. On
// success both the editor and hosting caches are invalidated.
func (c *Channel) AddEditor(ctx context.Context, name string) (bool, error) {
	needle := strings.ToLower(name)

	if needle == c.name {
		return false, apierror.InvalidUsage("cannot add the channel owner as an editor")
	}
	if found, cached := c.cachedEditorState(needle); cached && found {
		return false, apierror.InvalidUsage(fmt.Sprintf("%s is already an editor of %s", needle, c.name))
	}

	return c.mutateEditor(ctx, name, false), nil
}

// RemoveEditor revokes name's editor permission. Mirror-image preconditions
// of AddEditor; same success and invalidation contract.
func (c *Channel) RemoveEditor(ctx context.Context, name string) (bool, error) {
	needle := strings.ToLower(name)

	if needle == c.name {
		return false, apierror.InvalidUsage("cannot remove the channel owner from the editors")
	}
	if found, cached := c.cachedEditorState(needle); cached && !found {
		return false, apierror.InvalidUsage(fmt.Sprintf("%s is not an editor of %s", needle, c.name))
	}

	return c.mutateEditor(ctx, name, true), nil
}

func (c *Channel) mutateEditor(ctx context.Context, name string, remove bool) bool {
	opts := client.RequestOptions{
		Body:            map[string]any{"editor": name, "remove": remove},
		AppendAuthToken: true,
	}

	var resp ackResponse
	if err := c.api.Request(ctx, http.MethodPut, "editor/"+c.name, opts, &resp); err != nil {
		c.log.DebugContext(ctx, "editor mutation failed", "channel", c.name, "editor", name, "remove", remove, "error", err)
		return false
	}
	if resp.Message != "success" {
		return false
	}

	c.InvalidateCache()
	return true
}

// Action describes what ToggleEditor did.
type Action string

const (
	ActionAdded   Action = "added"
	ActionRemoved Action = "removed"
)

// ToggleResult is the outcome of a ToggleEditor call.
type ToggleResult struct {
	Success bool
	Action  Action
}

// ToggleEditor checks name's editor status once, then adds or removes
// accordingly.
func (c *Channel) ToggleEditor(ctx context.Context, name string) (ToggleResult, error) {
	if c.IsEditor(ctx, name) {
		ok, err := c.RemoveEditor(ctx, name)
		return ToggleResult{Success: ok, Action: ActionRemoved}, err
	}

	ok, err := c.AddEditor(ctx, name)
	return ToggleResult{Success: ok, Action: ActionAdded}, err
}

const (
	tweetSuffix    = " via @smashcast_tv"
	maxTweetLength = 144
)

// SendTweet posts message to the channel's linked Twitter account. The
// message plus the platform-attribution suffix must fit the tweet budget;
// violations return an invalid-usage error before any request.
func (c *Channel) SendTweet(ctx context.Context, message string) (bool, error) {
	if len(message)+len(tweetSuffix) > maxTweetLength {
		return false, apierror.InvalidUsage(fmt.Sprintf("tweet exceeds %d characters including the %q suffix", maxTweetLength, tweetSuffix))
	}
	return c.socialPost(ctx, "twitter/post", message), nil
}

// SendFacebookPost posts message to the channel's linked Facebook account.
// The remote limit is large enough that no client-side length check is
// needed; the error return is always nil and kept for symmetry with
// SendTweet.
func (c *Channel) SendFacebookPost(ctx context.Context, message string) (bool, error) {
	return c.socialPost(ctx, "facebook/post", message), nil
}

func (c *Channel) socialPost(ctx context.Context, path, message string) bool {
	opts := client.RequestOptions{
		Query:           url.Values{"user_name": {c.name}},
		Body:            map[string]string{"message": message},
		AppendAuthToken: true,
	}

	var resp ackResponse
	if err := c.api.Request(ctx, http.MethodPost, path, opts, &resp); err != nil {
		c.log.DebugContext(ctx, "social post failed", "channel", c.name, "target", path, "error", err)
		return false
	}
	return resp.Message == "success"
}

// Hosters returns the channels currently hosting this channel. Same caching
// contract as Editors.
func (c *Channel) Hosters(ctx context.Context, skipCache bool) ([]Hoster, bool) {
	if !skipCache {
		c.mu.Lock()
		if c.hostersCached {
			list := c.hosters
			c.mu.Unlock()
			return list, true
		}
		c.mu.Unlock()
	}

	v, err, _ := c.group.Do("hosters", func() (any, error) {
		var resp struct {
			Hosters []Hoster `json:"hosters"`
		}
		err := c.api.Request(ctx, http.MethodGet, "hosters/"+c.name, client.RequestOptions{AppendAuthToken: true}, &resp)
		if err != nil {
			return nil, err
		}
		if resp.Hosters == nil {
			return nil, apierror.Remote("response missing hosters field", nil)
		}

		c.mu.Lock()
		c.hosters = resp.Hosters
		c.hostersCached = true
		c.mu.Unlock()

		return resp.Hosters, nil
	})
	if err != nil {
		c.log.DebugContext(ctx, "hoster list unavailable", "channel", c.name, "error", err)
		return nil, false
	}

	return v.([]Hoster), true
}

// IsHoster reports whether name currently hosts the channel, comparing
// case-insensitively against the (cache-respecting) hoster list.
func (c *Channel) IsHoster(ctx context.Context, name string) bool {
	needle := strings.ToLower(name)

	hosters, ok := c.Hosters(ctx, false)
	if !ok {
		return false
	}
	for i := range hosters {
		if strings.ToLower(hosters[i].UserName) == needle {
			return true
		}
	}
	return false
}

// TotalViews returns the channel's accumulated live view count. Zero is a
// valid cached value, distinct from absence. A failed fetch clears the
// cache rather than leaving it stale. Single attempt, no retry.
func (c *Channel) TotalViews(ctx context.Context, skipCache bool) (int, bool) {
	if !skipCache {
		c.mu.Lock()
		if c.views != nil {
			v := *c.views
			c.mu.Unlock()
			return v, true
		}
		c.mu.Unlock()
	}

	v, err, _ := c.group.Do("views", func() (any, error) {
		var resp struct {
			Total *viewCount `json:"total_live_views"`
		}
		err := c.api.Request(ctx, http.MethodGet, "media/views/"+c.name, client.RequestOptions{}, &resp)
		if err != nil {
			return 0, err
		}
		if resp.Total == nil {
			return 0, apierror.Remote("response missing total_live_views field", nil)
		}

		total := int(*resp.Total)
		c.mu.Lock()
		c.views = &total
		c.mu.Unlock()

		return total, nil
	})
	if err != nil {
		c.mu.Lock()
		c.views = nil
		c.mu.Unlock()
		c.log.DebugContext(ctx, "view count unavailable", "channel", c.name, "error", err)
		return 0, false
	}

	return v.(int), true
}

// InvalidateCache clears the editor and hosting caches only; the view count
// cache and the sub-resource handles stay untouched. Returns the receiver
// for chaining.
func (c *Channel) InvalidateCache() *Channel {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.editors = nil
	c.editorsCached = false
	c.hosters = nil
	c.hostersCached = false

	return c
}

// LiveMedia returns the channel's live-media handle, constructing it on
// first call. The handle is owned exclusively by this Channel.
func (c *Channel) LiveMedia() *media.LiveHandle {
	c.liveOnce.Do(func() {
		c.live = media.NewLiveHandle(c.api, c.name, c.log)
	})
	return c.live
}

// ChatEmojis returns the channel's chat-emoji handle, constructing it on
// first call.
func (c *Channel) ChatEmojis() *media.EmojiHandle {
	c.emojiOnce.Do(func() {
		c.emojis = media.NewEmojiHandle(c.api, c.name, c.log)
	})
	return c.emojis
}

// TimeCreated reports when the channel's media entry was created,
// delegating to the live-media handle. Absent when that resource cannot
// report a creation time.
func (c *Channel) TimeCreated(ctx context.Context) (time.Time, bool) {
	return c.LiveMedia().TimeCreated(ctx)
}
