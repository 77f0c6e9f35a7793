// Package user looks up public profiles and hands out logo handles.
package user

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jens1o/smashcast/client"
	"github.com/jens1o/smashcast/media"
)

// Profile is a user's public profile. The API answers unknown names with a
// body whose user_name is null, so a present UserName marks a real profile.
type Profile struct {
	UserName      string `json:"user_name"`
	UserID        string `json:"user_id"`
	IsLive        string `json:"is_live"`
	LogoPath      string `json:"user_logo"`
	SmallLogoPath string `json:"user_logo_small"`
	CoverPath     string `json:"user_cover"`

	assets    client.RawFetcher
	mediaBase string
}

// Live reports whether the user is currently broadcasting.
func (p *Profile) Live() bool {
	return p.IsLive == "1"
}

// Logo returns a lazy handle on the user's logo, or nil when the profile
// carries none.
func (p *Profile) Logo() *media.Logo {
	if p.LogoPath == "" {
		return nil
	}
	return media.NewLogo(p.assets, p.mediaBase, p.LogoPath)
}

// SmallLogo returns a lazy handle on the user's small logo, or nil when the
// profile carries none.
func (p *Profile) SmallLogo() *media.Logo {
	if p.SmallLogoPath == "" {
		return nil
	}
	return media.NewLogo(p.assets, p.mediaBase, p.SmallLogoPath)
}

// Service fetches user profiles.
type Service struct {
	api       client.Requester
	assets    client.RawFetcher
	mediaBase string
	log       *slog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger overrides the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates a profile lookup service. assets and mediaBase are
// handed to the logo handles the service gives out.
func NewService(api client.Requester, assets client.RawFetcher, mediaBase string, opts ...Option) *Service {
	s := &Service{
		api:       api,
		assets:    assets,
		mediaBase: mediaBase,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get fetches the named user's profile. Absent on remote failure or when
// the response marks the user as unknown.
func (s *Service) Get(ctx context.Context, username string) (*Profile, bool) {
	var profile Profile
	err := s.api.Request(ctx, http.MethodGet, "user/"+username, client.RequestOptions{}, &profile)
	if err != nil {
		s.log.DebugContext(ctx, "profile fetch failed", "user", username, "error", err)
		return nil, false
	}
	if profile.UserName == "" {
		return nil, false
	}

	profile.assets = s.assets
	profile.mediaBase = s.mediaBase
	return &profile, true
}
