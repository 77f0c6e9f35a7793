// Package media models channel sub-resources and static media assets.
//
// Live and Emojis are memoized per-channel handles over the media/live and
// chat/icons endpoints. Logo is a lazy handle on a remotely hosted image:
// content is fetched on first access and cached for the handle's lifetime.
package media
