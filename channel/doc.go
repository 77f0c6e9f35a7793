// Package channel wraps the channel-scoped operations of the Smashcast API.
//
// A Channel is a per-name value object over a shared Requester. Editor,
// hosting, and view-count reads are memoized per instance; editor mutations
// invalidate the list caches. Remote failures normalize to absence/false,
// while client-side precondition violations surface as invalid-usage errors
// before any network call.
package channel
