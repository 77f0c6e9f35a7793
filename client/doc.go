// Package client issues the raw HTTP calls behind the Smashcast API wrapper.
//
// Client implements Requester (one JSON request/response exchange per call,
// optional auth-token append) and RawFetcher (byte downloads from the static
// media host). Failures are reported as apierror values of kind Remote;
// there are no retries and no rate limiting at this layer.
package client
