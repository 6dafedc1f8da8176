// Package bridge provides the client-side access layer for the PosalPro API.
//
// A Bridge is a per-resource façade that combines four concerns in front of
// the HTTP client:
//
//   - a TTL-bound request cache so repeated reads skip the network,
//   - in-flight request coalescing so concurrent identical reads share one call,
//   - a permission gate that denies locally, with audit logging, before any
//     network traffic happens,
//   - uniform success/error envelopes so callers branch on a discriminant
//     instead of catching errors.
//
// Mutating operations bypass the cache and coalescing, and invalidate the
// affected key prefixes after completion.
package bridge
