// Package client is the single choke point between the Zatyshok client and
// its HTTP backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     calendar and mood resources, login/register and the root ping.
//  2. A concrete HTTP implementation (see HTTPClient) that attaches the app
//     credential, client version, bearer session and request id to every
//     call, and triages each response through two checks: 401/403 tears the
//     session down, 426 raises the blocking version notice.
//
// # Error Handling
//
// Reads never fail: transport errors and non-success statuses degrade to an
// empty collection. Writes and auth return *Error, whose Kind is matched
// with errors.Is against ErrTransport, ErrAuthRejected, ErrVersionRejected,
// ErrDeleteFailed, ErrCredentials, ErrUnexpectedStatus and ErrDecode.
//
// # Concurrency
//
// HTTPClient is safe for concurrent use. Mutations are not queued unless
// Options.SerializeWrites is set, in which case at most one mutation per
// resource is in flight.
package client
