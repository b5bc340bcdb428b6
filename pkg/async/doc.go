// Package async provides small helpers for background work.
//
// Run starts a computation and hands back a Future to await. Fire starts
// explicitly fire-and-forget work on a detached, bounded context — the tool
// for best-effort side effects (metadata updates, counters) that must never
// block or fail a request.
package async
