// Package driver holds the Driver aggregate: the person who claims queued orders and
// carries them to clients.
//
// A driver may be addressed by its own id or by the id of the user account linked to it.
// Resolving that ambiguity is the job of services.DriverResolver; this package only keeps
// the link consistent (at most one driver per user).
package driver
