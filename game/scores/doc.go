// Package scores keeps the history of finished games.
//
// Only the ten most recent games are kept, newest first. MemoryStore is
// used when no scores file is configured; FileStore rewrites a single JSON
// file on every record so the history survives restarts.
package scores
