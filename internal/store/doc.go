// Package store provides the record store backends: an in-memory slice,
// a JSON file rewritten wholesale on every mutation, and a SQLite
// database. All three implement quiz.Store and serialize concurrent
// calls so sessions never observe a partial mutation.
package store
