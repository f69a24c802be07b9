// Package kvstore defines the small key-value contract notifykit uses for
// state that outlives a single wizard run: the bearer credential and the
// send counters. It plays the role browser local storage plays for the web
// front end.
//
// Two implementations live here: Memory for tests and throwaway runs, and
// File, a JSON document on disk used by the CLI. A Redis-backed Store is
// provided by package redis.
package kvstore
