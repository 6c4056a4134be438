// Package registry is a small name-keyed, concurrency-safe store. Builtin
// secondary installers register themselves into one from init().
package registry
