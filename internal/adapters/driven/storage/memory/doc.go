// Package memory provides in-memory closure storage: an LRU-bounded
// ClosureCache shared by the runs of one process, and a StaticResolver
// serving closures recorded ahead of time.
package memory
