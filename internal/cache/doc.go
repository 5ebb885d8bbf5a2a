// Package cache provides an LRU block cache for column-file pages.
//
// ShardedLRUBlockCache distributes entries across 64 shards so concurrent
// readers of remote column files rarely contend on the same mutex. Memory
// consumption can be bounded globally through a resource.Controller.
package cache
