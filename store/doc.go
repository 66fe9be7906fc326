/*
Package store provides the in-memory implementations of the KVStore
interface family defined in the root package.

The central piece is BTreeCacheWrap, a btree-backed scratch pad that can be
layered over any backing store. All writes stay in the cache until Write is
called, or disappear with Discard. Handlers always run against such a cache
so every operation commits atomically or not at all.
*/
package store
