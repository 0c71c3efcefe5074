// Package reactive implements a fine-grained reactive value graph:
// writable signals, memoized derived signals, and watches driven by a
// batching effect scheduler, connected by a producer/consumer dependency
// graph with push invalidation and pull revalidation.
package reactive
