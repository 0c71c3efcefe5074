// Package graph implements the reactive graph core: the producer/consumer
// dependency tracking with push-based invalidation and pull-based
// validation shared by every node variant (writable signal, memo, watch).
//
// A Node is a common record, not a base class. The two variant-dependent
// hooks (onDependencyChange, valueChangedSince) are plain closures the
// variant installs on its own Node at construction time. The kernel
// operations here only ever call through those two closures.
package graph

import "weak"

// Node is the common record every producer and consumer embeds.
type Node struct {
	id uint64

	// valueVersion is bumped every time this node's output value may have
	// changed (producer-side epoch).
	valueVersion uint64

	// trackingVersion is bumped every time this node begins a new tracking
	// pass as a consumer (consumer-side epoch).
	trackingVersion uint64

	// producers maps producer id -> the edge this node (as consumer) holds
	// on that producer.
	producers map[uint64]*Edge

	// consumers maps consumer id -> the edge that consumer holds on this
	// node (as producer).
	consumers map[uint64]*Edge

	self weak.Pointer[Node]

	// onDependencyChange is called by NotifyConsumers when one of this
	// node's producers may have changed. Nil for pure producers (writable
	// signals are never consumers).
	onDependencyChange func()

	// valueChangedSince asks this node (as a producer) to validate itself
	// and report whether its valueVersion now differs from seen. For a
	// writable signal this is a plain comparison; for a memo it may
	// trigger a recompute first.
	valueChangedSince func(seen uint64) bool
}

// NewNode allocates a Node with the next id from rt and registers its own
// weak self-pointer, used so edges can resolve back to this exact node
// without holding a strong reference to it.
func (rt *Runtime) NewNode() *Node {
	n := &Node{id: rt.nextID}
	rt.nextID++
	n.self = weak.Make(n)
	return n
}

// ID returns the node's dense, runtime-unique identifier.
func (n *Node) ID() uint64 { return n.id }

// ValueVersion returns the producer-side epoch.
func (n *Node) ValueVersion() uint64 { return n.valueVersion }

// BumpValueVersion increments the producer-side epoch. Called by a variant
// after committing a new output value.
func (n *Node) BumpValueVersion() { n.valueVersion++ }

// TrackingVersion returns the consumer-side epoch.
func (n *Node) TrackingVersion() uint64 { return n.trackingVersion }

// SetOnDependencyChange installs the consumer-side push hook.
func (n *Node) SetOnDependencyChange(fn func()) { n.onDependencyChange = fn }

// SetValueChangedSince installs the producer-side pull hook.
func (n *Node) SetValueChangedSince(fn func(seen uint64) bool) { n.valueChangedSince = fn }

func (n *Node) ensureProducers() map[uint64]*Edge {
	if n.producers == nil {
		n.producers = make(map[uint64]*Edge)
	}
	return n.producers
}

func (n *Node) ensureConsumers() map[uint64]*Edge {
	if n.consumers == nil {
		n.consumers = make(map[uint64]*Edge)
	}
	return n.consumers
}

// RecordAccess is called by a producer's read path, after any internal
// validation, to register a dependency edge on the runtime's current
// active consumer.
func (producer *Node) RecordAccess(rt *Runtime) error {
	if rt.notifying {
		return ErrReadDuringNotify
	}

	consumer := rt.activeConsumer
	if consumer == nil {
		return nil
	}

	edge, ok := consumer.producers[producer.id]
	if !ok {
		edge = &Edge{
			producer: producer.self,
			consumer: consumer.self,
		}
		consumer.ensureProducers()[producer.id] = edge
		producer.ensureConsumers()[consumer.id] = edge
	}

	edge.producerVersionSeen = producer.valueVersion
	edge.consumerVersionSeen = consumer.trackingVersion

	return nil
}

// NotifyConsumers is called by a producer after its valueVersion bumps. It
// walks a snapshot of the producer's consumers, pruning stale or dead
// edges, and invokes each live consumer's onDependencyChange hook.
func (producer *Node) NotifyConsumers(rt *Runtime) {
	prev := rt.notifying
	rt.notifying = true
	defer func() { rt.notifying = prev }()

	if len(producer.consumers) == 0 {
		return
	}

	type liveEdge struct {
		id   uint64
		edge *Edge
	}
	snapshot := make([]liveEdge, 0, len(producer.consumers))
	for id, e := range producer.consumers {
		snapshot = append(snapshot, liveEdge{id, e})
	}

	for _, le := range snapshot {
		consumer := le.edge.resolveConsumer()
		if consumer == nil || le.edge.consumerVersionSeen != consumer.trackingVersion {
			producer.pruneConsumerEdge(le.id, consumer)
			continue
		}

		if consumer.onDependencyChange != nil {
			consumer.onDependencyChange()
		}
	}
}

// DependenciesChanged asks, for each of this consumer's current producers,
// whether that producer's value has changed since last observed. It
// returns true at the first change found, pruning dead or stale edges
// along the way.
func (consumer *Node) DependenciesChanged() bool {
	if len(consumer.producers) == 0 {
		return false
	}

	type liveEdge struct {
		id   uint64
		edge *Edge
	}
	snapshot := make([]liveEdge, 0, len(consumer.producers))
	for id, e := range consumer.producers {
		snapshot = append(snapshot, liveEdge{id, e})
	}

	for _, le := range snapshot {
		producer := le.edge.resolveProducer()
		if producer == nil || le.edge.consumerVersionSeen != consumer.trackingVersion {
			consumer.pruneProducerEdge(le.id, producer)
			continue
		}

		if producer.valueChangedSince != nil && producer.valueChangedSince(le.edge.producerVersionSeen) {
			return true
		}
	}

	return false
}

func (producer *Node) pruneConsumerEdge(consumerID uint64, consumer *Node) {
	delete(producer.consumers, consumerID)
	if consumer != nil {
		delete(consumer.producers, producer.id)
	}
}

func (consumer *Node) pruneProducerEdge(producerID uint64, producer *Node) {
	delete(consumer.producers, producerID)
	if producer != nil {
		delete(producer.consumers, consumer.id)
	}
}

// ClearProducers eagerly severs every producer edge this consumer holds,
// removing the mirrored entry from each producer's consumers map too.
// Weak references already mean a dropped consumer's edges are pruned
// lazily on the producer's next traversal (I4); this is the eager
// counterpart used when a consumer is explicitly destroyed (e.g. a
// watch's Destroy), so the producer's consumer map shrinks immediately
// instead of waiting for its next notify.
func (consumer *Node) ClearProducers() {
	for id, edge := range consumer.producers {
		if producer := edge.resolveProducer(); producer != nil {
			delete(producer.consumers, consumer.id)
		}
		delete(consumer.producers, id)
	}
}

// RunTracked begins a new tracking pass for this consumer: bumps
// trackingVersion, swaps the runtime's active consumer to this node for
// the duration of fn, and restores it on every exit path (including
// panic). Producers touched during fn refresh their edges via
// RecordAccess; producers depended on last pass but not touched this pass
// keep a stale consumerVersionSeen and are pruned lazily on next traversal.
func (consumer *Node) RunTracked(rt *Runtime, fn func()) {
	consumer.trackingVersion++

	prev := rt.activeConsumer
	rt.activeConsumer = consumer
	defer func() { rt.activeConsumer = prev }()

	fn()
}
