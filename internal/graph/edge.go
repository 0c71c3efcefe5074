package graph

import "weak"

// Edge is a dependency record shared between a producer and a consumer.
// It is stored at both endpoints under the same logical identity (the
// producer's id in the consumer's producers map, and the consumer's id in
// the producer's consumers map) but owns neither endpoint strongly: I4
// requires that holding an edge never keeps a node alive.
type Edge struct {
	producer weak.Pointer[Node]
	consumer weak.Pointer[Node]

	// producerVersionSeen is the producer's valueVersion at last observation.
	producerVersionSeen uint64

	// consumerVersionSeen is the consumer's trackingVersion when this edge
	// was last refreshed. I2: the edge is live iff this equals the
	// consumer's current trackingVersion.
	consumerVersionSeen uint64
}

func (e *Edge) resolveProducer() *Node { return e.producer.Value() }
func (e *Edge) resolveConsumer() *Node { return e.consumer.Value() }
