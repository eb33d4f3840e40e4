// Package messaging publishes and consumes record-changed events over a
// pluggable broker.
//
// Business code depends on Messaging only. The driver is picked at start-up by
// NewFromDriver: NATS, NSQ, Kafka, Google Pub/Sub, or an in-process memory
// broker for single-instance deployments and tests.
package messaging
