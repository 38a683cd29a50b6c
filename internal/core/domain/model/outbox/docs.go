// Package outbox holds the transactional outbox message model used to make
// status-change notifications reliable: messages are inserted in the same
// database transaction as the order mutation and drained by a background
// dispatcher, giving at-least-once delivery.
package outbox
