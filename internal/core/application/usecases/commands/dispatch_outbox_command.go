package commands

import (
	"errors"

	"pressing/internal/pkg/guard"
)

var (
	ErrDispatchOutboxCommandIsNotConstructed = errors.New(
		"DispatchOutboxCommand must be created via NewDispatchOutboxCommand constructor",
	)
	ErrBatchSizeIsInvalid = errors.New("batch size must be greater than 0")
)

// DispatchOutboxCommand represents one dispatch run over pending outbox
// messages. Issued by the outbox dispatcher job.
type DispatchOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewDispatchOutboxCommand creates a command to publish up to batchSize
// pending messages.
func NewDispatchOutboxCommand(batchSize int) (DispatchOutboxCommand, error) {
	dispatchCommand := DispatchOutboxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if batchSize <= 0 {
		return DispatchOutboxCommand{}, ErrBatchSizeIsInvalid
	}
	dispatchCommand.batchSize = batchSize

	return dispatchCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOutboxCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOutboxCommandIsNotConstructed)
}

// BatchSize returns the maximum number of messages to publish in this run.
func (c DispatchOutboxCommand) BatchSize() int {
	return c.batchSize
}
