package usecase

import (
	"context"
	"fmt"
	"log"
)

// Transaction runs an ordered list of store writes as one unit. When a write
// fails, the compensations registered for the writes that already committed
// run in reverse order. Used by convert and merge, where two store writes
// must land together.
type Transaction struct {
	operations []operation
}

type operation struct {
	name       string
	fn         func(context.Context) error
	compensate func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

// AddOperation registers a write with no compensation.
func (t *Transaction) AddOperation(name string, fn func(context.Context) error) {
	t.operations = append(t.operations, operation{name: name, fn: fn})
}

// AddCompensatedOperation registers a write together with the action that
// undoes it during rollback.
func (t *Transaction) AddCompensatedOperation(name string, fn, compensate func(context.Context) error) {
	t.operations = append(t.operations, operation{name: name, fn: fn, compensate: compensate})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		if err := op.fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", op.name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAt int) {
	for i := failedAt - 1; i >= 0; i-- {
		op := t.operations[i]
		if op.compensate == nil {
			continue
		}
		if err := op.compensate(ctx); err != nil {
			log.Printf("WARNING: compensation for '%s' failed: %v (inconsistency risk)", op.name, err)
		}
	}
}
