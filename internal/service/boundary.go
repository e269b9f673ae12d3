package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/csfplan/internal/contract"
)

// runUseCase executes fn and converts every failure into a *contract.PlanError
// paired with the empty-valued response built by failed. Panics and errors
// that are not already PlanErrors become INTERNAL_ERROR; their cause is
// reported to the observer only.
func runUseCase[R any](
	ctx context.Context,
	obs UseCaseObserver,
	name string,
	fields map[string]any,
	failed func(*contract.PlanError) R,
	fn func(ctx context.Context) (*R, error),
) (resp *R, err error) {
	start := time.Now()
	var cause error

	defer func() {
		if r := recover(); r != nil {
			cause = fmt.Errorf("panic: %v", r)
			pe := contract.Internal(name)
			out := failed(pe)
			resp, err = &out, pe
		}
		event := UseCaseEvent{
			Name:      name,
			StartedAt: start,
			Duration:  time.Since(start),
			Success:   err == nil,
			Err:       cause,
			Fields:    fields,
		}
		var pe *contract.PlanError
		if errors.As(err, &pe) {
			event.Code = pe.Code
		}
		obs.ObserveUseCase(ctx, event)
	}()

	resp, cause = fn(ctx)
	if cause == nil {
		return resp, nil
	}
	pe := toPlanError(name, cause)
	out := failed(pe)
	return &out, pe
}

func toPlanError(name string, err error) *contract.PlanError {
	var pe *contract.PlanError
	if errors.As(err, &pe) {
		return pe
	}
	return contract.Internal(name)
}
