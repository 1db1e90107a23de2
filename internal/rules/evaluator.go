// Package rules executes authored screening logic as data. Rules are expr
// expressions evaluated against an input document; the language has no
// filesystem, network or ambient-state access, so evaluation is a pure
// function of its input.
package rules

import (
	"context"
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Evaluator runs an authored rule against an input document and returns the
// rule's output map. Any compile or runtime failure is returned as an error,
// never raised as a panic.
type Evaluator interface {
	Evaluate(ctx context.Context, source string, input map[string]interface{}) (map[string]interface{}, error)
}

// ExprEvaluator evaluates rules with a bounded wall-clock budget. Rule logic
// is expected to be deterministic, so a budget overrun is a defect in the
// authored rule, not something to retry.
type ExprEvaluator struct {
	Budget time.Duration
}

func NewExprEvaluator(budget time.Duration) *ExprEvaluator {
	if budget <= 0 {
		budget = 250 * time.Millisecond
	}
	return &ExprEvaluator{Budget: budget}
}

func (e *ExprEvaluator) Evaluate(ctx context.Context, source string, input map[string]interface{}) (out map[string]interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("rule panicked: %v", r)
		}
	}()

	program, err := expr.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("rule does not compile: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.Budget)
	defer cancel()

	type result struct {
		value interface{}
		err   error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("rule panicked: %v", r)}
			}
		}()
		value, runErr := runProgram(program, input)
		done <- result{value: value, err: runErr}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("rule exceeded execution budget of %s", e.Budget)
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		mapped, ok := res.value.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("rule must evaluate to an output map, got %T", res.value)
		}
		return mapped, nil
	}
}

func runProgram(program *vm.Program, input map[string]interface{}) (interface{}, error) {
	value, err := expr.Run(program, input)
	if err != nil {
		return nil, fmt.Errorf("rule runtime failure: %w", err)
	}
	return value, nil
}
