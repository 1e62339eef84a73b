package policy

import (
	"fmt"
	"reflect"
	"slices"
)

type Operator func(ctx RequestContext, args []any) (EvalResult, error)

var operators = map[string]Operator{
	"And":      opAnd,
	"Or":       opOr,
	"Not":      opNot,
	"Eq":       opEq,
	"Contains": opContains,
	"Load":     opLoad,
}

func fail(op string, format string, args ...any) (EvalResult, error) {
	err := fmt.Errorf(format, args...)
	return EvalResult{
		Operator: op,
		Error:    err.Error(),
	}, err
}

func opAnd(ctx RequestContext, args []any) (EvalResult, error) {
	for i, arg := range args {
		evaluated, ok := arg.(bool)
		if !ok {
			return fail("And", "bad argument type for And at index %d: expected bool, got %s", i, reflect.TypeOf(arg))
		}
		if !evaluated {
			return EvalResult{Operator: "And", Result: false}, nil
		}
	}
	return EvalResult{Operator: "And", Result: true}, nil
}

func opOr(ctx RequestContext, args []any) (EvalResult, error) {
	for i, arg := range args {
		evaluated, ok := arg.(bool)
		if !ok {
			return fail("Or", "bad argument type for Or at index %d: expected bool, got %s", i, reflect.TypeOf(arg))
		}
		if evaluated {
			return EvalResult{Operator: "Or", Result: true}, nil
		}
	}
	return EvalResult{Operator: "Or", Result: false}, nil
}

func opNot(ctx RequestContext, args []any) (EvalResult, error) {
	if len(args) != 1 {
		return fail("Not", "bad argument length for Not: expected 1, got %d", len(args))
	}
	evaluated, ok := args[0].(bool)
	if !ok {
		return fail("Not", "bad argument type for Not: expected bool, got %s", reflect.TypeOf(args[0]))
	}
	return EvalResult{Operator: "Not", Result: !evaluated}, nil
}

func opEq(ctx RequestContext, args []any) (EvalResult, error) {
	if len(args) != 2 {
		return fail("Eq", "bad argument length for Eq: expected 2, got %d", len(args))
	}
	if args[0] == nil || args[1] == nil {
		// an unset field never equals anything
		return EvalResult{Operator: "Eq", Result: false}, nil
	}
	return EvalResult{Operator: "Eq", Result: args[0] == args[1]}, nil
}

func opContains(ctx RequestContext, args []any) (EvalResult, error) {
	if len(args) != 2 {
		return fail("Contains", "bad argument length for Contains: expected 2, got %d", len(args))
	}
	list, ok := args[0].([]any)
	if !ok {
		return fail("Contains", "bad argument type for Contains: expected []any, got %s", reflect.TypeOf(args[0]))
	}
	return EvalResult{Operator: "Contains", Result: slices.Contains(list, args[1])}, nil
}

func opLoad(ctx RequestContext, args []any) (EvalResult, error) {
	if len(args) != 1 {
		return fail("Load", "bad argument length for Load: expected 1, got %d", len(args))
	}
	key, ok := args[0].(string)
	if !ok {
		return fail("Load", "bad argument type for Load: expected string, got %s", reflect.TypeOf(args[0]))
	}
	value, ok := resolveDotNotation(contextToMap(ctx), key)
	if !ok {
		return fail("Load", "key not found: %s", key)
	}
	return EvalResult{Operator: "Load", Result: value}, nil
}
