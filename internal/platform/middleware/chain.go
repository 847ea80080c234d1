// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
)

// # Stage Contract

// Request is the view of an inbound request that stages operate on.
type Request struct {
	Method string
	Path   string
	Header http.Header
}

// Next invokes the remainder of the chain with ctx and returns its result.
type Next[R any] func(ctx context.Context) (R, error)

// Endpoint is the innermost call of a chain, normally the route handler.
type Endpoint[R any] func(ctx context.Context, request Request) (R, error)

// Stage intercepts a request around the rest of the chain.
//
// A stage may call next unchanged, call next with a derived context, post-process
// the result of next, or return without calling next at all (short-circuit).
type Stage[R any] interface {
	Handle(ctx context.Context, request Request, next Next[R]) (R, error)
}

// StageFunc adapts a plain function to [Stage].
type StageFunc[R any] func(ctx context.Context, request Request, next Next[R]) (R, error)

// Handle implements [Stage].
func (f StageFunc[R]) Handle(ctx context.Context, request Request, next Next[R]) (R, error) {
	return f(ctx, request, next)
}

// # Chain Builder

// Chain is an ordered, immutable list of stages.
//
// Stages run in declaration order on the way in and unwind in reverse order
// on the way out: the first stage wraps every other one.
type Chain[R any] struct {
	stages []Stage[R]
}

// NewChain builds a chain from stages, outermost first.
func NewChain[R any](stages ...Stage[R]) *Chain[R] {
	copied := make([]Stage[R], len(stages))
	copy(copied, stages)
	return &Chain[R]{stages: copied}
}

// Then wires the chain in front of endpoint.
func (chain *Chain[R]) Then(endpoint Endpoint[R]) Endpoint[R] {
	return func(ctx context.Context, request Request) (R, error) {
		return chain.invoke(0, ctx, request, endpoint)
	}
}

// Len returns the number of stages.
func (chain *Chain[R]) Len() int {
	return len(chain.stages)
}

func (chain *Chain[R]) invoke(index int, ctx context.Context, request Request, endpoint Endpoint[R]) (R, error) {
	if index == len(chain.stages) {
		return endpoint(ctx, request)
	}

	return chain.stages[index].Handle(ctx, request, func(nextCtx context.Context) (R, error) {
		return chain.invoke(index+1, nextCtx, request, endpoint)
	})
}
