package services

import "context"

// Service is a single use case. Decorators such as authentication and rate
// limiting wrap a Service and are Services themselves.
type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}
