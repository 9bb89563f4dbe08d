package service

import "context"

type operatorKey struct{}

// WithOperator marks ctx as issued by the named operator.
func WithOperator(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operatorKey{}, name)
}

// OperatorFrom returns the operator set by WithOperator.
func OperatorFrom(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(operatorKey{}).(string)
	return name, ok && name != ""
}
