package location

import "context"

type providerKey struct{}

// NewContext attaches a provider for a single request. It takes precedence
// over the Acquirer's own provider.
func NewContext(ctx context.Context, p Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

func FromContext(ctx context.Context) (Provider, bool) {
	p, ok := ctx.Value(providerKey{}).(Provider)
	return p, ok && p != nil
}
