package autoload

import "context"

// chainKey carries the resolution chain on the context passed to
// resolvers, so re-entrant dispatches through the same Domain (or a call
// chain of Domains) can be detected.
type chainKey struct{}

// resolutionChain is the ordered list of names whose fallback resolution
// is in progress on the current call path. Its length is the unresolved
// chain depth.
type resolutionChain []string

func chainFrom(ctx context.Context) resolutionChain {
	ch, _ := ctx.Value(chainKey{}).(resolutionChain)
	return ch
}

func (ch resolutionChain) contains(name string) bool {
	for _, n := range ch {
		if n == name {
			return true
		}
	}
	return false
}

// push returns a context whose chain has name appended. The receiver is
// copied so sibling resolutions never observe each other's entries.
func (ch resolutionChain) push(ctx context.Context, name string) context.Context {
	next := make(resolutionChain, len(ch), len(ch)+1)
	copy(next, ch)
	next = append(next, name)
	return context.WithValue(ctx, chainKey{}, next)
}
