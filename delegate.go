package autoload

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
)

// Target is an object a Delegate forwards calls to.
type Target interface {
	// Invoke calls the member name with the given arguments and returns
	// its result shaped for the expected arity.
	Invoke(ctx context.Context, name string, args []any, arity Arity) (any, error)

	// Has reports whether the target currently exposes member name.
	// It must be side-effect free.
	Has(name string) bool
}

// Delegate is a fallback resolver that forwards misses to a same-named
// member on a wrapped target, resolving with a generated forwarding
// handler so the resolution cost is paid once per name.
//
// The delegation is logged exactly once per name, at generation time;
// repeated calls through the cached forwarding handler are not logged.
type Delegate struct {
	target Target
	logger *slog.Logger
}

// Compile-time interface checks.
var (
	_ Resolver         = (*Delegate)(nil)
	_ CapabilityProber = (*Delegate)(nil)
)

// DelegateOption configures a Delegate.
type DelegateOption func(*Delegate)

// WithDelegateLogger sets the logger used to instrument delegated calls.
func WithDelegateLogger(l *slog.Logger) DelegateOption {
	return func(dg *Delegate) { dg.logger = l }
}

// NewDelegate creates a resolver that forwards unresolved calls to the
// given target.
func NewDelegate(target Target, opts ...DelegateOption) *Delegate {
	dg := &Delegate{
		target: target,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(dg)
	}
	return dg
}

// Resolve implements Resolver. A member present on the target resolves
// with Generate of a thin forwarding handler; a missing member fails with
// ErrDelegationTargetMissing, propagated as-is rather than masked as a
// plain not-found.
func (dg *Delegate) Resolve(_ context.Context, c *Call) (Resolution, error) {
	if !dg.target.Has(c.Name) {
		return Resolution{}, fmt.Errorf("%w: %q", ErrDelegationTargetMissing, c.Name)
	}

	dg.logger.Info("delegating member",
		slog.String("name", c.Name),
		slog.Int("args", len(c.Args)),
		slog.String("arity", c.Arity.String()),
	)

	target, name := dg.target, c.Name
	return Generate(func(ctx context.Context, args []any, arity Arity) (any, error) {
		return target.Invoke(ctx, name, args, arity)
	}), nil
}

// CanResolve implements CapabilityProber by probing the target without
// side effects.
func (dg *Delegate) CanResolve(_ context.Context, name string) bool {
	return dg.target.Has(name)
}

// ──────────────────────────────────────────────────
// Reflective target
// ──────────────────────────────────────────────────

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// reflectTarget adapts an arbitrary Go value into a Target using method
// reflection.
type reflectTarget struct {
	v reflect.Value
}

// ReflectTarget wraps v so its exported methods become delegable members.
// Methods may optionally take a leading context.Context and may return a
// trailing error; remaining results are shaped for the call's arity
// (ArityMulti yields a []any of all values, otherwise the first value).
func ReflectTarget(v any) Target {
	return &reflectTarget{v: reflect.ValueOf(v)}
}

func (t *reflectTarget) Has(name string) bool {
	return t.v.MethodByName(name).IsValid()
}

func (t *reflectTarget) Invoke(ctx context.Context, name string, args []any, arity Arity) (any, error) {
	m := t.v.MethodByName(name)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrDelegationTargetMissing, name)
	}

	in, err := t.buildArgs(ctx, name, m.Type(), args)
	if err != nil {
		return nil, err
	}

	out := m.Call(in)

	// A trailing error result is split off and returned as the call's
	// error rather than folded into the value.
	if n := len(out); n > 0 && m.Type().Out(n-1) == errType {
		if e := out[n-1]; !e.IsNil() {
			return nil, e.Interface().(error)
		}
		out = out[:n-1]
	}

	values := make([]any, len(out))
	for i, v := range out {
		values[i] = v.Interface()
	}

	if arity == ArityMulti {
		return values, nil
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values[0], nil
}

// buildArgs converts the dynamic argument sequence into reflect call
// values, injecting ctx when the method's first parameter is a
// context.Context.
func (t *reflectTarget) buildArgs(ctx context.Context, name string, mt reflect.Type, args []any) ([]reflect.Value, error) {
	in := make([]reflect.Value, 0, mt.NumIn())
	if mt.NumIn() > 0 && mt.In(0) == ctxType {
		in = append(in, reflect.ValueOf(ctx))
	}

	fixed := mt.NumIn() - len(in)
	if mt.IsVariadic() {
		if len(args) < fixed-1 {
			return nil, fmt.Errorf("autoload: delegate %q: expected at least %d args, got %d", name, fixed-1, len(args))
		}
	} else if len(args) != fixed {
		return nil, fmt.Errorf("autoload: delegate %q: expected %d args, got %d", name, fixed, len(args))
	}

	for i, a := range args {
		pos := len(in)
		var pt reflect.Type
		if mt.IsVariadic() && pos >= mt.NumIn()-1 {
			pt = mt.In(mt.NumIn() - 1).Elem()
		} else {
			pt = mt.In(pos)
		}

		if a == nil {
			in = append(in, reflect.Zero(pt))
			continue
		}

		av := reflect.ValueOf(a)
		switch {
		case av.Type().AssignableTo(pt):
			in = append(in, av)
		case av.Type().ConvertibleTo(pt):
			in = append(in, av.Convert(pt))
		default:
			return nil, fmt.Errorf("autoload: delegate %q: arg %d: cannot use %T as %s", name, i, a, pt)
		}
	}

	return in, nil
}
