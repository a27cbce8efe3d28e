package autoload_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/xraph/autoload"
)

// countingHandler is a slog.Handler that counts records by message.
type countingHandler struct {
	mu     sync.Mutex
	counts map[string]int
}

func newCountingHandler() *countingHandler {
	return &countingHandler{counts: make(map[string]int)}
}

func (h *countingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *countingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[r.Message]++
	return nil
}

func (h *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *countingHandler) WithGroup(string) slog.Handler      { return h }

func (h *countingHandler) count(msg string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[msg]
}

// greeter is a plain struct whose methods become delegable members.
type greeter struct {
	greeting string
}

func (g *greeter) Greet(name string) string {
	return g.greeting + ", " + name
}

func (g *greeter) Lookup(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if key == "" {
		return "", errors.New("empty key")
	}
	return strings.ToUpper(key), nil
}

func (g *greeter) Pair() (string, int) { return "x", 2 }

func (g *greeter) Join(sep string, parts ...string) string {
	return strings.Join(parts, sep)
}

func TestDelegate_ForwardsToTarget(t *testing.T) {
	target := autoload.ReflectTarget(&greeter{greeting: "hello"})
	d := newDomain(t, autoload.WithResolver(autoload.NewDelegate(target, autoload.WithDelegateLogger(testLogger()))))

	res, err := d.Dispatch(context.Background(), autoload.NewCall("Greet", []any{"ada"}, autoload.AritySingle))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if res.Value != "hello, ada" {
		t.Errorf("value = %v, want %q", res.Value, "hello, ada")
	}

	// The forwarding handler is installed; later calls skip resolution.
	if _, ok := d.Table().Lookup("Greet"); !ok {
		t.Error("forwarding handler not installed")
	}
}

func TestDelegate_MissingMember(t *testing.T) {
	target := autoload.ReflectTarget(&greeter{})
	d := newDomain(t, autoload.WithResolver(autoload.NewDelegate(target, autoload.WithDelegateLogger(testLogger()))))

	_, err := d.Dispatch(context.Background(), autoload.NewCall("Vanish", nil, autoload.AritySingle))
	if !errors.Is(err, autoload.ErrDelegationTargetMissing) {
		t.Fatalf("error = %v, want ErrDelegationTargetMissing", err)
	}
	if errors.Is(err, autoload.ErrNameNotFound) {
		t.Error("delegation failure must not be masked as ErrNameNotFound")
	}
}

func TestDelegate_LogsOncePerName(t *testing.T) {
	counter := newCountingHandler()
	target := autoload.ReflectTarget(&greeter{greeting: "hi"})
	dg := autoload.NewDelegate(target, autoload.WithDelegateLogger(slog.New(counter)))
	d := newDomain(t, autoload.WithResolver(dg))

	for range 3 {
		if _, err := d.Dispatch(context.Background(), autoload.NewCall("Greet", []any{"bob"}, autoload.AritySingle)); err != nil {
			t.Fatalf("dispatch: %v", err)
		}
	}

	// Resolution is logged at generation time only; the two calls that
	// went through the cached forwarding handler add nothing.
	if got := counter.count("delegating member"); got != 1 {
		t.Errorf("logged %d times, want exactly 1", got)
	}
}

func TestDelegate_CanResolve(t *testing.T) {
	target := autoload.ReflectTarget(&greeter{})
	d := newDomain(t, autoload.WithResolver(autoload.NewDelegate(target, autoload.WithDelegateLogger(testLogger()))))
	ctx := context.Background()

	if !d.Can(ctx, "Greet") {
		t.Error("Can = false for an existing member")
	}
	if d.Can(ctx, "Vanish") {
		t.Error("Can = true for a missing member")
	}
}

func TestReflectTarget_ContextInjection(t *testing.T) {
	target := autoload.ReflectTarget(&greeter{})

	v, err := target.Invoke(context.Background(), "Lookup", []any{"key"}, autoload.AritySingle)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if v != "KEY" {
		t.Errorf("value = %v, want %q", v, "KEY")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := target.Invoke(ctx, "Lookup", []any{"key"}, autoload.AritySingle); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestReflectTarget_TrailingError(t *testing.T) {
	target := autoload.ReflectTarget(&greeter{})

	_, err := target.Invoke(context.Background(), "Lookup", []any{""}, autoload.AritySingle)
	if err == nil || err.Error() != "empty key" {
		t.Fatalf("error = %v, want %q", err, "empty key")
	}
}

func TestReflectTarget_ArityShaping(t *testing.T) {
	target := autoload.ReflectTarget(&greeter{})

	v, err := target.Invoke(context.Background(), "Pair", nil, autoload.ArityMulti)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	vs, ok := v.([]any)
	if !ok || len(vs) != 2 || vs[0] != "x" || vs[1] != 2 {
		t.Errorf("multi value = %v, want [x 2]", v)
	}

	v, err = target.Invoke(context.Background(), "Pair", nil, autoload.AritySingle)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if v != "x" {
		t.Errorf("single value = %v, want %q", v, "x")
	}
}

func TestReflectTarget_Variadic(t *testing.T) {
	target := autoload.ReflectTarget(&greeter{})

	v, err := target.Invoke(context.Background(), "Join", []any{"-", "a", "b", "c"}, autoload.AritySingle)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if v != "a-b-c" {
		t.Errorf("value = %v, want %q", v, "a-b-c")
	}
}

func TestReflectTarget_ArgMismatch(t *testing.T) {
	target := autoload.ReflectTarget(&greeter{})

	if _, err := target.Invoke(context.Background(), "Greet", nil, autoload.AritySingle); err == nil {
		t.Error("expected error for missing args")
	}
	if _, err := target.Invoke(context.Background(), "Greet", []any{42}, autoload.AritySingle); err == nil {
		t.Error("expected error for unconvertible arg type")
	}
}
