package audit_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/xraph/autoload"
	"github.com/xraph/autoload/audit"
	"github.com/xraph/autoload/ext"
	"github.com/xraph/autoload/store"
	"github.com/xraph/autoload/store/memory"
)

func setupDomain(t *testing.T, r autoload.Resolver) (*autoload.Domain, *memory.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s := memory.New()
	reg := ext.NewRegistry(logger)
	reg.Register(audit.New(s, audit.WithDomainLabel("test-domain")))

	d, err := autoload.New(
		autoload.WithLogger(logger),
		autoload.WithResolver(r),
		autoload.WithHooks(reg),
		autoload.WithReservedNames("destroy"),
	)
	if err != nil {
		t.Fatalf("new domain: %v", err)
	}
	return d, s
}

func TestExtension_RecordsGeneration(t *testing.T) {
	d, s := setupDomain(t, autoload.ResolverFunc(func(_ context.Context, _ *autoload.Call) (autoload.Resolution, error) {
		return autoload.Generate(func(_ context.Context, _ []any, _ autoload.Arity) (any, error) {
			return "ok", nil
		}), nil
	}))

	_, err := d.Dispatch(context.Background(), autoload.NewCall("area", nil, autoload.AritySingle))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	recs, err := s.List(context.Background(), "area", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Event != store.EventGenerated {
		t.Errorf("event = %q, want %q", recs[0].Event, store.EventGenerated)
	}
	if recs[0].Domain != "test-domain" {
		t.Errorf("domain = %q, want %q", recs[0].Domain, "test-domain")
	}

	// A second call hits the table; no new record.
	if _, err := d.Dispatch(context.Background(), autoload.NewCall("area", nil, autoload.AritySingle)); err != nil {
		t.Fatalf("second dispatch: %v", err)
	}
	recs, _ = s.List(context.Background(), "area", 0)
	if len(recs) != 1 {
		t.Errorf("expected still 1 record after cached call, got %d", len(recs))
	}
}

func TestExtension_RecordsDecline(t *testing.T) {
	d, s := setupDomain(t, autoload.ResolverFunc(func(_ context.Context, _ *autoload.Call) (autoload.Resolution, error) {
		return autoload.Decline(), nil
	}))

	_, err := d.Dispatch(context.Background(), autoload.NewCall("missing", nil, autoload.AritySingle))
	if err == nil {
		t.Fatal("expected dispatch error")
	}

	recs, _ := s.List(context.Background(), "missing", 0)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Event != store.EventDeclined {
		t.Errorf("event = %q, want %q", recs[0].Event, store.EventDeclined)
	}
}

func TestExtension_RecordsReservedNoop(t *testing.T) {
	d, s := setupDomain(t, autoload.ResolverFunc(func(_ context.Context, _ *autoload.Call) (autoload.Resolution, error) {
		t.Fatal("resolver must not run for reserved names")
		return autoload.Decline(), nil
	}))

	res, err := d.Dispatch(context.Background(), autoload.NewCall("destroy", nil, autoload.ArityNone))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if res.Outcome != autoload.OutcomeNoop {
		t.Fatalf("outcome = %v, want OutcomeNoop", res.Outcome)
	}

	recs, _ := s.List(context.Background(), "destroy", 0)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Event != store.EventReserved {
		t.Errorf("event = %q, want %q", recs[0].Event, store.EventReserved)
	}
}
