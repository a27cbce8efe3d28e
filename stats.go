package autoload

import "sync/atomic"

// Stats is a point-in-time snapshot of a Domain's dispatch counters.
type Stats struct {
	// Hits counts dispatches satisfied by an installed handler.
	Hits uint64
	// Misses counts lookups that missed, before any resolution.
	Misses uint64
	// Installs counts handlers installed through generation.
	Installs uint64
	// Answers counts one-shot resolver answers.
	Answers uint64
	// Declines counts resolver declines (and misses with no resolver).
	Declines uint64
	// Noops counts reserved-name misses resolved to the no-op outcome.
	Noops uint64
	// RecursionBlocks counts calls stopped by the depth guard.
	RecursionBlocks uint64
	// Timeouts counts waiters that timed out on an in-progress generation.
	Timeouts uint64
}

// counters holds the Domain's live atomic counters.
type counters struct {
	hits            atomic.Uint64
	misses          atomic.Uint64
	installs        atomic.Uint64
	answers         atomic.Uint64
	declines        atomic.Uint64
	noops           atomic.Uint64
	recursionBlocks atomic.Uint64
	timeouts        atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:            c.hits.Load(),
		Misses:          c.misses.Load(),
		Installs:        c.installs.Load(),
		Answers:         c.answers.Load(),
		Declines:        c.declines.Load(),
		Noops:           c.noops.Load(),
		RecursionBlocks: c.recursionBlocks.Load(),
		Timeouts:        c.timeouts.Load(),
	}
}
