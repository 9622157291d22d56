package scan

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/mostlygeek/arp"
	log "github.com/sirupsen/logrus"
)

// Scanner dispatches one probe per address under a fixed concurrency
// ceiling and aggregates the results. The ceiling is a hard limit: each
// connect attempt to a LAN address costs an ARP cache slot on the scanning
// host, so the worker count should stay below the local ARP cache capacity.
type Scanner struct {
	prober  Prober
	workers int
	out     io.Writer

	mu    sync.Mutex
	found int
}

// New returns a Scanner that runs at most workers probes in flight and
// writes one line per responding host to out.
func New(prober Prober, workers int, out io.Writer) *Scanner {
	return &Scanner{
		prober:  prober,
		workers: workers,
		out:     out,
	}
}

// Run probes every address on the given port. Addresses are dispatched in
// ascending order but complete in whatever order the network answers, so
// output order is not deterministic. Run returns once every dispatched
// probe has finished; cancelling ctx stops dispatching new probes and
// returns after the in-flight ones drain.
func (s *Scanner) Run(ctx context.Context, addrs []Address, port int) Summary {
	s.found = 0

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.workers)

dispatch:
	for _, addr := range addrs {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(addr Address) {
			defer wg.Done()
			defer func() { <-sem }()

			result := s.prober.Probe(ctx, addr, port)
			if result.Open {
				s.record(result)
			}
		}(addr)
	}

	wg.Wait()

	return Summary{
		Found:  s.found,
		Hosts:  len(addrs),
		Blocks: Compress(addrs),
	}
}

// record counts a responding host and emits its output line. The count and
// the write happen under one lock so concurrent probes never interleave
// partial lines or lose increments.
func (s *Scanner) record(result Result) {
	if mac := arp.Search(result.Addr.String()); mac != "" && mac != "00:00:00:00:00:00" {
		log.Debugf("%s is at %s", result.Addr, mac)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.found++
	if result.Banner != "" {
		fmt.Fprintf(s.out, "  %15s : %s\n", result.Addr, result.Banner)
	} else {
		fmt.Fprintf(s.out, "  %15s\n", result.Addr)
	}
}
