// Package pipeline implements the concurrent, ring-buffer-backed decode
// path: one or more producer goroutines read and decompress log
// containers while a single consumer goroutine reframes and decodes the
// resulting byte stream (spec.md §4.6, §5).
package pipeline

import (
	"context"
	"errors"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vbuslog/blf/container"
	"github.com/vbuslog/blf/errs"
	"github.com/vbuslog/blf/frame"
	"github.com/vbuslog/blf/reframe"
	"github.com/vbuslog/blf/ringbuf"
	"github.com/vbuslog/blf/source"
)

// Pipeline drives the concurrent decode of a single BLF byte stream.
type Pipeline struct {
	src  source.SequentialSource
	sink func(frame.Envelope) error
	cfg  *config

	claimMu sync.Mutex
	it      *container.Iterator
	nextSeq uint64

	abortOnce sync.Once
	cancel    context.CancelFunc
}

// New creates a Pipeline reading containers from src and calling sink
// with every decoded inner object, in file order. sink must be safe to
// treat as called from a single goroutine (the consumer); it is never
// called concurrently.
func New(src source.SequentialSource, sink func(frame.Envelope) error, opts ...Option) (*Pipeline, error) {
	cfg := newConfig()
	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return &Pipeline{
		src:  src,
		sink: sink,
		cfg:  cfg,
		it:   container.New(src).WithRingCapacity(cfg.ringCapacity),
	}, nil
}

// Run reads, decompresses, reframes, and decodes the whole stream,
// calling sink for every inner object in file order, and returns once the
// stream is exhausted, ctx is canceled, or Abort is called. A canceled
// run returns errs.ErrAborted itself; ctx.Err() is not wrapped into it.
func (p *Pipeline) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	defer cancel()

	ring := ringbuf.New(p.cfg.ringCapacity)
	group, gctx := errgroup.WithContext(ctx)

	// ring.Close() unblocks whichever side of the ring is waiting: the
	// consumer, once every producer has committed its last container, or
	// either side immediately, once the run is aborted or any producer or
	// the consumer fails (both cancel gctx). Both closers run
	// outside the errgroup since their only job is this side effect, not
	// a result Run should wait on or fail from.
	var producersDone sync.WaitGroup
	producersDone.Add(p.cfg.producers)
	allProduced := make(chan struct{})
	go func() {
		producersDone.Wait()
		ring.Close()
		close(allProduced)
	}()
	go func() {
		select {
		case <-gctx.Done():
			ring.Close()
		case <-allProduced:
		}
	}()

	for i := 0; i < p.cfg.producers; i++ {
		group.Go(func() error {
			defer producersDone.Done()
			return p.produce(gctx, ring)
		})
	}
	group.Go(func() error { return p.consume(gctx, ring) })

	if err := group.Wait(); err != nil {
		if ctx.Err() != nil {
			return errs.ErrAborted
		}

		return err
	}

	return nil
}

// Abort cancels a running Pipeline's context; Run then returns
// errs.ErrAborted once its goroutines observe the cancellation.
func (p *Pipeline) Abort() {
	p.abortOnce.Do(func() {
		if p.cancel != nil {
			p.cancel()
		}
	})
}

// produce claims containers in source order, decompresses them (the only
// step that may run concurrently across producers), and commits each
// decompressed payload into ring under its claimed sequence number.
func (p *Pipeline) produce(ctx context.Context, ring *ringbuf.Buffer) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		raw, seq, err := p.claimNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}

		decoded, release, err := container.Decompress(raw, p.cfg.ringCapacity)
		if err != nil {
			return err
		}

		// ring.Write copies decoded into the ring buffer before returning,
		// so the pooled buffer backing it can be recycled immediately
		// afterward regardless of whether the write itself succeeded.
		werr := ring.Write(seq, decoded)
		release()
		if werr != nil {
			return werr
		}
	}
}

// claimNext serializes access to the shared, sequential byte source: read
// one container's raw bytes and assign it the next sequence number,
// advancing the source for whichever producer claims next.
func (p *Pipeline) claimNext() (container.RawContainer, uint64, error) {
	p.claimMu.Lock()
	defer p.claimMu.Unlock()

	raw, err := p.it.NextRaw()
	if err != nil {
		return container.RawContainer{}, 0, err
	}

	seq := p.nextSeq
	p.nextSeq++

	return raw, seq, nil
}

// consume reframes and decodes the byte stream drained from ring, calling
// sink for every inner object.
func (p *Pipeline) consume(ctx context.Context, ring *ringbuf.Buffer) error {
	rf := reframe.New(reframe.NewRingSource(ring), p.cfg.ethernetOpts...)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		env, err := rf.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}

		if err := p.sink(env); err != nil {
			return err
		}
	}
}
