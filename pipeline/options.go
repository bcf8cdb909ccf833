package pipeline

import (
	"fmt"

	"github.com/vbuslog/blf/frame"
	"github.com/vbuslog/blf/internal/options"
	"github.com/vbuslog/blf/internal/pool"
)

// config holds a Pipeline's tunables, configured via functional options
// the same way mebo's encoders are (internal/options.Option[T]).
type config struct {
	producers    int
	ringCapacity int
	ethernetOpts []frame.Option
}

func newConfig() *config {
	return &config{
		producers:    1,
		ringCapacity: pool.RingBufferDefaultSize,
	}
}

// Option represents a functional option for configuring a Pipeline.
type Option = options.Option[*config]

// WithProducerCount sets how many goroutines concurrently read and
// decompress containers (spec.md §4.6, §5). The default is 1.
func WithProducerCount(n int) Option {
	return options.New(func(c *config) error {
		if n < 1 {
			return fmt.Errorf("pipeline: producer count must be >= 1, got %d", n)
		}
		c.producers = n

		return nil
	})
}

// WithRingBufferCapacity overrides the ring buffer's fixed capacity, in
// bytes. The default is pool.RingBufferDefaultSize (~8MiB), close to
// spec.md §5's ~10MiB example.
func WithRingBufferCapacity(capacity int) Option {
	return options.New(func(c *config) error {
		if capacity < 1 {
			return fmt.Errorf("pipeline: ring buffer capacity must be >= 1, got %d", capacity)
		}
		c.ringCapacity = capacity

		return nil
	})
}

// WithEthernetOptions forwards decode options (e.g. frame.WithLegacyVlanMask)
// to every Ethernet/Ethernet-Ex frame the pipeline decodes.
func WithEthernetOptions(opts ...frame.Option) Option {
	return options.NoError(func(c *config) {
		c.ethernetOpts = opts
	})
}
