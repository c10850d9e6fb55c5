package synth

import (
	"github.com/vovakirdan/hakusyu/internal/capture"
	"github.com/vovakirdan/hakusyu/internal/registry"
)

func init() {
	registry.Register(BackendName, "Keyboard clap synthesizer", func(opts registry.Options) capture.Backend {
		o := DefaultOptions()
		if opts.Seed != 0 {
			o.Seed = opts.Seed
		}
		if opts.Chunk > 0 {
			o.Interval = opts.Chunk
		}
		return New(o)
	})
}
