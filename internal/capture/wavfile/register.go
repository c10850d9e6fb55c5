package wavfile

import (
	"github.com/vovakirdan/hakusyu/internal/capture"
	"github.com/vovakirdan/hakusyu/internal/registry"
)

func init() {
	registry.Register(BackendName, "WAV file replay", func(opts registry.Options) capture.Backend {
		return New(opts.Chunk, opts.Files...)
	})
}
