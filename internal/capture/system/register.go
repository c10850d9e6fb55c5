package system

import (
	"github.com/vovakirdan/hakusyu/internal/capture"
	"github.com/vovakirdan/hakusyu/internal/registry"
)

func init() {
	registry.Register(BackendName, "Host recorder tools (parec, pw-record, arecord, rec)", func(opts registry.Options) capture.Backend {
		return New(opts.Logger)
	})
}
