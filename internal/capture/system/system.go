// Package system captures from the host microphone by running a command-line
// recorder and decoding raw s16le PCM from its stdout.
package system

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hakusyu/internal/capture"
)

// BackendName is the registry key for this backend.
const BackendName = "system"

// Tool describes one recorder binary and how to make it emit raw PCM.
type Tool struct {
	Name  string
	Label string
	Args  func(f capture.Format) []string
}

// Tools lists supported recorders in probe order.
var Tools = []Tool{
	{
		Name:  "parec",
		Label: "PulseAudio default source",
		Args: func(f capture.Format) []string {
			return []string{
				"--raw",
				"--format=s16le",
				"--rate=" + strconv.Itoa(f.SampleRate),
				"--channels=" + strconv.Itoa(f.Channels),
				"--latency-msec=10",
			}
		},
	},
	{
		Name:  "pw-record",
		Label: "PipeWire default source",
		Args: func(f capture.Format) []string {
			return []string{
				"--format=s16",
				"--rate=" + strconv.Itoa(f.SampleRate),
				"--channels=" + strconv.Itoa(f.Channels),
				"-",
			}
		},
	},
	{
		Name:  "arecord",
		Label: "ALSA default capture",
		Args: func(f capture.Format) []string {
			return []string{
				"-t", "raw",
				"-f", "S16_LE",
				"-r", strconv.Itoa(f.SampleRate),
				"-c", strconv.Itoa(f.Channels),
				"-q",
				"-",
			}
		},
	},
	{
		Name:  "rec",
		Label: "SoX default input",
		Args: func(f capture.Format) []string {
			return []string{
				"-q",
				"-t", "raw",
				"-e", "signed",
				"-b", "16",
				"-c", strconv.Itoa(f.Channels),
				"-r", strconv.Itoa(f.SampleRate),
				"-",
			}
		},
	},
}

// Backend enumerates installed recorder tools.
type Backend struct {
	logger   *log.Logger
	lookPath func(string) (string, error)
	command  func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// New creates a backend that probes $PATH.
func New(logger *log.Logger) *Backend {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Backend{
		logger:   logger,
		lookPath: exec.LookPath,
		command:  exec.CommandContext,
	}
}

// Devices implements capture.Backend. Each installed tool is one device.
func (b *Backend) Devices() ([]capture.Device, error) {
	var devs []capture.Device
	for _, t := range Tools {
		path, err := b.lookPath(t.Name)
		if err != nil {
			continue
		}
		b.logger.Debug("found recorder", "tool", t.Name, "path", path)
		devs = append(devs, capture.Device{
			Backend: BackendName,
			ID:      path,
			Name:    fmt.Sprintf("%s (%s)", t.Label, t.Name),
		})
	}
	return devs, nil
}

// Open implements capture.Backend.
func (b *Backend) Open(dev capture.Device, format capture.Format) (capture.Source, error) {
	for _, t := range Tools {
		path, err := b.lookPath(t.Name)
		if err != nil || path != dev.ID {
			continue
		}
		return &Source{
			name:    dev.Name,
			path:    path,
			args:    t.Args(format),
			command: b.command,
			logger:  b.logger,
		}, nil
	}
	return nil, fmt.Errorf("system: unknown recorder %q", dev.ID)
}

// Source runs one recorder process.
type Source struct {
	name    string
	path    string
	args    []string
	command func(ctx context.Context, name string, args ...string) *exec.Cmd
	logger  *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// Name implements capture.Source.
func (s *Source) Name() string { return s.name }

// Start implements capture.Source.
func (s *Source) Start(sink capture.Sink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return capture.ErrClosed
	}
	if s.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := s.command(ctx, s.path, s.args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("system: cannot attach to %s: %w", s.path, err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("system: cannot start %s: %w", s.path, err)
	}
	s.logger.Info("recorder started", "cmd", s.path, "pid", cmd.Process.Pid)

	s.cancel = cancel
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		if err := capture.ReadS16LE(stdout, sink); err != nil && ctx.Err() == nil {
			s.logger.Error("recorder stream failed", "err", err)
		}
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			s.logger.Warn("recorder exited", "err", err)
		}
	}()
	return nil
}

// Close implements capture.Source. It kills the recorder and waits for it.
func (s *Source) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

// ErrNoRecorder is returned by Detect when no tool is installed.
var ErrNoRecorder = errors.New("system: no recorder tool found in PATH")

// Detect returns the first installed tool, in probe order.
func (b *Backend) Detect() (capture.Device, error) {
	devs, _ := b.Devices()
	if len(devs) == 0 {
		return capture.Device{}, fmt.Errorf("%w: %w", capture.ErrNoBackend, ErrNoRecorder)
	}
	return devs[0], nil
}
