package capture

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBackend is returned when no capture backend could be found.
	ErrNoBackend = errors.New("capture: no capture backend available")

	// ErrClosed is returned when starting a source that was already closed.
	ErrClosed = errors.New("capture: source closed")
)

// Source produces samples into a Sink from its own goroutine until closed.
type Source interface {
	// Name returns a human-readable description.
	Name() string

	// Start launches the producer. It must not block.
	Start(sink Sink) error

	// Close stops the producer and releases the device.
	Close() error
}

// Clapper is implemented by sources that synthesize claps on demand.
type Clapper interface {
	Clap()
}

// Device identifies one selectable capture device.
type Device struct {
	Backend string // Registry name of the backend that owns it
	ID      string // Backend-specific identifier
	Name    string // Display name
}

// Backend enumerates and opens devices of one kind.
type Backend interface {
	Devices() ([]Device, error)
	Open(dev Device, format Format) (Source, error)
}

// Catalog flattens the devices of several backends into one indexed list,
// in the order the backends were given.
type Catalog struct {
	devices []Device
	owners  []Backend
}

// NewCatalog enumerates every backend. Backends that fail to enumerate are
// skipped and their errors returned joined.
func NewCatalog(backends ...Backend) (*Catalog, error) {
	c := &Catalog{}
	var errs []error
	for _, b := range backends {
		devs, err := b.Devices()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, d := range devs {
			c.devices = append(c.devices, d)
			c.owners = append(c.owners, b)
		}
	}
	return c, errors.Join(errs...)
}

// Devices returns the enumerated devices; the slice index is the device index.
func (c *Catalog) Devices() []Device {
	out := make([]Device, len(c.devices))
	copy(out, c.devices)
	return out
}

// Open opens the device at index.
func (c *Catalog) Open(index int, format Format) (Source, error) {
	if index < 0 || index >= len(c.devices) {
		return nil, fmt.Errorf("capture: no device with index %d", index)
	}
	src, err := c.owners[index].Open(c.devices[index], format)
	if err != nil {
		return nil, fmt.Errorf("capture: cannot open %q: %w", c.devices[index].Name, err)
	}
	return src, nil
}
