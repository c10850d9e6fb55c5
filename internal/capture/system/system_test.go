package system

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/vovakirdan/hakusyu/internal/capture"
)

func fakeLookPath(installed ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, n := range installed {
			if n == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

// helperCommand re-runs the test binary as a fake recorder.
func helperCommand(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperRecorder")
	cmd.Env = append(os.Environ(), "HAKUSYU_HELPER_RECORDER=1")
	return cmd
}

func TestHelperRecorder(t *testing.T) {
	if os.Getenv("HAKUSYU_HELPER_RECORDER") != "1" {
		return
	}
	// Eight samples of 0x0102 little-endian, then exit.
	out := []byte{}
	for i := 0; i < 8; i++ {
		out = append(out, 0x02, 0x01)
	}
	os.Stdout.Write(out)
	os.Exit(0)
}

func TestDevicesProbeOrder(t *testing.T) {
	b := New(nil)
	b.lookPath = fakeLookPath("rec", "arecord")

	devs, err := b.Devices()
	if err != nil {
		t.Fatalf("Devices() error = %v", err)
	}
	if len(devs) != 2 {
		t.Fatalf("Devices() = %d devices, expected 2", len(devs))
	}
	if devs[0].ID != "/usr/bin/arecord" || devs[1].ID != "/usr/bin/rec" {
		t.Errorf("Devices() order = %q, %q; expected arecord before rec", devs[0].ID, devs[1].ID)
	}
	for _, d := range devs {
		if d.Backend != BackendName {
			t.Errorf("Device.Backend = %q, expected %q", d.Backend, BackendName)
		}
	}
}

func TestDetectNoRecorder(t *testing.T) {
	b := New(nil)
	b.lookPath = fakeLookPath()

	_, err := b.Detect()
	if !errors.Is(err, capture.ErrNoBackend) {
		t.Errorf("Detect() error = %v, expected ErrNoBackend", err)
	}
}

func TestToolArgsCarryFormat(t *testing.T) {
	f := capture.Format{SampleRate: 22050, Channels: 1}
	for _, tool := range Tools {
		args := tool.Args(f)
		var rate, ch bool
		for _, a := range args {
			if a == "22050" || a == "--rate=22050" {
				rate = true
			}
			if a == "1" || a == "--channels=1" {
				ch = true
			}
		}
		if !rate || !ch {
			t.Errorf("%s args %v do not carry the format", tool.Name, args)
		}
	}
}

func TestSourceDecodesRecorderOutput(t *testing.T) {
	b := New(nil)
	b.lookPath = fakeLookPath("parec")
	b.command = helperCommand

	devs, _ := b.Devices()
	src, err := b.Open(devs[0], capture.Format{SampleRate: 44100, Channels: 2})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	buf := capture.NewBuffer(8)
	buf.Resume()
	if err := src.Start(buf); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for buf.Len() < 8 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	src.Close()
	buf.Pause()

	if buf.Len() != 8 {
		t.Fatalf("Len() = %d, expected 8", buf.Len())
	}
	for i, v := range buf.Samples() {
		if v != 0x0102 {
			t.Errorf("Samples()[%d] = %#x, expected 0x0102", i, v)
		}
	}
}

func TestOpenUnknownDevice(t *testing.T) {
	b := New(nil)
	b.lookPath = fakeLookPath("parec")
	if _, err := b.Open(capture.Device{ID: "/opt/bin/nothing"}, capture.Format{}); err == nil {
		t.Error("Open() should reject an unknown recorder")
	}
}
