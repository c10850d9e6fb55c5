// Package blocks maintains the endless, scroll-driven sequence of ground
// blocks the character has to land on.
package blocks

import (
	"math/rand"

	"github.com/vovakirdan/hakusyu/internal/core"
)

// Block is a ground obstacle and whether the character already landed on it.
type Block struct {
	Box core.Rect
	Hit bool
}

// Config describes the block geometry. Widths are fractions of the lane
// width (viewport width / division), heights fractions of the viewport height.
type Config struct {
	ViewportW int
	ViewportH int
	Division  int
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
	GapMin    int // Horizontal gap in pixels before each new block
	GapMax    int
}

// Stream is an ordered double-ended sequence of blocks, front = leftmost.
// After Reset the sequence always holds exactly Capacity() blocks.
type Stream struct {
	cfg    Config
	rng    *rand.Rand
	blocks []Block
	prefix int // Number of leading blocks that are hit
}

// NewStream creates an empty stream. Call Reset before use.
func NewStream(cfg Config, seed int64) *Stream {
	return &Stream{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		blocks: make([]Block, 0, cfg.Division*2),
	}
}

// Capacity returns the number of live blocks kept during a session.
func (s *Stream) Capacity() int {
	return s.cfg.Division * 2
}

// Reset clears the stream, reseeds the RNG and generates Capacity() blocks.
// The first block is pinned at anchorX and already counts as hit.
func (s *Stream) Reset(seed int64, anchorX int) {
	s.rng = rand.New(rand.NewSource(seed))
	s.blocks = s.blocks[:0]
	s.prefix = 0

	s.GenerateNext()
	s.blocks[0].Box.X = anchorX
	s.MarkHit(0)

	for len(s.blocks) < s.Capacity() {
		s.GenerateNext()
	}
}

// GenerateNext appends a random block right after the current rightmost one.
func (s *Stream) GenerateNext() {
	laneW := float64(s.cfg.ViewportW) / float64(s.cfg.Division)
	viewH := float64(s.cfg.ViewportH)

	width := s.uniform(int(s.cfg.MinWidth*laneW), int(s.cfg.MaxWidth*laneW))
	height := s.uniform(int(s.cfg.MinHeight*viewH), int(s.cfg.MaxHeight*viewH))
	if width < 1 {
		width = 1
	}

	offset := 0
	if len(s.blocks) > 0 {
		offset = s.Back().Box.Right()
	}
	x := offset + s.uniform(s.cfg.GapMin, s.cfg.GapMax)

	s.blocks = append(s.blocks, Block{
		Box: core.NewRect(x, s.cfg.ViewportH-height, width, height),
	})
}

// uniform draws an integer from [lo, hi].
func (s *Stream) uniform(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// Scroll moves every block left by pixels. Each block that ends up fully
// past the left edge is replaced by a new block at the tail.
// Returns the number of evicted blocks.
func (s *Stream) Scroll(pixels int) int {
	for i := range s.blocks {
		s.blocks[i].Box.X -= pixels
	}

	evicted := 0
	for len(s.blocks) > 0 && s.blocks[0].Box.Right() <= 0 {
		s.GenerateNext()
		s.evictFront()
		evicted++
	}
	return evicted
}

// evictFront drops the leftmost block together with its hit state.
func (s *Stream) evictFront() {
	copy(s.blocks, s.blocks[1:])
	s.blocks = s.blocks[:len(s.blocks)-1]

	if s.prefix > 0 {
		s.prefix--
		return
	}
	s.prefix = 0
	s.advancePrefix()
}

func (s *Stream) advancePrefix() {
	for s.prefix < len(s.blocks) && s.blocks[s.prefix].Hit {
		s.prefix++
	}
}

// MarkHit flags block i as hit. Returns false if it already was.
func (s *Stream) MarkHit(i int) bool {
	if s.blocks[i].Hit {
		return false
	}
	s.blocks[i].Hit = true
	if i == s.prefix {
		s.advancePrefix()
	}
	return true
}

// PrefixHit returns how many leading blocks are hit. Every block with an
// index below PrefixHit() is hit, and block PrefixHit() (if any) is not.
func (s *Stream) PrefixHit() int {
	return s.prefix
}

// Len returns the number of live blocks.
func (s *Stream) Len() int {
	return len(s.blocks)
}

// Box returns the box of block i.
func (s *Stream) Box(i int) core.Rect {
	return s.blocks[i].Box
}

// At returns block i.
func (s *Stream) At(i int) Block {
	return s.blocks[i]
}

// Front returns the leftmost block.
func (s *Stream) Front() Block {
	return s.blocks[0]
}

// Back returns the rightmost block.
func (s *Stream) Back() Block {
	return s.blocks[len(s.blocks)-1]
}

// Blocks returns a copy of the live sequence.
func (s *Stream) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Load replaces the live sequence. Tests use it to set up exact layouts.
func (s *Stream) Load(bs []Block) {
	s.blocks = append(s.blocks[:0], bs...)
	s.prefix = 0
	s.advancePrefix()
}
