/*
   GPU front-end: GP0/GP1 register protocol and status-word composition.

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

// Package gpu implements the command-stream front end of the PSX GPU:
// the GP0 render-command buffer and the GP1 display-control sideband. It
// never touches a pixel; rasterization is the Sink's job, the way the
// S/370 channel layer never touches a punch card, leaving that to
// the Device it drives.
package gpu

// Sink is the external renderer collaborator: it receives completed GP0
// command buffers, individual image-load data words, and display mode
// changes. It is never consulted for state; the GPU is the sole owner.
type Sink interface {
	PushCommand(words []uint32)
	PushImageWord(word uint32)
	SetDisplayMode(mode DisplayMode)
}

// TextureDepth enumerates the draw-mode texture page color depth.
type TextureDepth uint8

const (
	Tex4Bit TextureDepth = iota
	Tex8Bit
	Tex15Bit
)

// VerticalRes enumerates the display's vertical resolution.
type VerticalRes uint8

const (
	Y240Lines VerticalRes = iota
	Y480Lines
)

// VideoMode enumerates the broadcast standard.
type VideoMode uint8

const (
	NTSC VideoMode = iota
	PAL
)

// DisplayDepth enumerates output pixel depth.
type DisplayDepth uint8

const (
	Depth15Bit DisplayDepth = iota
	Depth24Bit
)

// Field enumerates which interlaced field is being output.
type Field uint8

const (
	Top Field = iota
	Bottom
)

// DMADirection enumerates how GP0 data is routed to/from DMA.
type DMADirection uint8

const (
	DirOff DMADirection = iota
	DirFifo
	DirCPUToGP0
	DirVRAMToCPU
)

// DisplayMode is the decoded horizontal/vertical resolution, broadcast
// standard, depth, and interlace state, reported to the Sink on change.
type DisplayMode struct {
	HorizontalRes uint32 // pixels
	VerticalRes   VerticalRes
	VideoMode     VideoMode
	Depth         DisplayDepth
	Interlaced    bool
}

// gp0Mode is the GP0 state-machine mode.
type gp0Mode uint8

const (
	modeCommand gp0Mode = iota
	modeImageLoad
)

// GPU holds all GP0/GP1-addressable front-end state.
type GPU struct {
	Sink Sink

	// Draw mode (GP0 0xE1).
	pageBaseX        uint8
	pageBaseY        uint8
	semiTransparency uint8
	textureDepth     TextureDepth
	dithering        bool
	allowDisplay     bool
	disableTexture   bool
	rectFlipX        bool
	rectFlipY        bool

	// Mask bit setting (GP0 0xE6).
	forceSetMask     bool
	preserveMasked   bool

	// Drawing area (GP0 0xE3/0xE4).
	drawAreaLeft   uint16
	drawAreaRight  uint16
	drawAreaTop    uint16
	drawAreaBottom uint16

	// Drawing offset (GP0 0xE5).
	drawOffsetX int16
	drawOffsetY int16

	// Texture window (GP0 0xE2).
	texWindowMaskX   uint8
	texWindowMaskY   uint8
	texWindowOffsetX uint8
	texWindowOffsetY uint8

	// Display region (GP1 0x05/0x06/0x07).
	vramStartX   uint16
	vramStartY   uint16
	horizStart   uint16
	horizEnd     uint16
	lineStart    uint16
	lineEnd      uint16

	// Display mode (GP1 0x08).
	hres1         uint8
	hres2         uint8
	vres          VerticalRes
	videoMode     VideoMode
	displayDepth  DisplayDepth
	interlaced    bool

	field           Field
	dmaDirection    DMADirection
	displayDisabled bool
	interrupt       bool

	// GP0 command-buffer machine.
	buffer      [12]uint32
	bufferLen   int
	remaining   uint32
	mode        gp0Mode
	pendingOp   uint8
	imageWidth  uint32
	imageHeight uint32
}

// New returns a GPU reset to its power-on state.
func New(sink Sink) *GPU {
	g := &GPU{Sink: sink}
	g.reset()
	return g
}

func (g *GPU) reset() {
	*g = GPU{Sink: g.Sink}
	g.allowDisplay = false
	g.displayDisabled = true
}

// Reset restores power-on GPU state, for the console's "reset" command.
func (g *GPU) Reset() {
	g.reset()
}

// gp0Command describes a recognized GP0 opcode's parameter length (in
// 32-bit words, including the first/header word) and handler.
type gp0Command struct {
	length  uint32
	handler func(g *GPU, words []uint32)
}

var gp0Table = map[uint8]gp0Command{
	0x00: {1, func(*GPU, []uint32) {}},
	0x28: {5, (*GPU).forwardDraw},
	0x2C: {9, (*GPU).forwardDraw},
	0x30: {6, (*GPU).forwardDraw},
	0x38: {8, (*GPU).forwardDraw},
	0xA0: {3, (*GPU).startLoadImage},
	0xE1: {1, (*GPU).setDrawMode},
	0xE2: {1, (*GPU).setTextureWindow},
	0xE3: {1, (*GPU).setDrawAreaTopLeft},
	0xE4: {1, (*GPU).setDrawAreaBottomRight},
	0xE5: {1, (*GPU).setDrawingOffset},
	0xE6: {1, (*GPU).setMaskBitSetting},
}

func (g *GPU) forwardDraw(words []uint32) {
	if g.Sink != nil {
		cmd := make([]uint32, len(words))
		copy(cmd, words)
		g.Sink.PushCommand(cmd)
	}
}

// SetGP0 drives the render command-stream state machine with one
// incoming 32-bit word.
func (g *GPU) SetGP0(word uint32) {
	if g.mode == modeImageLoad {
		if g.Sink != nil {
			g.Sink.PushImageWord(word)
		}
		g.remaining--
		if g.remaining == 0 {
			g.mode = modeCommand
		}
		return
	}

	if g.remaining == 0 {
		opcode := uint8(word >> 24)
		cmd, ok := gp0Table[opcode]
		if !ok {
			cmd = gp0Command{length: 1, handler: func(*GPU, []uint32) {}}
		}
		g.pendingOp = opcode
		g.bufferLen = 0
		g.remaining = cmd.length
	}

	g.buffer[g.bufferLen] = word
	g.bufferLen++
	g.remaining--

	if g.remaining == 0 {
		cmd := gp0Table[g.pendingOp]
		if cmd.handler != nil {
			cmd.handler(g, g.buffer[:g.bufferLen])
		}
		g.bufferLen = 0
	}
}

func (g *GPU) startLoadImage(words []uint32) {
	res := words[1]
	width := res & 0xFFFF
	height := (res >> 16) & 0xFFFF
	g.imageWidth = width
	g.imageHeight = height
	count := (width*height + 1) / 2
	if count == 0 {
		g.mode = modeCommand
		return
	}
	g.mode = modeImageLoad
	g.remaining = count
}

func (g *GPU) setDrawMode(words []uint32) {
	w := words[0]
	g.pageBaseX = uint8(w & 0xF)
	g.pageBaseY = uint8((w >> 4) & 0x1)
	g.semiTransparency = uint8((w >> 5) & 0x3)
	switch (w >> 7) & 0x3 {
	case 0:
		g.textureDepth = Tex4Bit
	case 1:
		g.textureDepth = Tex8Bit
	default:
		g.textureDepth = Tex15Bit
	}
	g.dithering = (w>>9)&1 != 0
	g.allowDisplay = (w>>10)&1 != 0
	g.disableTexture = (w>>11)&1 != 0
	g.rectFlipX = (w>>12)&1 != 0
	g.rectFlipY = (w>>13)&1 != 0
}

func (g *GPU) setTextureWindow(words []uint32) {
	w := words[0]
	g.texWindowMaskX = uint8(w & 0x1F)
	g.texWindowMaskY = uint8((w >> 5) & 0x1F)
	g.texWindowOffsetX = uint8((w >> 10) & 0x1F)
	g.texWindowOffsetY = uint8((w >> 15) & 0x1F)
}

func (g *GPU) setDrawAreaTopLeft(words []uint32) {
	w := words[0]
	g.drawAreaLeft = uint16(w & 0x3FF)
	g.drawAreaTop = uint16((w >> 10) & 0x3FF)
}

func (g *GPU) setDrawAreaBottomRight(words []uint32) {
	w := words[0]
	g.drawAreaRight = uint16(w & 0x3FF)
	g.drawAreaBottom = uint16((w >> 10) & 0x3FF)
}

func signExtend11(v uint32) int16 {
	v &= 0x7FF
	if v&0x400 != 0 {
		v |= 0xFFFF_F800
	}
	return int16(int32(v))
}

func (g *GPU) setDrawingOffset(words []uint32) {
	w := words[0]
	g.drawOffsetX = signExtend11(w & 0x7FF)
	g.drawOffsetY = signExtend11((w >> 11) & 0x7FF)
}

func (g *GPU) setMaskBitSetting(words []uint32) {
	w := words[0]
	g.forceSetMask = w&1 != 0
	g.preserveMasked = (w>>1)&1 != 0
}

// SetGP1 dispatches a display-control sideband command keyed on its top
// byte.
func (g *GPU) SetGP1(word uint32) {
	switch uint8(word >> 24) {
	case 0x00:
		g.reset()
	case 0x01:
		g.bufferLen = 0
		g.remaining = 0
		g.mode = modeCommand
	case 0x02:
		g.interrupt = false
	case 0x03:
		g.displayDisabled = word&1 != 0
	case 0x04:
		g.dmaDirection = DMADirection(word & 0x3)
	case 0x05:
		g.vramStartX = uint16(word & 0x3FF)
		g.vramStartY = uint16((word >> 10) & 0x1FF)
	case 0x06:
		g.horizStart = uint16(word & 0xFFF)
		g.horizEnd = uint16((word >> 12) & 0xFFF)
	case 0x07:
		g.lineStart = uint16(word & 0x3FF)
		g.lineEnd = uint16((word >> 10) & 0x3FF)
	case 0x08:
		g.setDisplayModeReg(word)
	}
}

// horizontalRes resolves the composite two-field horizontal resolution
// encoding into a pixel count.
func horizontalRes(hres1, hres2 uint8) uint32 {
	if hres2&1 != 0 {
		return 368
	}
	switch hres1 {
	case 0:
		return 256
	case 1:
		return 320
	case 2:
		return 512
	default:
		return 640
	}
}

func (g *GPU) setDisplayModeReg(word uint32) {
	g.hres1 = uint8(word & 0x3)
	if (word>>2)&1 != 0 {
		g.vres = Y240Lines
	} else {
		g.vres = Y480Lines
	}
	if (word>>3)&1 != 0 {
		g.videoMode = PAL
	} else {
		g.videoMode = NTSC
	}
	if (word>>4)&1 != 0 {
		g.displayDepth = Depth24Bit
	} else {
		g.displayDepth = Depth15Bit
	}
	g.interlaced = (word>>5)&1 != 0
	g.hres2 = uint8((word >> 6) & 1)
	// bit 7 must be zero; an implementation observing it set is being
	// asked for a display mode this front end does not support.
	if (word>>7)&1 != 0 {
		panic("gpu: unsupported display mode requested")
	}

	if g.Sink != nil {
		g.Sink.SetDisplayMode(DisplayMode{
			HorizontalRes: horizontalRes(g.hres1, g.hres2),
			VerticalRes:   g.vres,
			VideoMode:     g.videoMode,
			Depth:         g.displayDepth,
			Interlaced:    g.interlaced,
		})
	}
}

// Status composes the 32-bit GPUSTAT value. Bit assignment follows the
// real hardware layout; rectFlipX/rectFlipY never appear here, they are
// GP0(0xE1) draw-mode state with no status-register bit of their own.
func (g *GPU) Status() uint32 {
	var s uint32
	s |= uint32(g.pageBaseX) & 0xF
	s |= uint32(g.pageBaseY&1) << 4
	s |= uint32(g.semiTransparency&0x3) << 5
	s |= uint32(g.textureDepth&0x3) << 7
	s |= boolBit(g.dithering) << 9
	s |= boolBit(g.allowDisplay) << 10
	s |= boolBit(g.forceSetMask) << 11
	s |= boolBit(g.preserveMasked) << 12
	if g.field == Bottom {
		s |= 1 << 13
	}
	s |= boolBit(g.disableTexture) << 15
	s |= uint32(g.hres2&1) << 16
	s |= uint32(g.hres1&0x3) << 17
	if g.vres == Y480Lines {
		s |= 1 << 19
	}
	if g.videoMode == PAL {
		s |= 1 << 20
	}
	if g.displayDepth == Depth24Bit {
		s |= 1 << 21
	}
	s |= boolBit(g.interlaced) << 22
	s |= boolBit(g.displayDisabled) << 23
	s |= boolBit(g.interrupt) << 24

	// GP0/VRAM readiness: always asserted, this front end never stalls.
	s |= 1 << 26
	s |= 1 << 27
	s |= 1 << 28

	var dmaRequest uint32
	switch g.dmaDirection {
	case DirOff:
		dmaRequest = 0
	case DirFifo:
		dmaRequest = 1
	case DirCPUToGP0:
		dmaRequest = (s >> 28) & 1
	case DirVRAMToCPU:
		dmaRequest = (s >> 27) & 1
	}
	s |= dmaRequest << 25

	s |= uint32(g.dmaDirection&0x3) << 29

	if g.field == Bottom {
		s |= 1 << 31
	}
	return s
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
