package ui

import (
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"strings"

	"rgbmatrix/pixel"

	"golang.org/x/image/draw"
)

// Preview shows the loaded image next to the table, either through the
// kitty graphics protocol or as half-block characters.
//
// Kitty graphics protocol reference:
// https://sw.kovidgoyal.net/kitty/graphics-protocol/
type Preview struct {
	enabled  bool
	useKitty bool
	ascii    bool
	imageID  uint32
	src      *image.NRGBA
	fitted   *image.NRGBA // src scaled for the last requested size

	// cached kitty sequence
	lastKey string
	lastSeq string
}

// Approximate terminal cell size in pixels for kitty images
const (
	cellPixelWidth  = 8
	cellPixelHeight = 16
	kittyChunkSize  = 4096
)

// NewPreview creates a preview renderer.
func NewPreview(useKitty bool) *Preview {
	return &Preview{
		enabled:  true,
		useKitty: useKitty,
		imageID:  2001, // Fixed ID so each frame replaces the last image
	}
}

// SetBitmap replaces the previewed image; nil clears it.
func (p *Preview) SetBitmap(b *pixel.Bitmap) {
	p.lastKey, p.lastSeq = "", ""
	p.fitted = nil
	if !b.Valid() {
		p.src = nil
		return
	}
	p.src = &image.NRGBA{
		Pix:    b.Data,
		Stride: b.Width * pixel.BytesPerPixel,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// HasImage reports whether a bitmap is set.
func (p *Preview) HasImage() bool { return p.src != nil }

// SetEnabled enables or disables the preview.
func (p *Preview) SetEnabled(enabled bool) { p.enabled = enabled }

// IsEnabled returns whether the preview is enabled.
func (p *Preview) IsEnabled() bool { return p.enabled }

// Toggle toggles the preview on/off.
func (p *Preview) Toggle() bool {
	p.enabled = !p.enabled
	return p.enabled
}

// SetASCII renders one flat cell per pixel pair instead of half blocks.
func (p *Preview) SetASCII(ascii bool) { p.ascii = ascii }

// UseKitty returns whether kitty graphics mode is active.
func (p *Preview) UseKitty() bool { return p.useKitty }

// Visible reports whether there is something to draw.
func (p *Preview) Visible() bool { return p.enabled && p.src != nil }

// FitSize scales srcW×srcH to fit inside maxW×maxH keeping the aspect
// ratio. Images never grow beyond scale 1 unless they are smaller than
// one unit on an axis.
func FitSize(srcW, srcH, maxW, maxH int) (w, h int) {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	w, h = srcW, srcH
	if w > maxW {
		h = max(1, h*maxW/w)
		w = maxW
	}
	if h > maxH {
		w = max(1, w*maxH/h)
		h = maxH
	}
	return w, h
}

// scaled returns src resized to w×h. The result is shared between calls
// with the same size, so callers that draw on it must copy first.
func (p *Preview) scaled(w, h int) *image.NRGBA {
	if f := p.fitted; f != nil && f.Rect.Dx() == w && f.Rect.Dy() == h {
		return f
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), p.src, p.src.Bounds(), draw.Src, nil)
	p.fitted = dst
	return dst
}

// scaledCursor maps an image coordinate into a scaled image of size w×h.
func (p *Preview) scaledCursor(x, y, w, h int) (int, int) {
	b := p.src.Bounds()
	return x * w / b.Dx(), y * h / b.Dy()
}

// Render returns height lines of width columns. With kitty graphics the
// lines are blank and the image comes from KittySequence.
// cursorOK marks (cursorX, cursorY) as the inspected pixel.
func (p *Preview) Render(width, height, cursorX, cursorY int, cursorOK bool) []string {
	rows := make([]string, max(0, height))
	blank := strings.Repeat(" ", max(0, width))
	for i := range rows {
		rows[i] = blank
	}
	if !p.Visible() || p.useKitty || width <= 0 || height <= 0 {
		return rows
	}

	// Half blocks give two vertical pixels per cell
	perCell := 2
	if p.ascii {
		perCell = 1
	}
	b := p.src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), width, height*perCell)
	img := p.scaled(w, h)

	cx, cy := -1, -1
	if cursorOK {
		cx, cy = p.scaledCursor(cursorX, cursorY, w, h)
		cy /= perCell
	}

	for row := 0; row < (h+perCell-1)/perCell && row < height; row++ {
		var sb strings.Builder
		for col := range w {
			top := img.NRGBAAt(col, row*perCell)
			marker := col == cx && row == cy
			switch {
			case p.ascii:
				sb.WriteString(RGBToANSIBg(int(top.R), int(top.G), int(top.B)))
				sb.WriteString(markerText(top, marker, "+"))
			default:
				bottom := top
				if row*2+1 < h {
					bottom = img.NRGBAAt(col, row*2+1)
				}
				sb.WriteString(RGBToANSIBg(int(bottom.R), int(bottom.G), int(bottom.B)))
				if marker {
					sb.WriteString(markerText(top, true, "◆"))
				} else {
					sb.WriteString(RGBToANSIFg(int(top.R), int(top.G), int(top.B)))
					sb.WriteString("▀")
				}
			}
		}
		sb.WriteString(Reset)
		sb.WriteString(strings.Repeat(" ", width-w))
		rows[row] = sb.String()
	}
	return rows
}

func markerText(c color.NRGBA, marker bool, glyph string) string {
	if !marker {
		return " "
	}
	if pixel.Contrast(c.R, c.G, c.B) == pixel.Dark {
		return "\033[30m" + glyph
	}
	return "\033[97m" + glyph
}

// KittySequence returns the escape sequence that draws the image over the
// width×height cell area at (xOffset, yOffset). The cursor position is
// saved and restored around it.
func (p *Preview) KittySequence(width, height, xOffset, yOffset, cursorX, cursorY int, cursorOK bool) string {
	if !p.Visible() || !p.useKitty || width <= 0 || height <= 0 {
		return ""
	}
	key := fmt.Sprint(width, height, xOffset, yOffset, cursorX, cursorY, cursorOK)
	if key == p.lastKey {
		return p.lastSeq
	}

	b := p.src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), width*cellPixelWidth, height*cellPixelHeight)
	img := p.scaled(w, h)
	if cursorOK {
		marked := *img
		marked.Pix = append([]byte(nil), img.Pix...)
		cx, cy := p.scaledCursor(cursorX, cursorY, w, h)
		markCursor(&marked, cx, cy)
		img = &marked
	}
	cols := (w + cellPixelWidth - 1) / cellPixelWidth
	rows := (h + cellPixelHeight - 1) / cellPixelHeight

	var sb strings.Builder
	sb.WriteString("\033[s")
	fmt.Fprintf(&sb, "\033[%d;%dH", yOffset+1, xOffset+1)
	sb.WriteString(p.encodeKittyGraphics(img.Pix, w, h, cols, rows))
	sb.WriteString("\033[u")

	p.lastKey, p.lastSeq = key, sb.String()
	return p.lastSeq
}

// markCursor draws a hollow square around (cx, cy) in inverted colors.
func markCursor(img *image.NRGBA, cx, cy int) {
	const radius = 2
	b := img.Bounds()
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			onEdge := y == cy-radius || y == cy+radius || x == cx-radius || x == cx+radius
			if !onEdge || !(image.Point{X: x, Y: y}).In(b) {
				continue
			}
			i := img.PixOffset(x, y)
			img.Pix[i] = 255 - img.Pix[i]
			img.Pix[i+1] = 255 - img.Pix[i+1]
			img.Pix[i+2] = 255 - img.Pix[i+2]
			img.Pix[i+3] = 255
		}
	}
}

// encodeKittyGraphics creates the kitty graphics escape sequence.
// Format: \033_G<control>;base64data\033\\
func (p *Preview) encodeKittyGraphics(pixels []byte, imgWidth, imgHeight, cellCols, cellRows int) string {
	b64Data := base64.StdEncoding.EncodeToString(pixels)

	// a=T: transmit and display
	// f=32: RGBA format (4 bytes per pixel)
	// s=width, v=height: pixel dimensions
	// c=cols, r=rows: cell dimensions to occupy
	// i=id: image ID for updates
	// q=2: suppress response
	control := fmt.Sprintf("a=T,f=32,s=%d,v=%d,c=%d,r=%d,i=%d,q=2",
		imgWidth, imgHeight, cellCols, cellRows, p.imageID)

	var sb strings.Builder
	if len(b64Data) <= kittyChunkSize {
		fmt.Fprintf(&sb, "\033_G%s;%s\033\\", control, b64Data)
		return sb.String()
	}

	for i := 0; i < len(b64Data); i += kittyChunkSize {
		end := min(i+kittyChunkSize, len(b64Data))
		chunk := b64Data[i:end]
		switch {
		case i == 0:
			// control data only on the first chunk, m=1: more follows
			fmt.Fprintf(&sb, "\033_G%s,m=1;%s\033\\", control, chunk)
		case end >= len(b64Data):
			fmt.Fprintf(&sb, "\033_Gm=0;%s\033\\", chunk)
		default:
			fmt.Fprintf(&sb, "\033_Gm=1;%s\033\\", chunk)
		}
	}
	return sb.String()
}

// ClearImage deletes the preview image from the terminal.
func (p *Preview) ClearImage() string {
	if !p.useKitty {
		return ""
	}
	p.lastKey, p.lastSeq = "", ""
	return fmt.Sprintf("\033_Ga=d,d=i,i=%d\033\\", p.imageID)
}
