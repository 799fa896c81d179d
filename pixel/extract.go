package pixel

// BytesPerPixel is the stride of one interleaved R,G,B,A sample.
const BytesPerPixel = 4

// Bitmap is a decoded image: Width*Height samples of R,G,B,A bytes in
// row-major order. Alpha is carried but never read.
type Bitmap struct {
	Width  int
	Height int
	Data   []byte
}

// Dimensions returns the bitmap size.
func (b *Bitmap) Dimensions() Dimensions {
	if b == nil {
		return Dimensions{}
	}
	return Dimensions{Width: b.Width, Height: b.Height}
}

// Valid reports whether the buffer length matches the dimensions.
func (b *Bitmap) Valid() bool {
	if b == nil || !b.Dimensions().Valid() {
		return false
	}
	return len(b.Data) == b.Width*b.Height*BytesPerPixel
}

// Extract reads every sample of the bitmap into a new Sequence, iterating y
// then x. A nil or malformed bitmap yields Empty instead of an error.
func Extract(b *Bitmap) *Sequence {
	if !b.Valid() {
		return Empty
	}

	records := make([]Record, b.Width*b.Height)
	i := 0
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			off := i * BytesPerPixel
			records[i] = NewRecord(x, y, b.Data[off], b.Data[off+1], b.Data[off+2])
			i++
		}
	}

	return &Sequence{dims: b.Dimensions(), records: records}
}
