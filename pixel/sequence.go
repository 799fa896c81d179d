package pixel

import "iter"

// Sequence is the immutable, row-major list of records for one image.
// It is built once by Extract and then only read, so it is safe to share
// between goroutines without locking.
type Sequence struct {
	dims    Dimensions
	records []Record
}

// Empty is the "nothing to display" sequence.
var Empty = &Sequence{}

// NewSequence wraps records that are already in row-major order. The
// sequence takes ownership of the slice; callers must not modify it
// afterwards. len(records) may be shorter than dims.Area().
func NewSequence(dims Dimensions, records []Record) *Sequence {
	if len(records) == 0 {
		return Empty
	}
	return &Sequence{dims: dims, records: records}
}

// Len returns the number of records.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Dimensions returns the image size the sequence was extracted from.
func (s *Sequence) Dimensions() Dimensions {
	if s == nil {
		return Dimensions{}
	}
	return s.dims
}

// Width is shorthand for Dimensions().Width.
func (s *Sequence) Width() int { return s.Dimensions().Width }

// Height is shorthand for Dimensions().Height.
func (s *Sequence) Height() int { return s.Dimensions().Height }

// At returns the record at linear index i.
func (s *Sequence) At(i int) (Record, bool) {
	if s == nil || i < 0 || i >= len(s.records) {
		return Record{}, false
	}
	return s.records[i], true
}

// Lookup resolves (x, y) through the coordinate index. The second result
// is false when the coordinate falls outside the image or past the end of
// a truncated sequence.
func (s *Sequence) Lookup(x, y int) (Record, bool) {
	i, err := ToIndex(x, y, s.Dimensions())
	if err != nil {
		return Record{}, false
	}
	return s.At(i)
}

// All yields every record with its index in sequence order.
func (s *Sequence) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		if s == nil {
			return
		}
		for i, r := range s.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// IsEmpty reports whether there is nothing to display.
func (s *Sequence) IsEmpty() bool {
	return s.Len() == 0
}
