package pixel

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"time"
)

// CSVHeader is the first line of every export.
const CSVHeader = "X,Y,R,G,B,HEX"

// WriteCSV writes the header and one row per record, joined by "\n" with
// no trailing newline. Fields are numeric or hex, so nothing is quoted.
// It returns the number of data rows written.
func WriteCSV(w io.Writer, seq *Sequence) (int, error) {
	bw := bufio.NewWriterSize(w, 64*1024)
	if _, err := bw.WriteString(CSVHeader); err != nil {
		return 0, err
	}

	rows := 0
	buf := make([]byte, 0, 32)
	for _, p := range seq.All() {
		buf = append(buf[:0], '\n')
		buf = strconv.AppendInt(buf, int64(p.X), 10)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(p.Y), 10)
		buf = append(buf, ',')
		buf = strconv.AppendUint(buf, uint64(p.R), 10)
		buf = append(buf, ',')
		buf = strconv.AppendUint(buf, uint64(p.G), 10)
		buf = append(buf, ',')
		buf = strconv.AppendUint(buf, uint64(p.B), 10)
		buf = append(buf, ',')
		buf = append(buf, p.Hex...)
		if _, err := bw.Write(buf); err != nil {
			return rows, err
		}
		rows++
	}

	if err := bw.Flush(); err != nil {
		return rows, fmt.Errorf("flush csv: %w", err)
	}
	return rows, nil
}

// CSVRow formats a single record the way WriteCSV does.
func CSVRow(p Record) string {
	return fmt.Sprintf("%d,%d,%d,%d,%d,%s", p.X, p.Y, p.R, p.G, p.B, p.Hex)
}

// ExportFilename returns the default export name for the given time.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("rgb_matrix_%d.csv", t.UnixMilli())
}
