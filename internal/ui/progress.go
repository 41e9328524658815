package ui

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// ProgressReader wraps r with a byte progress bar sized to total.
// Call the returned func once reading is done.
func ProgressReader(r io.Reader, total int64, enabled bool) (io.Reader, func()) {
	if !enabled || total <= 0 {
		return r, func() {}
	}

	bar := pb.Full.Start64(total)
	bar.Set(pb.Bytes, true)
	return bar.NewProxyReader(r), func() { bar.Finish() }
}
