package span

import "fmt"

// InvalidRangeError reports a range with start > end or one that falls
// outside the text. It signals a programming error in the caller.
type InvalidRangeError struct {
	Op    string
	Start int
	End   int
	Len   int // text length at the time of the call
}

func (e *InvalidRangeError) Error() string {
	if e.Start > e.End {
		return fmt.Sprintf("%s: invalid range [%d,%d): start after end", e.Op, e.Start, e.End)
	}
	return fmt.Sprintf("%s: range [%d,%d) outside text of length %d", e.Op, e.Start, e.End, e.Len)
}

func checkRange(op string, start, end, n int) error {
	if start > end || start < 0 || end > n {
		return &InvalidRangeError{Op: op, Start: start, End: end, Len: n}
	}
	return nil
}
