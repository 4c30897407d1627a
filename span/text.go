package span

import "strings"

// Text is a rune sequence stored in a gap buffer. Offsets are rune
// indices.
type Text struct {
	buf  []rune // storage array with gap
	gap0 int    // start of gap (first unused index)
	gap1 int    // end of gap (first used index after gap)
}

const minGapCapacity = 32

// NewText creates a Text holding s.
func NewText(s string) *Text {
	t := &Text{}
	t.Reset(s)
	return t
}

// Len returns the number of runes in the text.
func (t *Text) Len() int {
	return t.gap0 + (len(t.buf) - t.gap1)
}

// Reset replaces the whole text with s.
func (t *Text) Reset(s string) {
	r := []rune(s)
	t.buf = make([]rune, len(r)+minGapCapacity)
	copy(t.buf, r)
	t.gap0 = len(r)
	t.gap1 = len(t.buf)
}

// String returns the text as a string.
func (t *Text) String() string {
	var b strings.Builder
	b.Grow(t.Len())
	for _, r := range t.buf[:t.gap0] {
		b.WriteRune(r)
	}
	for _, r := range t.buf[t.gap1:] {
		b.WriteRune(r)
	}
	return b.String()
}

// At returns the rune at logical offset i.
func (t *Text) At(i int) rune {
	if i < t.gap0 {
		return t.buf[i]
	}
	return t.buf[i+(t.gap1-t.gap0)]
}

// Slice returns the runes in [start, end) as a string.
func (t *Text) Slice(start, end int) (string, error) {
	if err := checkRange("slice", start, end, t.Len()); err != nil {
		return "", err
	}
	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteRune(t.At(i))
	}
	return b.String(), nil
}

// moveGapTo repositions the gap so that gap0 == i.
func (t *Text) moveGapTo(i int) {
	if i == t.gap0 {
		return
	}
	if i < t.gap0 {
		// Move runes [i, gap0) rightward to end at gap1.
		count := t.gap0 - i
		copy(t.buf[t.gap1-count:t.gap1], t.buf[i:t.gap0])
		t.gap1 -= count
		t.gap0 = i
	} else {
		// Move runes from after the gap leftward.
		count := i - t.gap0
		copy(t.buf[t.gap0:t.gap0+count], t.buf[t.gap1:t.gap1+count])
		t.gap0 += count
		t.gap1 += count
	}
}

// growGap ensures there are at least needed free slots in the gap.
func (t *Text) growGap(needed int) {
	if t.gap1-t.gap0 >= needed {
		return
	}
	oldLen := len(t.buf)
	growth := max(oldLen, needed, minGapCapacity)
	newLen := oldLen + growth

	buf := make([]rune, newLen)
	copy(buf[:t.gap0], t.buf[:t.gap0])
	afterCount := oldLen - t.gap1
	newGap1 := newLen - afterCount
	copy(buf[newGap1:], t.buf[t.gap1:])

	t.buf = buf
	t.gap1 = newGap1
}

// Replace substitutes s for the runes in [start, end).
func (t *Text) Replace(start, end int, s string) error {
	if err := checkRange("replace", start, end, t.Len()); err != nil {
		return err
	}
	// Deleted runes after start are absorbed by the gap.
	t.moveGapTo(start)
	t.gap1 += end - start

	r := []rune(s)
	t.growGap(len(r))
	copy(t.buf[t.gap0:], r)
	t.gap0 += len(r)
	return nil
}
