package editor

import (
	"errors"
	"fmt"
)

// ErrBadState is wrapped by errors decoding a State.
var ErrBadState = errors.New("bad editor state")

// State is the part of an editor a host persists across being torn
// down and recreated: the on/off toggles.
type State struct {
	Bold      bool `json:"bold"`
	Italic    bool `json:"italic"`
	Underline bool `json:"underline"`
}

// MarshalBinary encodes s as three bytes, 1 for on and 0 for off, in
// bold, italic, underline order.
func (s State) MarshalBinary() ([]byte, error) {
	return []byte{flag(s.Bold), flag(s.Italic), flag(s.Underline)}, nil
}

// UnmarshalBinary decodes the form written by MarshalBinary.
func (s *State) UnmarshalBinary(data []byte) error {
	if len(data) != 3 {
		return fmt.Errorf("%w: got %d bytes, want 3", ErrBadState, len(data))
	}
	var v [3]bool
	for i, b := range data {
		switch b {
		case 0:
		case 1:
			v[i] = true
		default:
			return fmt.Errorf("%w: byte %d is %#x", ErrBadState, i, b)
		}
	}
	s.Bold, s.Italic, s.Underline = v[0], v[1], v[2]
	return nil
}

func flag(on bool) byte {
	if on {
		return 1
	}
	return 0
}
