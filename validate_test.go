package mdtint

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateInput(t *testing.T) {
	cases := []struct {
		name string
		src  []byte
		want error
	}{
		{"clean markdown", []byte("# title\n\nbody text\n"), nil},
		{"invalid utf-8", []byte{0xff, 0xfe, 'a'}, ErrInvalidUTF8},
		{"nul byte", []byte("ab\x00cd"), ErrBinaryInput},
		{"short control-heavy input passes", []byte("\x01\x01"), nil},
		{"control-dense input", []byte(strings.Repeat("a", 62) + "\x01\x01"), ErrBinaryInput},
		{"escape-dense input", []byte("\x1b[31m" + strings.Repeat("a", 60) + "\x1b[0m"), ErrBinaryInput},
		{"tabs and newlines are text", []byte(strings.Repeat("a\t", 20) + strings.Repeat("b\n", 20)), nil},
		{"single stray control in long text", []byte(strings.Repeat("a", 99) + "\x01"), nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateInput(c.src)
			if c.want == nil {
				if err != nil {
					t.Fatalf("ValidateInput: %v", err)
				}
				return
			}
			if !errors.Is(err, c.want) {
				t.Fatalf("ValidateInput = %v, want %v", err, c.want)
			}
		})
	}
}
