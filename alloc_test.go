package mdtint

import (
	"bytes"
	"os"
	"testing"
)

func TestRenderAllocations(t *testing.T) {
	src, err := os.ReadFile("testdata/sample.md")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	allocs := testing.AllocsPerRun(100, func() {
		var out bytes.Buffer
		_ = Render(RenderRequest{
			Reader: bytes.NewReader(src),
			Writer: &out,
			Width:  80,
		})
	})
	if allocs > 25000 {
		t.Fatalf("too many allocations per Render: got %.2f", allocs)
	}
}
