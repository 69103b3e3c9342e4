package images

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	input := `path,label,note
# comment line
img/a.jpg,Alpha,first shot
/abs/b.jpg,Beta
c.jpg
,"empty path is ignored",x
"d, with comma.jpg","Delta, quoted",  padded note
`
	entries, err := ReadCSV(strings.NewReader(input), "/base")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Entry{
		{Path: filepath.Join("/base", "img/a.jpg"), Label: "Alpha", Note: "first shot"},
		{Path: "/abs/b.jpg", Label: "Beta"},
		{Path: filepath.Join("/base", "c.jpg")},
		{Path: filepath.Join("/base", "d, with comma.jpg"), Label: "Delta, quoted", Note: "padded note"},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(entries), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, want[i], entries[i])
		}
	}
}

func TestReadCSV_NoHeader(t *testing.T) {
	entries, err := ReadCSV(strings.NewReader("a.png,A\nb.png,B\n"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 || entries[0].Path != "a.png" || entries[1].Label != "B" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestReadCSV_Malformed(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("\"unterminated,label\n"), ""); err == nil {
		t.Error("expected error for malformed csv")
	}
}
