package lexicon_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nairkartik/shuddhi/internal/lexicon"
)

func TestFileSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "names.txt")
	content := "# common names\nPriya\n\n  Rahul  \nAnkit\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	names, err := lexicon.FileSource{Path: path}.Names(context.Background())
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	want := []string{"Priya", "Rahul", "Ankit"}
	if len(names) != len(want) {
		t.Fatalf("Names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFileSource_Missing(t *testing.T) {
	t.Parallel()

	_, err := lexicon.FileSource{Path: filepath.Join(t.TempDir(), "nope.txt")}.Names(context.Background())
	if err == nil {
		t.Error("Names on a missing file: err=nil, want error")
	}
}

func TestReadFrom_Empty(t *testing.T) {
	t.Parallel()

	names, err := lexicon.ReadFrom(strings.NewReader("# only comments\n\n"))
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("ReadFrom = %v, want empty", names)
	}
}

func TestStatic(t *testing.T) {
	t.Parallel()

	names, err := lexicon.Static{"Priya"}.Names(context.Background())
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if len(names) != 1 || names[0] != "Priya" {
		t.Errorf("Names = %v, want [Priya]", names)
	}
}
