package testutil

import (
	"path/filepath"
	"testing"
)

func TestTree(t *testing.T) {
	tr := NewTree(t).
		Write("src/views/index.html", "<p>hi</p>").
		WriteAll(map[string]string{"src/data/site.yml": "title: x", "src/a/b/c.txt": "c"})

	fa := NewFileAssertions(t, tr.Root)
	fa.AssertFileExists("src/views/index.html").
		AssertFileEquals(filepath.Join("src", "data", "site.yml"), "title: x").
		AssertFileContains("src/a/b/c.txt", "c").
		AssertFileNotExists("missing.txt")

	if got := tr.Pattern("src/**/*"); got != filepath.Join(tr.Root, "src", "**", "*") {
		t.Fatalf("unexpected pattern %s", got)
	}
}
