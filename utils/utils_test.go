package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func testRoot() *cobra.Command {
	root := &cobra.Command{Use: "mrtool"}
	pack := &cobra.Command{Use: "pack", Short: "Create and manage mod packs"}
	pack.AddCommand(&cobra.Command{Use: "create", Short: "Create a pack", Run: func(*cobra.Command, []string) {}})
	root.AddCommand(pack)
	return root
}

func TestGenerateMarkdown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")
	if err := generateMarkdown(testRoot(), dir); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "mrtool_pack_create.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Create a pack") {
		t.Errorf("unexpected markdown:\n%s", data)
	}
}

func TestWriteCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		var buf bytes.Buffer
		if err := writeCompletion(testRoot(), shell, &buf); err != nil {
			t.Errorf("%s: %v", shell, err)
		}
		if buf.Len() == 0 {
			t.Errorf("%s: empty completion script", shell)
		}
	}
	if err := writeCompletion(testRoot(), "tcsh", &bytes.Buffer{}); err == nil {
		t.Error("expected an unsupported shell to fail")
	}
}
