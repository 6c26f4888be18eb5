package util

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/git-l10n/pofmt/repository"
)

// TestGetChangedPoFiles tests GetChangedPoFiles with a temporary git repository.
func TestGetChangedPoFiles(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	tmpDir := t.TempDir()

	runGit := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = tmpDir
		if output, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, string(output))
		}
	}

	runGit("init")
	runGit("config", "user.email", "test@test.com")
	runGit("config", "user.name", "Test")
	runGit("config", "commit.gpgsign", "false")

	poContent := `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"

msgid "Hello"
msgstr "你好"
`
	writePo := func(name, content string) {
		path := filepath.Join(tmpDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	for _, f := range []string{"po/zh_CN.po", "po/zh_TW.po", "po/ja.po", "po/git.pot"} {
		writePo(f, poContent)
	}
	runGit("add", "po/")
	runGit("commit", "-m", "initial")

	writePo("po/zh_CN.po", poContent+"\nmsgid \"World\"\nmsgstr \"世界\"\n")
	writePo("po/git.pot", poContent+"\nmsgid \"extra\"\nmsgstr \"\"\n")
	if err := os.Remove(filepath.Join(tmpDir, "po", "ja.po")); err != nil {
		t.Fatalf("failed to remove ja.po: %v", err)
	}

	repository.OpenRepository(tmpDir)

	files, err := GetChangedPoFiles("HEAD")
	if err != nil {
		t.Fatalf("GetChangedPoFiles failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 changed file, got %d: %v", len(files), files)
	}
	if !strings.HasSuffix(filepath.ToSlash(files[0]), "po/zh_CN.po") {
		t.Errorf("expected po/zh_CN.po, got %s", files[0])
	}

	if _, err := GetChangedPoFiles(""); err == nil {
		t.Error("GetChangedPoFiles should fail without a revision")
	}
	if _, err := GetChangedPoFiles("no-such-revision"); err == nil {
		t.Error("GetChangedPoFiles should fail for a bad revision")
	}
}
