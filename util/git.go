package util

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/git-l10n/pofmt/repository"
	log "github.com/sirupsen/logrus"
)

// GetChangedPoFiles returns the po files in the worktree which differ from
// revision since, deleted files excluded. Paths are joined with the root
// of the worktree.
func GetChangedPoFiles(since string) ([]string, error) {
	if since == "" {
		return nil, fmt.Errorf("no revision given for GetChangedPoFiles")
	}
	if err := repository.RequireOpened(); err != nil {
		return nil, err
	}
	workDir := repository.WorkDir()

	cmd := exec.Command("git", "diff", "-z", "--name-only", "--diff-filter=d", since, "--")
	cmd.Dir = workDir
	log.Debugf("getting changed po files: %s", cmd.String())
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to get changed po files: %w", err)
	}

	var poFiles []string
	for _, name := range strings.Split(string(output), "\x00") {
		if name == "" || !strings.HasSuffix(name, ".po") {
			continue
		}
		poFiles = append(poFiles, filepath.Join(workDir, filepath.FromSlash(name)))
	}
	return poFiles, nil
}
