// Package repository locates the git repository pofmt runs in.
package repository

import (
	"fmt"

	"github.com/jiangxin/goconfig"
	log "github.com/sirupsen/logrus"
)

// Repository holds repository and error.
type Repository struct {
	repository *goconfig.Repository
	error      error
}

var theRepository Repository

// Open will try to find repository in dir.
func (v *Repository) Open(dir string) error {
	v.repository, v.error = goconfig.FindRepository(dir)
	return v.error
}

// OpenRepository will try to find repository in dir. Not being inside a
// repository is not an error for pofmt, see Opened.
func OpenRepository(dir string) {
	if err := theRepository.Open(dir); err != nil {
		log.Debugf("not in a git repository: %s", err)
	}
}

// Opened returns true if a repository was found.
func Opened() bool {
	return theRepository.error == nil && theRepository.repository != nil
}

// RequireOpened returns an error if no repository was found.
func RequireOpened() error {
	if !Opened() {
		if theRepository.error != nil {
			return theRepository.error
		}
		return fmt.Errorf("not in a git repository")
	}
	return nil
}

// WorkDir returns root dir of worktree, or an empty string outside of a
// repository.
func WorkDir() string {
	if !Opened() {
		return ""
	}
	return theRepository.repository.WorkDir()
}
