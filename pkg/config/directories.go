// Package config resolves on-disk locations and loads tournament/SPRT
// configuration from YAML.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const FilePermissions = 0755

// Directory is the root of arbiter's state: resumable run snapshots and
// any per-user default configuration.
var Directory = filepath.Join(xdg.Home, ".arbiter")

// ResumeDir holds paused tournament/SPRT state, keyed by run name.
var ResumeDir = filepath.Join(Directory, "resume")

func tryMkdir(dir string) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		_ = os.MkdirAll(dir, FilePermissions)
	}
}

func init() {
	tryMkdir(Directory)
	tryMkdir(ResumeDir)
}
