package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const snapshotPrefix = "readvoyage-"

// DirSink writes snapshots into a local directory and keeps the newest Keep
// of them. Keep <= 0 keeps everything.
type DirSink struct {
	Dir  string
	Keep int
}

func NewDirSink(dir string, keep int) *DirSink {
	return &DirSink{Dir: dir, Keep: keep}
}

func (s *DirSink) Put(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, ".tmp-"+name)
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, filepath.Join(s.Dir, name)); err != nil {
		return err
	}

	return s.prune()
}

// prune relies on snapshot names sorting in time order.
func (s *DirSink) prune() error {
	if s.Keep <= 0 {
		return nil
	}
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), snapshotPrefix) {
			names = append(names, e.Name())
		}
	}
	if len(names) <= s.Keep {
		return nil
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-s.Keep] {
		if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (s *DirSink) String() string {
	return "dir:" + s.Dir
}
