package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var clipExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".webm": true,
}

// DirDevice hands out pre-recorded clips from a directory, oldest name
// first. Each clip is renamed with a .processed suffix once used.
type DirDevice struct {
	dir string
	mu  sync.Mutex
}

func NewDirDevice(dir string) *DirDevice {
	return &DirDevice{dir: dir}
}

func (d *DirDevice) Name() string {
	return "dir"
}

func (d *DirDevice) Start(_ context.Context) error {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("creating clip dir: %w", err)
	}
	return nil
}

func (d *DirDevice) Stop() (Clip, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return Clip{}, fmt.Errorf("reading dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if clipExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return Clip{}, fmt.Errorf("no clips left in %s", d.dir)
	}

	path := filepath.Join(d.dir, names[0])
	data, err := os.ReadFile(path)
	if err != nil {
		return Clip{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	if err := os.Rename(path, path+".processed"); err != nil {
		return Clip{}, fmt.Errorf("marking %s processed: %w", path, err)
	}

	return Clip{Data: data, Ext: strings.ToLower(filepath.Ext(path))}, nil
}
