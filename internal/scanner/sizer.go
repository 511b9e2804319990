package scanner

import (
	"errors"
	"io/fs"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"

	"github.com/samuli/duview/internal/model"
)

// errAbandoned stops an in-flight walk once the owning scan is superseded.
var errAbandoned = errors.New("scan abandoned")

// Sizer walks subtrees with fastwalk to compute directory sizes and flat
// listings.
type Sizer struct {
	conf *fastwalk.Config
}

// NewSizer creates a Sizer that does not follow symlinks.
func NewSizer() *Sizer {
	return &Sizer{
		conf: &fastwalk.Config{Follow: false},
	}
}

// DirectorySize returns the summed byte length of every file under path,
// at any depth. Directories themselves contribute nothing; their weight is
// their file descendants. Unreadable descendants are skipped. When
// cancelled mid-walk, the partial sum accumulated so far is returned.
func (s *Sizer) DirectorySize(path string, cancelled Cancel) int64 {
	if cancelled == nil {
		cancelled = never
	}

	var total atomic.Int64
	_ = fastwalk.Walk(s.conf, path, func(p string, d fs.DirEntry, err error) error {
		if cancelled() {
			return errAbandoned
		}
		if err != nil || p == path {
			return nil
		}
		if hidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total.Add(info.Size())
		return nil
	})

	return total.Load()
}

// WalkEntries enumerates every non-hidden descendant of root as a flat
// entry list, all depths, root excluded. File entries carry their byte
// length; directory entries come back with size zero for the caller to
// fill in. The only reported failure is being unable to list root itself.
func (s *Sizer) WalkEntries(root string, cancelled Cancel) ([]model.Entry, error) {
	if cancelled == nil {
		cancelled = never
	}

	var mu sync.Mutex
	var entries []model.Entry

	walkErr := fastwalk.Walk(s.conf, root, func(p string, d fs.DirEntry, err error) error {
		if cancelled() {
			return errAbandoned
		}
		if err != nil {
			if p == root {
				return err
			}
			return nil
		}
		if p == root {
			return nil
		}
		if hidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		e := model.Entry{Path: p, Name: d.Name(), IsDir: d.IsDir()}
		if !d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return nil
			}
			e.Size = info.Size()
		}

		mu.Lock()
		entries = append(entries, e)
		mu.Unlock()
		return nil
	})

	if walkErr != nil && !errors.Is(walkErr, errAbandoned) {
		return nil, walkErr
	}
	return entries, nil
}

// hidden reports whether a name follows the dotfile convention.
func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
