package shaders

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"
	"github.com/wienergl/wiener/logging"
)

var watcherLog = logging.Module("ShaderWatcher")

// Watcher tracks the files shader programs were built from and reports which programs
// changed on disk. It never rebuilds anything itself.
//
// Directories are watched instead of files because most editors save by replacing the file.
type Watcher struct {
	w *fsnotify.Watcher

	// Absolute file path to the names of the programs using it
	files   map[string][]string
	dirs    map[string]struct{}
	pending map[string]struct{}
}

func NewWatcher() (*Watcher, error) {

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader watcher: %w", err)
	}

	return &Watcher{
		w:       w,
		files:   make(map[string][]string),
		dirs:    make(map[string]struct{}),
		pending: make(map[string]struct{}),
	}, nil
}

// Watch registers the source files of a program
func (w *Watcher) Watch(programName string, paths ...string) error {

	for _, p := range paths {

		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to watch shader '%s': %w", p, err)
		}

		dir := filepath.Dir(abs)
		if _, ok := w.dirs[dir]; !ok {
			if err := w.w.Add(dir); err != nil {
				return fmt.Errorf("failed to watch shader directory '%s': %w", dir, err)
			}
			w.dirs[dir] = struct{}{}
		}

		if !slices.Contains(w.files[abs], programName) {
			w.files[abs] = append(w.files[abs], programName)
		}

		watcherLog.Debug("Watching shader file", "program", programName, "path", abs)
	}

	return nil
}

// Changed drains the pending file events without blocking and returns the sorted names of
// the programs whose files were written, created or renamed since the last call.
func (w *Watcher) Changed() []string {

	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return w.flush()
			}
			w.handle(ev)

		case err, ok := <-w.w.Errors:
			if !ok {
				return w.flush()
			}
			watcherLog.Error("Shader watcher error", "err", err)

		default:
			return w.flush()
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {

	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}

	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	for _, name := range w.files[abs] {
		w.pending[name] = struct{}{}
	}
}

func (w *Watcher) flush() []string {

	if len(w.pending) == 0 {
		return nil
	}

	names := make([]string, 0, len(w.pending))
	for name := range w.pending {
		names = append(names, name)
	}
	clear(w.pending)

	slices.Sort(names)
	watcherLog.Info("Shader sources changed", "programs", names)
	return names
}

func (w *Watcher) Close() error {
	return w.w.Close()
}
