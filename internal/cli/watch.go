package cli

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch runs one generation cycle, then keeps regenerating whenever the
// input file changes. Generation errors are logged and the loop continues;
// only watcher setup failures end it.
func (r *runnerImpl) Watch(cfg *Config) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	// Watch the directory: editors commonly replace the file on save, which
	// drops a watch registered on the file itself.
	if err := w.Add(filepath.Dir(cfg.Input)); err != nil {
		return fmt.Errorf("watch %q: %w", cfg.Input, err)
	}
	target, err := filepath.Abs(cfg.Input)
	if err != nil {
		return fmt.Errorf("watch %q: %w", cfg.Input, err)
	}

	r.runLogged(cfg)
	log.Printf("gen-derive: watching %s", cfg.Input)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if abs, err := filepath.Abs(ev.Name); err != nil || abs != target {
				continue
			}
			r.runLogged(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("gen-derive: watch error: %v", err)
		}
	}
}

func (r *runnerImpl) runLogged(cfg *Config) {
	if err := r.Run(cfg); err != nil {
		log.Printf("gen-derive: %v", err)
		return
	}
	log.Printf("gen-derive: wrote %s", cfg.Output)
}
