package main

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/flipdisc/source"
)

// reloadDelay coalesces the burst of events editors emit for one save.
const reloadDelay = 100 * time.Millisecond

// watch redraws src whenever the file changes, until ctx is done. The
// directory is watched so files replaced by rename are picked up.
func (d *demo) watch(ctx context.Context, src string) error {
	if source.IsURL(src) {
		return errors.New("-watch needs a file, not a URL")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	path := filepath.Clean(src)
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return err
	}

	go func() {
		defer func() { _ = w.Close() }()
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDelay, func() {
					if err := d.image(ctx, src); err != nil {
						log.Printf("Reload of %s failed: %v", src, err)
					}
				})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("Watch error: %v", err)
			}
		}
	}()
	return nil
}
