package review

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch re-reviews a day whenever one of its sources changes, until ctx is
// cancelled. Every completed review is passed to onReport, which may be nil.
// New dayNN directories created while watching are picked up as well.
func (a *Agent) Watch(ctx context.Context, onReport func(Report, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("review: start watcher: %w", err)
	}
	defer watcher.Close()

	root := a.opts.SolutionsDir
	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("review: watch %s: %w", root, err)
	}
	targets, err := Discover(root)
	if err != nil {
		return err
	}
	for _, t := range targets {
		if err := watcher.Add(t.Dir); err != nil {
			a.log.Printf("review: watch %s: %v", t.Dir, err)
		}
	}
	a.log.Printf("review: watching %s (%d days)", root, len(targets))

	debounce := newDebouncer(a.opts.Debounce)
	defer debounce.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			a.handleEvent(watcher, root, event, debounce.schedule)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Printf("review: watcher error: %v", err)
		case day := <-debounce.due:
			debounce.fired(day)
			rep, err := a.ReviewDay(day, false)
			if err != nil {
				a.log.Printf("review: day %d: %v", day, err)
			}
			if onReport != nil {
				onReport(rep, err)
			}
		}
	}
}

func (a *Agent) handleEvent(watcher *fsnotify.Watcher, root string, event fsnotify.Event, schedule func(int)) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	parent := filepath.Dir(event.Name)
	if filepath.Clean(parent) == filepath.Clean(root) {
		// A new dayNN directory: start watching it.
		if _, ok := dayFromDir(filepath.Base(event.Name)); ok && event.Op&fsnotify.Create != 0 {
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := watcher.Add(event.Name); err != nil {
					a.log.Printf("review: watch %s: %v", event.Name, err)
				}
			}
		}
		return
	}
	if !isSourceFile(filepath.Base(event.Name)) {
		return
	}
	day, ok := dayFromDir(filepath.Base(parent))
	if !ok {
		return
	}
	schedule(day)
}

// debouncer delays a review until a day's sources stop changing. Its timers
// are owned by the Watch loop; only the timer callbacks run elsewhere.
type debouncer struct {
	delay    time.Duration
	due      chan int
	done     chan struct{}
	timers   map[int]*time.Timer
	inflight sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		due:    make(chan int),
		done:   make(chan struct{}),
		timers: map[int]*time.Timer{},
	}
}

// schedule (re)starts the countdown for day.
func (d *debouncer) schedule(day int) {
	if t, ok := d.timers[day]; ok && t.Stop() {
		d.inflight.Done()
	}
	d.inflight.Add(1)
	d.timers[day] = time.AfterFunc(d.delay, func() {
		defer d.inflight.Done()
		select {
		case d.due <- day:
		case <-d.done:
		}
	})
}

// fired forgets the timer for a day that was delivered on due.
func (d *debouncer) fired(day int) {
	delete(d.timers, day)
}

// stop cancels pending timers and waits until no callback is left blocked
// on due.
func (d *debouncer) stop() {
	close(d.done)
	for day, t := range d.timers {
		if t.Stop() {
			d.inflight.Done()
		}
		delete(d.timers, day)
	}
	d.inflight.Wait()
}
