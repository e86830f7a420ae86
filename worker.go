package picstash

import (
	"sync"

	"github.com/labstack/echo/v4"
)

// ThumbnailWorker drains a queue of image ids, generating a thumbnail for
// each off the request path: JPEG decode and resize are CPU-bound and must
// not run on a handler. The uploader has already received its response by
// the time a job runs, so failures are logged rather than returned.
type ThumbnailWorker struct {
	gen    *Thumbnailer
	logger echo.Logger
	jobs   chan int64
	wg     sync.WaitGroup
	once   sync.Once
}

// NewThumbnailWorker starts the drain goroutine with a queue buffer of depth.
func NewThumbnailWorker(gen *Thumbnailer, logger echo.Logger, depth int) *ThumbnailWorker {
	w := &ThumbnailWorker{
		gen:    gen,
		logger: logger,
		jobs:   make(chan int64, depth),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *ThumbnailWorker) run() {
	defer w.wg.Done()
	for id := range w.jobs {
		w.generate(id)
	}
}

func (w *ThumbnailWorker) generate(id int64) {
	if err := w.gen.Generate(id); err != nil {
		w.logger.Errorf("thumbnail %d: %v", id, err)
	}
}

// Enqueue schedules thumbnail generation for id. It never blocks the
// caller: if the queue buffer is full the job runs on its own goroutine.
func (w *ThumbnailWorker) Enqueue(id int64) {
	select {
	case w.jobs <- id:
	default:
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.generate(id)
		}()
	}
}

// Close stops accepting jobs and waits for queued work to finish. Enqueue
// must not be called after Close.
func (w *ThumbnailWorker) Close() {
	w.once.Do(func() { close(w.jobs) })
	w.wg.Wait()
}
