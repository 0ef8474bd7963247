package model

// Worker runs tree operations one at a time on a background
// goroutine, so the presentation layer never blocks on a network call
// and never races two mutations against the same task. Completion is
// delivered through the done callback, which runs on the worker
// goroutine.
type Worker struct {
	jobs    chan job
	stopped chan struct{}
}

type job struct {
	run  func() error
	done func(error)
}

// NewWorker starts a worker.
func NewWorker() *Worker {
	w := &Worker{
		jobs:    make(chan job, 16),
		stopped: make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *Worker) loop() {
	defer close(w.stopped)
	for j := range w.jobs {
		err := j.run()
		if j.done != nil {
			j.done(err)
		}
	}
}

// Do queues fn and invokes done with its result once it finishes.
// done may be nil for fire-and-forget operations.
func (w *Worker) Do(fn func() error, done func(error)) {
	w.jobs <- job{run: fn, done: done}
}

// Close drains queued jobs and stops the worker.
func (w *Worker) Close() {
	close(w.jobs)
	<-w.stopped
}
