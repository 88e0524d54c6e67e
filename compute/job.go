package compute

import mandel "github.com/marben/mandel_explorer"

// Job is a computation running on its own supervisory goroutine.
// There is no cancellation: a caller that loses interest just stops
// waiting and the result is dropped.
type Job struct {
	done chan struct{}
	set  ComputedSet
	err  error
}

// Start runs Set in the background.
func Start(pool *Pool, obs mandel.Observer, s Settings) *Job {
	j := &Job{done: make(chan struct{})}
	go func() {
		defer close(j.done)
		j.set, j.err = Set(pool, obs, s)
	}()
	return j
}

// Done is closed once the result is available.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the computation finishes.
func (j *Job) Wait() (ComputedSet, error) {
	<-j.done
	return j.set, j.err
}
