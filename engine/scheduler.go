package engine

import (
	"time"
)

// JobID identifies a scheduled job; zero is never issued
type JobID uint64

// FrameFunc receives the wall time elapsed since the previous Advance
type FrameFunc func(dt time.Duration)

type jobKind uint8

const (
	jobFrame jobKind = iota
	jobInterval
	jobOnce
)

type job struct {
	id        JobID
	kind      jobKind
	interval  time.Duration
	due       time.Time
	frame     FrameFunc
	fn        func()
	cancelled bool
}

// Scheduler is the single-threaded job table driven by the app loop
// Jobs added while Advance runs first fire on the next Advance; cancelling
// from inside a job takes effect immediately
type Scheduler struct {
	jobs    []*job
	nextID  JobID
	now     time.Time
	running bool
}

// NewScheduler starts the scheduler clock at start
func NewScheduler(start time.Time) *Scheduler {
	return &Scheduler{now: start}
}

// Now returns the time of the last Advance
func (s *Scheduler) Now() time.Time {
	return s.now
}

func (s *Scheduler) add(j *job) JobID {
	s.nextID++
	j.id = s.nextID
	s.jobs = append(s.jobs, j)
	return j.id
}

// EveryFrame runs fn on every Advance
func (s *Scheduler) EveryFrame(fn FrameFunc) JobID {
	return s.add(&job{kind: jobFrame, frame: fn})
}

// Every runs fn each time interval elapses
// Missed periods after a stall collapse into one call
func (s *Scheduler) Every(interval time.Duration, fn func()) JobID {
	if interval <= 0 {
		return 0
	}
	return s.add(&job{kind: jobInterval, interval: interval, due: s.now.Add(interval), fn: fn})
}

// After runs fn once when delay has elapsed
func (s *Scheduler) After(delay time.Duration, fn func()) JobID {
	return s.add(&job{kind: jobOnce, due: s.now.Add(max(delay, 0)), fn: fn})
}

// Cancel stops a job; unknown or finished ids are ignored
func (s *Scheduler) Cancel(id JobID) bool {
	if id == 0 {
		return false
	}
	for _, j := range s.jobs {
		if j.id == id && !j.cancelled {
			j.cancelled = true
			return true
		}
	}
	return false
}

// Active reports whether id is scheduled and not cancelled
func (s *Scheduler) Active(id JobID) bool {
	for _, j := range s.jobs {
		if j.id == id {
			return !j.cancelled
		}
	}
	return false
}

// Len returns the number of live jobs
func (s *Scheduler) Len() int {
	n := 0
	for _, j := range s.jobs {
		if !j.cancelled {
			n++
		}
	}
	return n
}

// Advance moves the clock to now and runs every due job in registration order
func (s *Scheduler) Advance(now time.Time) {
	if s.running {
		return
	}
	dt := now.Sub(s.now)
	if dt < 0 {
		dt = 0
		now = s.now
	}
	s.now = now

	s.running = true
	snapshot := s.jobs[:len(s.jobs):len(s.jobs)]
	for _, j := range snapshot {
		if j.cancelled {
			continue
		}
		switch j.kind {
		case jobFrame:
			j.frame(dt)
		case jobInterval:
			if !now.Before(j.due) {
				j.due = now.Add(j.interval)
				j.fn()
			}
		case jobOnce:
			if !now.Before(j.due) {
				j.cancelled = true
				j.fn()
			}
		}
	}
	s.running = false
	s.compact()
}

func (s *Scheduler) compact() {
	live := s.jobs[:0]
	for _, j := range s.jobs {
		if !j.cancelled {
			live = append(live, j)
		}
	}
	clear(s.jobs[len(live):])
	s.jobs = live
}
