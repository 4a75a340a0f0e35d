package core

// Scheduler drives cooperative background tasks: each registered task is
// resumed exactly once per fixed tick, on the engine's single logical
// thread, until it reports completion. Tasks must not touch render state
// from anywhere else; there is no locking by design.
type Scheduler struct {
	tasks []Task
}

// Task is one resumable step function. It is called once per tick with the
// tick's dt and returns true when the task is finished.
type Task func(dt float64) bool

func NewScheduler() *Scheduler { return &Scheduler{} }

// Spawn registers a task starting next tick.
func (s *Scheduler) Spawn(t Task) { s.tasks = append(s.tasks, t) }

// After runs fn once, after delay seconds of accumulated tick time.
func (s *Scheduler) After(delay float64, fn func()) {
	remaining := delay
	s.Spawn(func(dt float64) bool {
		remaining -= dt
		if remaining > 0 {
			return false
		}
		fn()
		return true
	})
}

// Step resumes every live task once. Finished tasks are dropped; order of
// the remaining tasks is preserved. Tasks spawned during a step first run
// on the following tick.
func (s *Scheduler) Step(dt float64) {
	cur := s.tasks
	s.tasks = nil
	live := cur[:0]
	for _, t := range cur {
		if !t(dt) {
			live = append(live, t)
		}
	}
	s.tasks = append(live, s.tasks...)
}

// Pending reports the number of unfinished tasks.
func (s *Scheduler) Pending() int { return len(s.tasks) }
