package ecs

// Stage is one named step of the tick.
type Stage struct {
	Name string
	Run  func(w *World)
}

// Scheduler runs its stages in a fixed order.
type Scheduler struct {
	stages []Stage
}

func NewScheduler(stages ...Stage) *Scheduler {
	s := &Scheduler{}
	for _, st := range stages {
		s.Add(st.Name, st.Run)
	}
	return s
}

// Add appends a stage. Stages without a function are dropped.
func (s *Scheduler) Add(name string, run func(w *World)) {
	if run == nil {
		return
	}
	s.stages = append(s.stages, Stage{Name: name, Run: run})
}

// Update runs every stage once, in the order they were added.
func (s *Scheduler) Update(w *World) {
	if s == nil {
		return
	}
	for _, st := range s.stages {
		st.Run(w)
	}
}

// Names lists the stages in run order.
func (s *Scheduler) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.stages))
	for i, st := range s.stages {
		names[i] = st.Name
	}
	return names
}
