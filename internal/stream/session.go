// Package stream keeps a running numerical integral of a live time series.
package stream

import (
	"fmt"
	"sync"
)

type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

const (
	DefaultWindow      = 100
	DefaultSampleWidth = 0.1
)

// Point is one tick of the accumulator.
type Point struct {
	Time     float64 `json:"time"`
	Memory   float64 `json:"memory"`
	CPU      float64 `json:"cpu"`
	Integral float64 `json:"integral"`
}

// Session integrates memory + CPU one tick at a time. It is safe for
// concurrent use.
type Session struct {
	mu       sync.Mutex
	src      Source
	window   int
	width    float64
	state    State
	ticks    int
	time     float64
	integral float64
	points   []Point
}

type Option func(*Session)

// WithWindow sets how many points are retained.
func WithWindow(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.window = n
		}
	}
}

// WithSampleWidth sets the width each sample contributes to the integral.
func WithSampleWidth(dt float64) Option {
	return func(s *Session) {
		if dt > 0 {
			s.width = dt
		}
	}
}

func NewSession(src Source, opts ...Option) *Session {
	s := &Session{src: src, window: DefaultWindow, width: DefaultSampleWidth}
	for _, opt := range opts {
		opt(s)
	}
	s.points = make([]Point, 0, s.window)
	return s
}

func (s *Session) Start() {
	s.mu.Lock()
	s.state = Running
	s.mu.Unlock()
}

// Pause stops accumulating but keeps the collected data.
func (s *Session) Pause() {
	s.mu.Lock()
	s.state = Stopped
	s.mu.Unlock()
}

// Toggle flips between Running and Stopped and returns the new state.
func (s *Session) Toggle() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Running {
		s.state = Stopped
	} else {
		s.state = Running
	}
	return s.state
}

// Reset stops the session and discards all data.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Stopped
	s.ticks = 0
	s.time = 0
	s.integral = 0
	s.points = s.points[:0]
}

// Tick advances time by one unit and accumulates a new sample. It reports
// false and does nothing while the session is stopped.
func (s *Session) Tick() (Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running {
		return Point{}, false
	}

	s.ticks++
	s.time++
	mem, cpu := s.src.Sample(s.time)
	s.integral += (mem + cpu) * s.width

	p := Point{Time: s.time, Memory: mem, CPU: cpu, Integral: s.integral}
	if len(s.points) == s.window {
		copy(s.points, s.points[1:])
		s.points = s.points[:len(s.points)-1]
	}
	s.points = append(s.points, p)
	return p, true
}

// Points returns a copy of the retained window, oldest first.
func (s *Session) Points() []Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

func (s *Session) Integral() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.integral
}

func (s *Session) Ticks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

func (s *Session) Time() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.time
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Window is the maximum number of retained points.
func (s *Session) Window() int { return s.window }
