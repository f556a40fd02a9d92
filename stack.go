// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstream

// Frame is the kind of a parse frame: the structure the parser is inside.
type Frame byte

// Constants defining the valid Frame values.
const (
	RootFrame   Frame = iota // top level, outside any array or object
	ArrayFrame               // inside [ ... ]
	ObjectFrame              // inside { ... }
)

var frameStr = [...]string{
	RootFrame:   "root",
	ArrayFrame:  "array",
	ObjectFrame: "object",
}

func (f Frame) String() string {
	if int(f) >= len(frameStr) {
		return "invalid frame"
	}
	return frameStr[f]
}

// A frame records one level of nesting. In an object, an even count means a
// member name (or the end) comes next, and an odd count means the value of
// the current member does.
type frame struct {
	kind  Frame
	count int
}

const (
	stackInline    = 8  // frames held without a separate allocation
	stackIncrement = 32 // frames added each time the stack grows
)

// A stack is the parser's explicit nesting record. The root frame sits at
// depth 0 and is never popped; the depth of the stack never exceeds max.
type stack struct {
	frames []frame
	inline [stackInline]frame
	max    int
}

func (s *stack) init(max int) {
	s.max = max
	s.frames = append(s.inline[:0], frame{kind: RootFrame})
}

// depth reports the current nesting depth (0 at the root).
func (s *stack) depth() int { return len(s.frames) - 1 }

// top returns the innermost frame.
func (s *stack) top() *frame { return &s.frames[len(s.frames)-1] }

// push begins a new array or object frame. It reports false without
// modifying the stack if the maximum depth would be exceeded.
func (s *stack) push(kind Frame) bool {
	if s.depth() >= s.max {
		return false
	}
	if len(s.frames) == cap(s.frames) {
		grown := make([]frame, len(s.frames), min(cap(s.frames)+stackIncrement, s.max+1))
		copy(grown, s.frames)
		s.frames = grown
	}
	s.frames = append(s.frames, frame{kind: kind})
	return true
}

// pop ends the innermost frame. It panics if only the root remains.
func (s *stack) pop() {
	if len(s.frames) <= 1 {
		panic("jstream: pop of root frame")
	}
	s.frames = s.frames[:len(s.frames)-1]
}
