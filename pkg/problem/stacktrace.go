package problem

import "runtime"

// Frame is a single captured stack frame.
type Frame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// StackTracer is implemented by errors that carry their origin stack. Errors
// created with NewError implement it; foreign errors may too.
type StackTracer interface {
	StackTrace() []Frame
}

const maxStackDepth = 64

// CaptureStack records the calling goroutine's stack, skipping the given
// number of frames on top of CaptureStack itself.
func CaptureStack(skip int) []Frame {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	out := make([]Frame, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{Function: fr.Function, File: fr.File, Line: fr.Line})
		if !more {
			break
		}
	}
	return out
}

// StackOf returns the stack carried by err, or nil when err does not
// implement StackTracer. It does not walk the cause chain: each link reports
// its own frames.
func StackOf(err error) []Frame {
	if st, ok := err.(StackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// TruncateAgainstCause removes from frames the trailing segment it shares
// with causeFrames, so that printing a cause chain does not repeat the
// common call-stack tail. The result is always a prefix of frames.
func TruncateAgainstCause(frames, causeFrames []Frame) []Frame {
	common := lengthOfTrailingCommon(frames, causeFrames)
	return frames[:len(frames)-common]
}

// lengthOfTrailingCommon returns the length of the longest common trailing
// sublist of a and b.
func lengthOfTrailingCommon(a, b []Frame) int {
	i, j := len(a)-1, len(b)-1
	n := 0
	for i >= 0 && j >= 0 && a[i] == b[j] {
		n++
		i--
		j--
	}
	return n
}
