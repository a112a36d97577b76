// Package lifecycle tracks resources that must be released together.
//
// A Tracker collects disposables and signal connections in the order they
// are added and releases each of them exactly once, newest first, when
// Clean is called. Every input handle owns one Tracker; destroying the
// handle cleans it.
//
//	t := lifecycle.New()
//	t.Add(nativeObject)
//	t.Connect(signal.Connect(onPressed))
//	...
//	if err := t.Clean(); err != nil {
//	    // one or more disposers panicked; the rest still ran
//	}
package lifecycle
