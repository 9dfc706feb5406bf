package page

// Async runs a blocking task, such as a backend request, away from the
// event callback that triggered it.
type Async func(task func())

// Goroutine runs each task in its own goroutine. GopherJS goroutines are
// cooperative, so tasks still run on the page's single thread.
func Goroutine(task func()) { go task() }

// Inline runs the task immediately.
func Inline(task func()) { task() }
