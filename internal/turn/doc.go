// Package turn provides deferred execution for a single-threaded event loop.
//
// Work queued with Defer runs on the next turn, that is, the next time the
// loop calls Run after finishing the current event. Work queued with After
// runs on the first turn at or past its deadline. Tasks queued while Run is
// executing wait for the following turn, so a task can never starve the
// loop by re-queueing itself.
//
// The queue never runs anything on its own goroutine. A loop that blocks on
// input either polls NextDeadline or installs WithWakeup, which is called
// with the deadline of every timed task as it is queued.
package turn
