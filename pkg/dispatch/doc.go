// Package dispatch runs the user callback when a form is submitted.
//
// A Dispatcher is either idle or running a callback. Trigger validates the
// form, writes a timestamped record of the resolved arguments to the log and
// invokes the callback with a Run handle. Validation errors, callback errors
// and panics are written to the log; none of them escape Trigger.
//
// Work that outlives a callback, such as streaming lines into the log, is
// scheduled on a Scheduler as a cancellable Job.
package dispatch
