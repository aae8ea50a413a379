// Package engine implements the per-session quiz command interpreter.
//
// The engine is an explicit state machine: each call to Feed consumes one
// input line and either dispatches it as a command or, when a multi-step
// prompt is pending, consumes it as the reply to that prompt. All output,
// including the next prompt, is written through the session's Printer
// before Feed returns, so a session host only has to read lines and feed
// them in arrival order.
//
// Interpreter states:
//
//	Idle -> AddQuestion -> AddAnswer -> Idle        (add)
//	Idle -> EditQuestion -> EditAnswer -> Idle      (edit <id>)
//	Idle -> TestAnswer -> Idle                      (test <id>)
//	Idle -> PlayAnswer -> PlayAnswer... -> Idle     (play)
//
// Every recoverable error returns the engine to Idle. While a prompt is
// pending, the next line is always consumed by the prompt and never
// re-dispatched as a command.
//
// Thread-safety model:
//   - one Engine per session, driven from exactly one goroutine
//   - the Store may be shared across sessions; it serializes its own calls
package engine
