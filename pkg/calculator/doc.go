// Package calculator implements the accumulator state machine behind a
// two-operand pocket calculator. A Calculator holds the operand being typed,
// the pending operand and operation, and a reset flag that makes the next
// digit start a fresh operand after an operator or a result.
//
// Operations are chained left to right: choosing an operator while another
// one is pending and a new operand has been typed folds the pending operation
// first, so 2 + 3 + 4 = evaluates as (2+3)+4. Results are rounded to eight
// decimal places to hide binary floating-point noise.
//
// Division by zero does not produce a Go error. It moves the calculator into
// an error state whose current operand renders as "Error"; the next digit
// discards it and the next operator clears everything. Every other anomalous
// input is silently ignored so the display is always renderable.
//
// A Calculator is not safe for concurrent use. Callers that share one between
// goroutines must serialize access themselves (see the engine package).
package calculator
