// Package errors provides coded, actionable errors for the rating widgets.
//
// Every error carries a short code (e.g. "E101") that maps to a registered
// template with a category, a one-line message and a longer explanation.
// Callers add context with the With* builders and wrap underlying causes so
// errors.Is and errors.As from the standard library keep working.
//
// # Error Categories
//
//   - runtime: tooltip lifecycle and placement failures
//   - validation: bad widget inputs (unknown star sizes)
//   - config: unreadable or out-of-range configuration
//   - protocol: malformed live-session messages
//
// # Usage
//
//	err := errors.New("E101").
//	    WithElement("tip-3").
//	    WithSuggestion("Place the tooltip right after the element it describes")
//
//	fmt.Println(err.Format())
package errors
