// Package form implements the submission contract shared by every
// create, edit, report and request screen.
//
// A screen declares a Schema, binds user input into Values and hands both
// to a Submitter. The Submitter validates, locks out duplicate submits,
// waits the configured latency, runs the screen's Action, then emits
// exactly one Notice and, on success, exactly one navigation.
//
//	Idle ──submit──▶ Validating ──errors──▶ Idle (errors populated)
//	                     │
//	                     └─valid─▶ Submitting ──ok──▶ Succeeded ──▶ navigate
//	                                   │
//	                                   └─action error─▶ Failed ──▶ Idle (errors populated, retry allowed)
//
// Work that outlives a single Update call runs inside a Scope so it can be
// cancelled when the owning view is torn down.
package form
