// Package scanner turns a stream of decoded barcode strings into discrete
// scan events.
//
// The pieces are independent and mostly pure:
//
//   - Debouncer drops repeats of the same text inside a time window.
//   - Receiving is the state machine of the receiving screen: it selects
//     order lines by barcode and counts pieces.
//   - FreeScan validates every accepted scan against the server and keeps a
//     bounded history.
//   - Player renders feedback (tone and vibration) for each outcome.
//   - CameraErrorMessage turns raw decoder errors into user-facing advice.
//
// Time is always passed in by the caller, so the state machines can be
// driven from tests without sleeping.
package scanner
