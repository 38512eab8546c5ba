// Package services contains the application services of the Birka client.
// Each service is an interface with an unexported implementation built on
// client.Client; the REPL and tests depend only on the interfaces.
package services
