package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Login(ctx context.Context, args []string) error
	Me(ctx context.Context, args []string) error
	Session(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error

	Company(ctx context.Context, args []string) error
	Orders(ctx context.Context, args []string) error
	Items(ctx context.Context, args []string) error
	Receive(ctx context.Context, args []string) error
	Scan(ctx context.Context, args []string) error

	UploadDocument(ctx context.Context, args []string) error
	UploadTemplate(ctx context.Context, args []string) error
	Jobs(ctx context.Context, args []string) error
	Dismiss(ctx context.Context, args []string) error
	ClearJobs(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error

	Documents(ctx context.Context, args []string) error
	DeleteDocument(ctx context.Context, args []string) error
	Templates(ctx context.Context, args []string) error
	DeleteTemplate(ctx context.Context, args []string) error
	SendTemplate(ctx context.Context, args []string) error

	Export(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, session, export, exit"
	helpLoggedIn  = "Available commands: me, session, company, orders, items, receive, scan, " +
		"upload-doc, upload-template, jobs, dismiss, clear, history, " +
		"docs, doc-delete, templates, template-delete, template-send, export, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the Birka CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches the remaining tokens to methods on 'a'. The prompt
// is printed only when interactive is set, so piped input stays quiet. The
// loop exits on scanner EOF or when the user types "exit" or "quit".
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, interactive bool) {
	for {
		if interactive {
			printlnFn(fmt.Sprintf("birka %s> ", statusFn()))
		}
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login":
			err = a.Login(ctx, args)
		case "me":
			err = a.Me(ctx, args)
		case "session":
			err = a.Session(ctx, args)
		case "logout":
			err = a.Logout(ctx, args)

		case "company":
			err = a.Company(ctx, args)
		case "orders":
			err = a.Orders(ctx, args)
		case "items":
			err = a.Items(ctx, args)
		case "receive":
			err = a.Receive(ctx, args)
		case "scan":
			err = a.Scan(ctx, args)

		case "upload-doc":
			err = a.UploadDocument(ctx, args)
		case "upload-template":
			err = a.UploadTemplate(ctx, args)
		case "jobs":
			err = a.Jobs(ctx, args)
		case "dismiss":
			err = a.Dismiss(ctx, args)
		case "clear":
			err = a.ClearJobs(ctx, args)
		case "history":
			err = a.History(ctx, args)

		case "docs":
			err = a.Documents(ctx, args)
		case "doc-delete":
			err = a.DeleteDocument(ctx, args)
		case "templates":
			err = a.Templates(ctx, args)
		case "template-delete":
			err = a.DeleteTemplate(ctx, args)
		case "template-send":
			err = a.SendTemplate(ctx, args)

		case "export":
			err = a.Export(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			if errors.Is(err, errUsage) {
				printlnFn(err.Error())
			} else {
				printlnFn("Error:", err.Error())
			}
		}
	}
}
