package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) Login(_ context.Context, a []string) error {
	f.loggedIn = true
	return f.rec("login", a)
}
func (f *fakeExec) Me(_ context.Context, a []string) error      { return f.rec("me", a) }
func (f *fakeExec) Session(_ context.Context, a []string) error { return f.rec("session", a) }
func (f *fakeExec) Logout(_ context.Context, a []string) error {
	f.loggedIn = false
	return f.rec("logout", a)
}
func (f *fakeExec) Company(_ context.Context, a []string) error { return f.rec("company", a) }
func (f *fakeExec) Orders(_ context.Context, a []string) error  { return f.rec("orders", a) }
func (f *fakeExec) Items(_ context.Context, a []string) error   { return f.rec("items", a) }
func (f *fakeExec) Receive(_ context.Context, a []string) error { return f.rec("receive", a) }
func (f *fakeExec) Scan(_ context.Context, a []string) error    { return f.rec("scan", a) }
func (f *fakeExec) UploadDocument(_ context.Context, a []string) error {
	return f.rec("upload-doc", a)
}
func (f *fakeExec) UploadTemplate(_ context.Context, a []string) error {
	return f.rec("upload-template", a)
}
func (f *fakeExec) Jobs(_ context.Context, a []string) error      { return f.rec("jobs", a) }
func (f *fakeExec) Dismiss(_ context.Context, a []string) error   { return f.rec("dismiss", a) }
func (f *fakeExec) ClearJobs(_ context.Context, a []string) error { return f.rec("clear", a) }
func (f *fakeExec) History(_ context.Context, a []string) error   { return f.rec("history", a) }
func (f *fakeExec) Documents(_ context.Context, a []string) error { return f.rec("docs", a) }
func (f *fakeExec) DeleteDocument(_ context.Context, a []string) error {
	return f.rec("doc-delete", a)
}
func (f *fakeExec) Templates(_ context.Context, a []string) error { return f.rec("templates", a) }
func (f *fakeExec) DeleteTemplate(_ context.Context, a []string) error {
	return f.rec("template-delete", a)
}
func (f *fakeExec) SendTemplate(_ context.Context, a []string) error {
	return f.rec("template-send", a)
}
func (f *fakeExec) Export(_ context.Context, a []string) error { return f.rec("export", a) }

// capturePrint swaps printlnFn for the duration of the test and returns
// the printed lines.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommandsWithArgs(t *testing.T) {
	capturePrint(t)

	input := strings.Join([]string{
		"login",
		"company 3",
		"orders 2",
		"",
		"items 5",
		"receive 5",
		"scan",
		"upload-doc /tmp/a.pdf",
		"upload-template /tmp/t.docx",
		"jobs document",
		"dismiss upload-1",
		"clear",
		"history",
		"docs",
		"doc-delete faq v2.pdf",
		"templates",
		"template-delete 4",
		"template-send 4",
		"export services",
		"me",
		"session",
		"logout",
		"exit",
		"me",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader(input)), false)

	require.Equal(t, []string{
		"login", "company", "orders", "items", "receive", "scan",
		"upload-doc", "upload-template", "jobs", "dismiss", "clear", "history",
		"docs", "doc-delete", "templates", "template-delete", "template-send",
		"export", "me", "session", "logout",
	}, exec.calls, "nothing runs after exit")
	require.Equal(t, []string{"3"}, exec.args[1])
	require.Equal(t, []string{"faq", "v2.pdf"}, exec.args[13])
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	lines := capturePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, scannerOf("help", "login", "help", "quit"), false)

	require.Equal(t, []string{helpLoggedOut, helpLoggedIn, "Bye!"}, *lines)
}

func TestRunREPL_PromptOnlyWhenInteractive(t *testing.T) {
	lines := capturePrint(t)
	runREPL(context.Background(), &fakeExec{}, func() string { return "(x)" }, scannerOf("foobar"), true)
	require.Equal(t, []string{"birka (x)> ", "Unknown command: foobar", "birka (x)> "}, *lines)
}

func TestRunREPL_PrintsErrors(t *testing.T) {
	lines := capturePrint(t)

	exec := &fakeExec{err: errors.New("API error: 500")}
	runREPL(context.Background(), exec, func() string { return "" }, scannerOf("me"), false)
	require.Equal(t, []string{"Error: API error: 500"}, *lines)

	*lines = nil
	exec.err = usage("items <order-id>")
	runREPL(context.Background(), exec, func() string { return "" }, scannerOf("items"), false)
	require.Equal(t, []string{"usage: items <order-id>"}, *lines)
}
