package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
}

func (f *fakeExec) record(name string, args ...string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args...)
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.record("login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Signup(ctx context.Context) error { f.record("signup"); return nil }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Whoami(ctx context.Context) error { f.record("whoami"); return nil }
func (f *fakeExec) List(ctx context.Context) error   { f.record("list"); return nil }
func (f *fakeExec) Add(ctx context.Context) error    { f.record("add"); return nil }
func (f *fakeExec) Edit(ctx context.Context, id string) error {
	f.record("edit", id)
	return nil
}
func (f *fakeExec) Show(ctx context.Context, id string) error {
	f.record("show", id)
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, id string) error {
	f.record("delete", id)
	return nil
}
func (f *fakeExec) Select(ctx context.Context, id string) error {
	f.record("select", id)
	return nil
}
func (f *fakeExec) SelectAll(ctx context.Context) error      { f.record("selectall"); return nil }
func (f *fakeExec) ClearSelection(ctx context.Context) error { f.record("clearsel"); return nil }
func (f *fakeExec) BulkDelete(ctx context.Context) error     { f.record("bulkdelete"); return nil }
func (f *fakeExec) Undo(ctx context.Context) error           { f.record("undo"); return nil }
func (f *fakeExec) Status(ctx context.Context, id, status string) error {
	f.record("status", id, status)
	return nil
}
func (f *fakeExec) Search(ctx context.Context, text string) error {
	f.record("search", text)
	return nil
}
func (f *fakeExec) Filter(ctx context.Context, filter string) error {
	f.record("filter", filter)
	return nil
}
func (f *fakeExec) Sort(ctx context.Context, key string) error {
	f.record("sort", key)
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"add",
		"list",
		"show 123",
		"status 123 published",
		"search needle here",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "add", "list", "show", "status", "search"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}

	wantArgs := []string{"123", "123", "published", "needle here"}
	if len(exec.args) != len(wantArgs) {
		t.Fatalf("args mismatch: got %v, want %v", exec.args, wantArgs)
	}
	for i, a := range wantArgs {
		if exec.args[i] != a {
			t.Fatalf("arg %d: got %q, want %q", i, exec.args[i], a)
		}
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	// Every command below is missing its required argument, so nothing
	// should be dispatched.
	input := strings.NewReader("edit\nshow\ndelete\nselect\nstatus 1\nfilter\nsort\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_CanceledContext(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(strings.NewReader("list\nlist\n"))

	runREPL(ctx, exec, func() string { return "" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls after cancel: %v", exec.calls)
	}
}
