package commands

import (
	"errors"
	"testing"
	"time"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{":todo fix camera shake", TypeTodo},
		{"group Player", TypeGroup},
		{"tag BUG", TypeTag},
		{"rename Enemy AI", TypeRename},
		{"color #336699", TypeColor},
		{"note needs **review**", TypeNote},
		{"note", TypeNote},
		{"due 2026-03-01", TypeDue},
		{"due none", TypeDue},
		{"attach Assets/Prefabs/Player.prefab", TypeAttach},
		{"priority major", TypePriority},
		{"PROGRESS 2", TypeProgress},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("todo   fix camera shake ")
	if err != nil || cmd.Text.Text != "fix camera shake" {
		t.Fatalf("todo text = %+v, err %v", cmd.Text, err)
	}

	cmd, err = Parse("due 2026-03-01")
	if err != nil {
		t.Fatalf("parse due: %v", err)
	}
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	if cmd.Due.Date == nil || !cmd.Due.Date.Equal(want) {
		t.Fatalf("due date = %v, want %v", cmd.Due.Date, want)
	}

	cmd, err = Parse("due none")
	if err != nil || cmd.Due.Date != nil {
		t.Fatalf("due none = %+v, err %v", cmd.Due, err)
	}

	cmd, err = Parse("color 336699")
	if err != nil || cmd.Color.Color.Hex() != "#336699" {
		t.Fatalf("color = %+v, err %v", cmd.Color, err)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{"todo", "group  ", "color", "color nope", "due", "due tomorrow", "attach", "priority", "progress -1"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	var ce *CommandError
	if _, err := Parse("  :  "); !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if _, err := Parse("snooze overdue"); !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestLookupArgsResolve(t *testing.T) {
	names := []string{"Default", "Minor", "Medium", "Major"}
	cases := []struct {
		args   LookupArgs
		want   int
		wantOK bool
	}{
		{LookupArgs{Name: "major", Index: -1}, 3, true},
		{LookupArgs{Name: "urgent", Index: -1}, 0, false},
		{LookupArgs{Index: 1}, 1, true},
		{LookupArgs{Index: 9}, 9, false},
	}
	for _, tc := range cases {
		got, ok := tc.args.Resolve(names)
		if ok != tc.wantOK || (ok && got != tc.want) {
			t.Fatalf("resolve %+v = %d,%v want %d,%v", tc.args, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("todo write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Todo: func(a TextArgs) (Result, error) {
			called = true
			if a.Text != "write docs" {
				t.Fatalf("unexpected title: %q", a.Text)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	for _, in := range []string{"priority 1", "due none", "note x", "color #ffffff", "attach a/b.png"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", in, err)
		}
		_, err = Execute(cmd, Handlers{})
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
			t.Fatalf("%q: expected missing handler error, got %v", in, err)
		}
	}
}
