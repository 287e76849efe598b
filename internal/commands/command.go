package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/todotree/internal/model"
)

type Type string

const (
	TypeTodo     Type = "todo"
	TypeGroup    Type = "group"
	TypeTag      Type = "tag"
	TypeRename   Type = "rename"
	TypeColor    Type = "color"
	TypeNote     Type = "note"
	TypeDue      Type = "due"
	TypeAttach   Type = "attach"
	TypePriority Type = "priority"
	TypeProgress Type = "progress"
)

// DueLayout is the date format accepted by the due command.
const DueLayout = "2006-01-02"

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// TextArgs carries the free-text argument of todo, group, tag, rename and note.
type TextArgs struct {
	Text string
}

type ColorArgs struct {
	Color model.Color
}

// DueArgs holds the new end date. A nil Date clears it.
type DueArgs struct {
	Date *time.Time
}

type AttachArgs struct {
	Asset model.AssetRef
}

// LookupArgs selects a priority or progress entry by index, or by name when
// Index is negative.
type LookupArgs struct {
	Name  string
	Index int
}

type Command struct {
	Type   Type
	Raw    string
	Text   *TextArgs
	Color  *ColorArgs
	Due    *DueArgs
	Attach *AttachArgs
	Lookup *LookupArgs
}

// Names lists the command words in palette order.
func Names() []string {
	return []string{
		string(TypeTodo), string(TypeGroup), string(TypeTag), string(TypeRename), string(TypeColor),
		string(TypeNote), string(TypeDue), string(TypeAttach), string(TypePriority), string(TypeProgress),
	}
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, ":"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	head, rest, _ := strings.Cut(raw, " ")
	head = strings.ToLower(head)
	rest = strings.TrimSpace(rest)

	switch Type(head) {
	case TypeTodo, TypeGroup, TypeTag, TypeRename:
		if rest == "" {
			return Command{}, invalid("%s requires a name", head)
		}
		return Command{Type: Type(head), Raw: input, Text: &TextArgs{Text: rest}}, nil
	case TypeNote:
		return Command{Type: TypeNote, Raw: input, Text: &TextArgs{Text: rest}}, nil
	case TypeColor:
		return parseColor(input, rest)
	case TypeDue:
		return parseDue(input, rest)
	case TypeAttach:
		if rest == "" {
			return Command{}, invalid("attach requires an asset path")
		}
		return Command{Type: TypeAttach, Raw: input, Attach: &AttachArgs{Asset: model.AssetRef(rest)}}, nil
	case TypePriority, TypeProgress:
		return parseLookup(input, Type(head), rest)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseColor(raw, arg string) (Command, error) {
	if arg == "" {
		return Command{}, invalid("color requires a #rrggbb value")
	}
	c, err := model.ParseColor(arg)
	if err != nil {
		return Command{}, invalid("color %q: %v", arg, err)
	}
	return Command{Type: TypeColor, Raw: raw, Color: &ColorArgs{Color: c}}, nil
}

func parseDue(raw, arg string) (Command, error) {
	switch strings.ToLower(arg) {
	case "":
		return Command{}, invalid("due requires a date (%s) or none", DueLayout)
	case "none", "clear":
		return Command{Type: TypeDue, Raw: raw, Due: &DueArgs{}}, nil
	}
	d, err := time.ParseInLocation(DueLayout, arg, time.Local)
	if err != nil {
		return Command{}, invalid("due %q: expected %s", arg, DueLayout)
	}
	return Command{Type: TypeDue, Raw: raw, Due: &DueArgs{Date: &d}}, nil
}

func parseLookup(raw string, typ Type, arg string) (Command, error) {
	if arg == "" {
		return Command{}, invalid("%s requires a name or index", typ)
	}
	args := &LookupArgs{Name: arg, Index: -1}
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 0 {
			return Command{}, invalid("%s index must not be negative", typ)
		}
		args = &LookupArgs{Index: n}
	}
	return Command{Type: typ, Raw: raw, Lookup: args}, nil
}

// Resolve finds the lookup position selected by a, matching names case
// insensitively. It reports false when nothing matches.
func (a LookupArgs) Resolve(names []string) (int, bool) {
	if a.Index >= 0 {
		return a.Index, a.Index < len(names)
	}
	for i, n := range names {
		if strings.EqualFold(n, a.Name) {
			return i, true
		}
	}
	return 0, false
}
