package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Todo     func(TextArgs) (Result, error)
	Group    func(TextArgs) (Result, error)
	Tag      func(TextArgs) (Result, error)
	Rename   func(TextArgs) (Result, error)
	Note     func(TextArgs) (Result, error)
	Color    func(ColorArgs) (Result, error)
	Due      func(DueArgs) (Result, error)
	Attach   func(AttachArgs) (Result, error)
	Priority func(LookupArgs) (Result, error)
	Progress func(LookupArgs) (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	text := func(h func(TextArgs) (Result, error)) (Result, error) {
		if h == nil {
			return Result{}, missing(cmd.Type)
		}
		return h(*cmd.Text)
	}
	lookup := func(h func(LookupArgs) (Result, error)) (Result, error) {
		if h == nil {
			return Result{}, missing(cmd.Type)
		}
		return h(*cmd.Lookup)
	}

	switch cmd.Type {
	case TypeTodo:
		return text(handlers.Todo)
	case TypeGroup:
		return text(handlers.Group)
	case TypeTag:
		return text(handlers.Tag)
	case TypeRename:
		return text(handlers.Rename)
	case TypeNote:
		return text(handlers.Note)
	case TypeColor:
		if handlers.Color == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Color(*cmd.Color)
	case TypeDue:
		if handlers.Due == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Due(*cmd.Due)
	case TypeAttach:
		if handlers.Attach == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Attach(*cmd.Attach)
	case TypePriority:
		return lookup(handlers.Priority)
	case TypeProgress:
		return lookup(handlers.Progress)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
