package command

import "errors"

// ErrNoSuchView is returned when a Context names a view the editor no
// longer has open — spec.md §7's NotFound kind.
var ErrNoSuchView = errors.New("no such view")

// ErrNoSuchBuffer is returned when a view's focused buffer isn't (or is
// no longer) registered with the editor — spec.md §7's NotFound kind.
var ErrNoSuchBuffer = errors.New("no such buffer")

// ErrWrongArity reports a command invoked with fewer arguments than its
// schema's Required slots demand — spec.md §7's InvalidArgument kind.
// Nothing in this module returns it: handlers are run without checking
// the supplied arguments against their schema.
var ErrWrongArity = errors.New("wrong number of arguments")
