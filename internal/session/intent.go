package session

import "github.com/mithrel/foliate/pkg/api"

// Intent is a typed command emitted by a presenter. The controller's
// Apply method is the single entry point for all of them, which keeps
// UI wiring out of session logic.
type Intent interface{ isIntent() }

type CreateDocument struct{ Name string }

type SwitchTo struct{ ID string }

type DeleteDocument struct{ ID string }

type RenameDocument struct {
	ID   string
	Name string
}

// EditContent carries the full buffer after a keystroke; the controller
// debounces the durable write.
type EditContent struct{ Text string }

// ChangeSettings writes through immediately; settings change rarely
// compared to typing.
type ChangeSettings struct{ Settings api.Settings }

// Shutdown drains any pending save before the session ends.
type Shutdown struct{}

func (CreateDocument) isIntent() {}
func (SwitchTo) isIntent()       {}
func (DeleteDocument) isIntent() {}
func (RenameDocument) isIntent() {}
func (EditContent) isIntent()    {}
func (ChangeSettings) isIntent() {}
func (Shutdown) isIntent()       {}
