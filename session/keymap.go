package session

import "strings"

// Command is a keyboard shortcut resolved to a board operation.
type Command int

const (
	CommandNone Command = iota
	CommandUndo
	CommandRedo
)

// ResolveKey maps a key press to a command. mod is the platform modifier
// (ctrl or cmd). mod+z undoes, mod+shift+z and mod+y redo; everything else
// is ignored.
func ResolveKey(mod, shift bool, key string) Command {
	if !mod {
		return CommandNone
	}
	switch strings.ToLower(key) {
	case "z":
		if shift {
			return CommandRedo
		}
		return CommandUndo
	case "y":
		return CommandRedo
	}
	return CommandNone
}
