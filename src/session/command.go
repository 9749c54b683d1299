package session

//Command is a user action a frontend can trigger from the keyboard
type Command int

const (
	CmdNone Command = iota
	CmdStart
	CmdSave
	CmdPause
	CmdQuit
	CmdStep
	CmdClear
	CmdRandom
)

//KeyBinding maps a key to a command
type KeyBinding struct {
	Key   rune
	Name  string
	Descr string
	Cmd   Command
}

var KeyBindings = []KeyBinding{
	{'s', "S", "Start", CmdStart},
	{'w', "W", "Save", CmdSave},
	{'p', "P", "Pause/Resume", CmdPause},
	{'q', "Q", "Quit", CmdQuit},
	{'n', "N", "Next step", CmdStep},
	{'c', "C", "Clear", CmdClear},
	{'r', "R", "Random", CmdRandom},
}

//CommandForKey returns the command bound to the key, CmdNone if there is no binding
func CommandForKey(key rune) Command {
	for _, kb := range KeyBindings {
		if kb.Key == key {
			return kb.Cmd
		}
	}
	return CmdNone
}

//CanSave reports whether the save prompt may be opened in the current phase
func (s *Session) CanSave() bool {
	return s.Editable()
}

//Exec runs the command
//CmdSave needs a file name and is left to the frontend, Exec returns false for it
func (s *Session) Exec(cmd Command) bool {
	switch cmd {
	case CmdStart:
		s.Start()
	case CmdPause:
		s.TogglePause()
	case CmdQuit:
		s.Quit()
	case CmdStep:
		s.Step()
	case CmdClear:
		s.Clear()
	case CmdRandom:
		s.Randomize()
	default:
		return false
	}
	return true
}
