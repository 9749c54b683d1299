package view

import "lifeterm/src/session"

//Frontend is the terminal side of a session: it reports the space available for the grid,
//drives the session from one goroutine until the user quits, and releases the terminal
type Frontend interface {
	Size() (width int, height int)
	Start(s *session.Session) error
	Close()
}
