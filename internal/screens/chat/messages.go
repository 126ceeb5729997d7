package chat

import "github.com/abhisek/wisein/internal/tutor"

// sessionStartedMsg is sent when a quiz or interview has been set up.
type sessionStartedMsg struct {
	Session *tutor.Session
	Err     error
}

// answeredMsg is sent when an answer has been checked and the session
// has moved on.
type answeredMsg struct {
	Feedback tutor.Feedback
	Err      error
}
