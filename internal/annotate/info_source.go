package annotate

import "strings"

// Reply line of "info source" that carries the absolute path.
const locatedPrefix = "Located in "

// sourceRequest remembers the file of the last "list" command.
type sourceRequest struct {
	file      string
	requested bool
}

// infoSource interprets the reply to "info source".
type infoSource struct {
	line  TextAccumulator
	ready bool
}

func (s *infoSource) reset() {
	s.line.Clear()
	s.ready = false
}

func (s *infoSource) feed(c byte) {
	if s.ready { return }

	switch c {
	case '\r':
		return
	case '\n':
		if strings.HasPrefix(s.line.String(), locatedPrefix) {
			s.ready = true
		} else {
			s.line.Clear()
		}
	default:
		s.line.Append(c)
	}
}

func (s *infoSource) finish(req sourceRequest, queue EventQueue) {
	path, found := strings.CutPrefix(s.line.String(), locatedPrefix)
	if !s.ready || !found {
		queue.Append(Event{Type: AbsoluteSourceDenied, Data: req.file})
		return
	}

	if req.requested {
		queue.Append(Event{Type: AbsoluteSourceAccepted, Data: path})
		return
	}
	queue.Append(Event{Type: SourceFileUpdate, Data: path})
	queue.Append(Event{Type: LineNumberUpdate, Data: "1"})
}
