package annotate

import "strings"

const (
	sourcesHeader    = "Source files for which symbols "
	sourcesDelimiter = ", "
)

// infoSources interprets the reply to "info sources".
type infoSources struct {
	line  TextAccumulator
	ready bool
	files []string
}

func (s *infoSources) reset() {
	s.line.Clear()
	s.ready = false
	s.files = nil
}

func (s *infoSources) feed(c byte) {
	s.line.Append(c)
	if c != '\n' { return }

	s.line.Drop(1)
	if s.line.Last() == '\r' { s.line.Drop(1) }
	line := s.line.String()
	s.line.Clear()

	switch {
	case strings.HasPrefix(line, sourcesHeader):
		s.ready = true
	case !s.ready, line == "", strings.HasSuffix(line, ":"):
		// preamble, blank separators and directory group headers
	default:
		for _, name := range strings.Split(line, sourcesDelimiter) {
			if name != "" { s.files = append(s.files, name) }
		}
	}
}

// emit reports the collected files. Fewer than two files is nothing to report.
func (s *infoSources) emit(queue EventQueue) {
	files := s.files
	s.files = nil
	if len(files) < 2 { return }

	queue.Append(Event{Type: SourcesStart})
	for _, name := range files {
		queue.Append(Event{Type: SourceFile, Data: name})
	}
	queue.Append(Event{Type: SourcesEnd})
}
