package annotate

// ParseState is the annotation region the debugger output is currently in.
type ParseState int

const (
	Idle ParseState = iota
	Record
	BreakpointHeaders
	BreakpointTableBegin
	Field
	BreakpointTableEnd
	InfoSources
	InfoList
	InfoSource
)

var stateNames = [...]string{
	Idle:                 "idle",
	Record:               "record",
	BreakpointHeaders:    "breakpoint-headers",
	BreakpointTableBegin: "breakpoint-table-begin",
	Field:                "field",
	BreakpointTableEnd:   "breakpoint-table-end",
	InfoSources:          "info-sources",
	InfoList:             "info-list",
	InfoSource:           "info-source",
}

func (s ParseState) String() string {
	if s < 0 || int(s) >= len(stateNames) { return "unknown" }
	return stateNames[s]
}

// Annotation field numbers inside a breakpoint table row.
const (
	FieldEnabled     = 3
	FieldDescription = 5
)
