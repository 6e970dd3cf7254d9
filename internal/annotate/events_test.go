package annotate

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventJSON(t *testing.T) {
	data, err := json.Marshal(Event{Type: BreakpointEvent, Data: "main", Line: "12", File: "test.c"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"breakpoint","data":"main","line":"12","file":"test.c","enabled":false}`, string(data))

	data, err = json.Marshal(Event{Type: SourcesEnd})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"sources-end"}`, string(data))

	var event Event
	require.NoError(t, json.Unmarshal([]byte(`{"type":"breakpoint","data":"f","line":"3","file":"a.c","enabled":true}`), &event))
	assert.Equal(t, Event{Type: BreakpointEvent, Data: "f", Line: "3", File: "a.c", Enabled: true}, event)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"no-such-event"}`), &event))
}

func TestEventListDrain(t *testing.T) {
	queue := &EventList{}
	queue.Append(Event{Type: SourcesStart})
	queue.Append(Event{Type: SourcesEnd})

	assert.Equal(t, 2, queue.Len())
	assert.Equal(t, []Event{{Type: SourcesStart}, {Type: SourcesEnd}}, queue.Drain())
	assert.Equal(t, 0, queue.Len())
	assert.Empty(t, queue.Drain())
}

func TestTextAccumulator(t *testing.T) {
	var a TextAccumulator
	for _, c := range []byte("line\r\n") {
		a.Append(c)
	}
	assert.Equal(t, 6, a.Len())
	assert.Equal(t, byte('\n'), a.Last())

	a.Drop(2)
	assert.Equal(t, "line", a.String())

	a.Drop(10)
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, byte(0), a.Last())

	a.Append('x')
	a.Clear()
	assert.Equal(t, "", a.String())
}
