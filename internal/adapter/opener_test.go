package adapter

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedStart struct {
	name string
	args []string
}

func fakeOpener(command string, args []string, available map[string]bool) (*Opener, *[]recordedStart) {
	var calls []recordedStart
	o := NewOpener(command, args, NullLogger())
	o.lookPath = func(file string) (string, error) {
		if available[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}
	o.start = func(name string, args ...string) error {
		calls = append(calls, recordedStart{name: name, args: args})
		return nil
	}
	return o, &calls
}

func TestOpener_ConfiguredCommand(t *testing.T) {
	o, calls := fakeOpener("firefox", []string{"--new-tab"}, nil)

	require.NoError(t, o.Open("https://www.tvmaze.com/shows/82"))
	require.Len(t, *calls, 1)
	assert.Equal(t, "firefox", (*calls)[0].name)
	assert.Equal(t, []string{"--new-tab", "https://www.tvmaze.com/shows/82"}, (*calls)[0].args)
}

func TestOpener_SystemDefault(t *testing.T) {
	candidates, ok := candidateOpeners[runtime.GOOS]
	if !ok {
		candidates = candidateOpeners["linux"]
	}
	last := candidates[len(candidates)-1]
	o, calls := fakeOpener("", nil, map[string]bool{last.path: true})

	require.NoError(t, o.Open("https://www.tvmaze.com/shows/1"))
	require.Len(t, *calls, 1)
	assert.Equal(t, last.path, (*calls)[0].name)
	assert.Equal(t, "https://www.tvmaze.com/shows/1", (*calls)[0].args[len((*calls)[0].args)-1])
}

func TestOpener_NothingAvailable(t *testing.T) {
	o, calls := fakeOpener("", nil, nil)

	err := o.Open("https://www.tvmaze.com/shows/1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.browser")
	assert.Empty(t, *calls)
}

func TestOpener_EmptyURL(t *testing.T) {
	o, calls := fakeOpener("firefox", nil, nil)

	assert.Error(t, o.Open(""))
	assert.Empty(t, *calls)
}
