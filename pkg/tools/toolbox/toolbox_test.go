package toolbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler(_ context.Context, input json.RawMessage) (string, error) {
	return string(input), nil
}

func newEchoTool(name string) Tool {
	return Tool{
		Name:        name,
		Description: "echo " + name,
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler:     echoHandler,
	}
}

func TestRegisterAndGet(t *testing.T) {
	tb := New()
	tb.Register(newEchoTool("calc_press"))

	got, ok := tb.Get("calc_press")
	require.True(t, ok)
	assert.Equal(t, "echo calc_press", got.Description)

	_, ok = tb.Get("missing")
	assert.False(t, ok)
}

func TestRegisterReplaces(t *testing.T) {
	tb := New()
	tb.Register(Tool{Name: "x", Description: "original", Handler: echoHandler})
	tb.Register(Tool{Name: "x", Description: "replaced", Handler: echoHandler})

	got, ok := tb.Get("x")
	require.True(t, ok)
	assert.Equal(t, "replaced", got.Description)
	assert.Len(t, tb.Tools(), 1)
}

func TestToolsSorted(t *testing.T) {
	tb := New()
	tb.Register(newEchoTool("calc_press"), newEchoTool("calc_clear"), newEchoTool("calc_display"))

	var names []string
	for _, tool := range tb.Tools() {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"calc_clear", "calc_display", "calc_press"}, names)
}

func TestMerge(t *testing.T) {
	tb1 := New()
	tb1.Register(newEchoTool("a"), newEchoTool("b"))

	tb2 := New()
	tb2.Register(newEchoTool("c"), Tool{Name: "a", Description: "replaced", Handler: echoHandler})

	tb1.Merge(tb2)

	assert.Len(t, tb1.Tools(), 3)
	got, ok := tb1.Get("a")
	require.True(t, ok)
	assert.Equal(t, "replaced", got.Description)
}

func TestCall(t *testing.T) {
	tb := New()
	tb.Register(newEchoTool("echo"))

	out, err := tb.Call(context.Background(), "echo", json.RawMessage(`{"keys":"1+1="}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"keys":"1+1="}`, out)
}

func TestCallEmptyArgs(t *testing.T) {
	tb := New()
	tb.Register(newEchoTool("echo"))

	out, err := tb.Call(context.Background(), "echo", nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", out)
}

func TestCallNotFound(t *testing.T) {
	tb := New()

	_, err := tb.Call(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool not found: missing")
}

func TestCallHandlerError(t *testing.T) {
	tb := New()
	tb.Register(Tool{
		Name: "fail",
		Handler: func(context.Context, json.RawMessage) (string, error) {
			return "", errors.New("boom")
		},
	})

	_, err := tb.Call(context.Background(), "fail", nil)
	assert.EqualError(t, err, "boom")
}
