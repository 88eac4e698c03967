package mcpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/germanamz/abacus/pkg/tools/mcpserver"
	"github.com/germanamz/abacus/pkg/tools/toolbox"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler(_ context.Context, input json.RawMessage) (string, error) {
	return string(input), nil
}

var pressTool = toolbox.Tool{
	Name:        "calc_press",
	Description: "Press keys",
	InputSchema: json.RawMessage(`{"type":"object","properties":{"keys":{"type":"string"}}}`),
	Handler:     echoHandler,
}

// setupTestServer serves tools over streamable HTTP and returns a connected
// client.
func setupTestServer(t *testing.T, tools ...toolbox.Tool) *MCPClient {
	t.Helper()

	s := mcpserver.New("test-server", "1.0.0", nil)
	s.Register(tools...)

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	client, err := NewHTTP(context.Background(), srv.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestListTools(t *testing.T) {
	client := setupTestServer(t,
		pressTool,
		toolbox.Tool{
			Name:        "calc_display",
			Description: "Read the display",
			InputSchema: json.RawMessage(`{"type":"object"}`),
			Handler:     echoHandler,
		},
	)

	tools, err := client.ListTools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 2)

	byName := make(map[string]toolbox.Tool, len(tools))
	for _, tool := range tools {
		byName[tool.Name] = tool
	}

	press, ok := byName["calc_press"]
	require.True(t, ok)
	assert.Equal(t, "Press keys", press.Description)
	assert.NotNil(t, press.Handler)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(press.InputSchema, &schema))
	assert.Equal(t, "object", schema["type"])
}

func TestToolboxRoundTrip(t *testing.T) {
	client := setupTestServer(t, pressTool)

	tb, err := client.Toolbox(context.Background())
	require.NoError(t, err)

	out, err := tb.Call(context.Background(), "calc_press", json.RawMessage(`{"keys":"9*9="}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"keys":"9*9="}`, out)
}

func TestCallToolError(t *testing.T) {
	client := setupTestServer(t, toolbox.Tool{
		Name:        "fail",
		Description: "Always fails",
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler: func(_ context.Context, _ json.RawMessage) (string, error) {
			return "", errors.New("unknown key \"z\"")
		},
	})

	text, err := client.CallTool(context.Background(), "fail", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown key "z"`)
	assert.Empty(t, text)
}

func TestCallToolBadArguments(t *testing.T) {
	client := setupTestServer(t, pressTool)

	_, err := client.CallTool(context.Background(), "calc_press", json.RawMessage(`not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal arguments")
}

func TestCallToolMultipleContent(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "test-server",
		Version: "1.0.0",
	}, nil)

	server.AddTool(&mcp.Tool{
		Name:        "multi",
		Description: "Returns multiple content items",
		InputSchema: json.RawMessage(`{"type":"object"}`),
	}, func(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: "12 +"},
				&mcp.TextContent{Text: "3"},
			},
		}, nil
	})

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Run(ctx, serverTransport)
	}()
	defer func() {
		cancel()
		<-serverDone
	}()

	client, err := newFromTransport(ctx, clientTransport)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	text, err := client.CallTool(context.Background(), "multi", json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "12 +\n3", text)
}

func TestNewHTTPUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewHTTP(ctx, "http://127.0.0.1:1/mcp")
	assert.Error(t, err)
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name   string
		result *mcp.CallToolResult
		want   string
	}{
		{
			name:   "single text",
			result: &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: "42"}}},
			want:   "42",
		},
		{
			name:   "empty content",
			result: &mcp.CallToolResult{Content: []mcp.Content{}},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractText(tt.result))
		})
	}
}
