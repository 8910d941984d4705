package mcp

import (
	"context"
	"net"
	"runtime"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

// connect starts an in-memory session between s and a test client.
func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ss, err := s.Connect(ctx, serverTransport)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })

	return cs
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestNewServer(t *testing.T) {
	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingToolService)
	})

	t.Run("nil tool service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingToolService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Tools: newMockToolService()})
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.Contains(t, server.known, domain.ToolSearchVulnerabilities)
	})
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingToolService)
	assert.NoError(t, (&Ports{Tools: newMockToolService()}).Validate())
}

func TestServer_ListTools(t *testing.T) {
	server, err := NewServer(&Ports{Tools: newMockToolService()})
	require.NoError(t, err)
	session := connect(t, server)

	res, err := session.ListTools(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, res.Tools, 1)
	tool := res.Tools[0]
	assert.Equal(t, domain.ToolSearchVulnerabilities, tool.Name)

	schema, ok := tool.InputSchema.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []any{"query"}, schema["required"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	query, ok := props["query"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", query["type"])
	assert.EqualValues(t, 3, query["minLength"])
	assert.EqualValues(t, 1000, query["maxLength"])
}

func TestServer_CallTool_UnknownToolIsToolError(t *testing.T) {
	tools := newMockToolService()
	server, err := NewServer(&Ports{Tools: tools})
	require.NoError(t, err)
	session := connect(t, server)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "delete_everything",
		Arguments: map[string]any{"query": "reentrancy"},
	})

	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), `"error": "Unknown tool: delete_everything"`)

	calls := tools.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "delete_everything", calls[0].name)
	assert.Nil(t, calls[0].args)
}

func TestServer_CallTool_PassesArguments(t *testing.T) {
	tools := newMockToolService()
	server, err := NewServer(&Ports{Tools: tools})
	require.NoError(t, err)
	session := connect(t, server)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      domain.ToolSearchVulnerabilities,
		Arguments: map[string]any{"query": "reentrancy attack"},
	})

	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, textOf(t, res), `"success": true`)

	calls := tools.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "reentrancy attack", calls[0].args["query"])
}

func TestServer_CallTool_ErrorResultSetsIsError(t *testing.T) {
	tools := newMockToolService()
	tools.result = domain.ErrResult(domain.NewSearchError(domain.ErrorKindAuth, domain.ReasonInvalidAPIKey))
	server, err := NewServer(&Ports{Tools: tools})
	require.NoError(t, err)
	session := connect(t, server)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      domain.ToolSearchVulnerabilities,
		Arguments: map[string]any{"query": "reentrancy attack"},
	})

	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t,
		"{\n  \"success\": false,\n  \"error\": \""+domain.ReasonInvalidAPIKey+"\"\n}",
		textOf(t, res))
}

func TestServer_RunHTTP_StopsOnCancel(t *testing.T) {
	server, err := NewServer(&Ports{Tools: newMockToolService()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, server.RunHTTP(ctx, "127.0.0.1:0"))
}

func TestServer_RunHTTP_ListenErrorReleasesShutdownWatcher(t *testing.T) {
	server, err := NewServer(&Ports{Tools: newMockToolService()})
	require.NoError(t, err)

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	before := runtime.NumGoroutine()

	err = server.RunHTTP(context.Background(), busy.Addr().String())

	require.Error(t, err)
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, time.Second, 10*time.Millisecond)
}
