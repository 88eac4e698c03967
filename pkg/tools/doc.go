// Package tools exposes calculator operations as callable tools and carries
// them over MCP (Model Context Protocol).
//
// It is organized into sub-packages:
//   - [github.com/germanamz/abacus/pkg/tools/toolbox]: Tool type and ToolBox for registering, listing, and calling tools
//   - [github.com/germanamz/abacus/pkg/tools/mcpserver]: serves a set of tools over stdio or streamable HTTP
//   - [github.com/germanamz/abacus/pkg/tools/mcpclient]: connects to a remote abacus server and calls its tools
//
// toolbox is the foundation layer. mcpclient and mcpserver depend on it for
// the Tool type. Both are thin wrappers around the official MCP Go SDK
// (github.com/modelcontextprotocol/go-sdk).
package tools
