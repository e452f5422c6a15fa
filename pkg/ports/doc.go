/*
Package ports defines the driven ports (interfaces) between the toy robot core and its adapters.

These interfaces decouple the runner, the HTTP server and the MCP server from the concrete engine,
so tests and alternative cores can be swapped in.

# Key Interfaces

  - StatelessEngine: applies one command line to a caller-owned robot state.
*/
package ports
