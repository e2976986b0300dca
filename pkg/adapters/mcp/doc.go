// Package mcp exposes schemas to Model Context Protocol clients.
package mcp
