// Package docs embeds the package documentation and searches it by keyword.
package docs
