// Package http serves schema props, rules and validation as JSON over a chi
// router.
package http
