// Package testsupport holds golden-file and fixture helpers shared by tests.
package testsupport
