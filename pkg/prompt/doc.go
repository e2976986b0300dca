// Package prompt fills a schema interactively in the terminal. Prompts
// follow the tree order, skip nodes hidden by earlier answers, validate each
// answer with the field's rules and run after-change callbacks as values are
// entered.
package prompt
