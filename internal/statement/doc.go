// Package statement turns one input line into something the REPL can execute.
//
// A line beginning with "." is a meta command (ParseMeta). Anything else is a
// statement (Prepare): either "select", or "insert <id> <username> <email>".
// Tokens are separated by spaces; runs of spaces collapse.
//
// Prepare never touches a table. Every rejection is a *PrepareError whose Code
// tells the REPL which message to print.
package statement
