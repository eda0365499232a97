// Package repl is the interactive front end of rowdb.
//
// A Session owns exactly one table. Run prints the prompt "db> ", reads one
// line, executes it and writes the response, until ".exit", end of input, or
// context cancellation:
//
//	db> insert 1 test_user test_user@github.com
//	Executed.
//	db> select
//	1, test_user, test_user@github.com
//	Executed.
//	db> .exit
//	Bye!
//
// Responses are written right after the prompt, so in a captured transcript
// each reply appears as "db> <payload>".
//
// A Session may carry a Persister that receives every inserted row before the
// table is updated. Diagnostics go to a slog.Logger tagged with the session id
// and never to the response stream.
package repl
