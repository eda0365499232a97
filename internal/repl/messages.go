package repl

import "fmt"

// Prompt precedes every line read.
const Prompt = "db> "

// Response payloads.
const (
	MsgExecuted      = "Executed."
	MsgStringTooLong = "String is too long."
	MsgTableFull     = "Error: Table full."
	MsgNegativeID    = "Id cannot be negative."
	MsgBye           = "Bye!"
	MsgInputError    = "Error reading input"
)

func msgSyntaxError(line string) string {
	return fmt.Sprintf("Syntax error, could not parse statement: '%s'.", line)
}

func msgUnrecognizedStatement(line string) string {
	return fmt.Sprintf("Unrecognized statement: '%s'.", line)
}

func msgUnrecognizedCommand(line string) string {
	return fmt.Sprintf("Unrecognized command: '%s'.", line)
}

func msgStorageError(err error) string {
	return fmt.Sprintf("Error: %v.", err)
}
