package main

// Exit codes used across all commands.
const (
	ExitSuccess    = 0 // Success
	ExitError      = 1 // General error (invalid arguments, runtime failure)
	ExitInputError = 2 // Input missing (no .bib file, export dir absent)
	ExitDataError  = 3 // Data error (unreadable or malformed library)
)
