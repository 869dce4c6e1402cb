package main

// Exit codes used by the qpi CLI.
const (
	ExitSuccess     = 0 // Success (including empty input files)
	ExitError       = 1 // General error (transport failure, runtime failure)
	ExitConfigError = 2 // Configuration error (missing URL, bad chunk size)
	ExitAuthError   = 3 // Authentication rejected by the service
)
