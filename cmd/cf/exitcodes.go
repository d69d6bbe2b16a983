package main

// Exit codes returned by cf commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error
	ExitNotFound    = 3 // No references or no DOIs found
	ExitAPIError    = 4 // Upstream API failure
)
