package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error message and exits.
func exitWithError(code int, format string, args ...interface{}) {
	os.Exit(outputError(code, format, args...))
}

// printJSON pretty-prints a raw JSON document to stdout.
func printJSON(raw []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		// Not JSON after all, print it verbatim.
		fmt.Println(string(raw))
		return
	}
	fmt.Println(buf.String())
}

// printResponses echoes raw chunk responses, one per line.
func printResponses(responses [][]byte) {
	for _, resp := range responses {
		fmt.Println(string(bytes.TrimSpace(resp)))
	}
}
