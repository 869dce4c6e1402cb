package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// validSites are the social networks QuickPin knows how to ingest.
var validSites = []string{"twitter", "instagram"}

// readIdentifiers reads a line-delimited identifier list from the given
// path ("-" means stdin). Blank lines are skipped. An empty result is not
// an error; the caller treats it as a non-fatal early exit.
func readIdentifiers(path string) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var identifiers []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		identifiers = append(identifiers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return identifiers, nil
}

// validateSite checks the site argument against the supported networks.
func validateSite(site string) error {
	for _, s := range validSites {
		if site == s {
			return nil
		}
	}
	return fmt.Errorf("invalid site %q (must be one of: %s)", site, strings.Join(validSites, ", "))
}
