package main

import (
	"fmt"
	"os"

	"github.com/zanachka/quickpin-api/pkg/client"
	"github.com/zanachka/quickpin-api/pkg/submit"
)

// Flags shared by the submit-names and submit-ids verbs.
var (
	flagStub     bool
	flagChunk    int
	flagInterval float64
)

// runSubmission reads identifiers, builds the submitter, and dispatches one
// submission run. byID selects the upstream-ID identity form; otherwise
// identifiers are usernames.
func runSubmission(inputPath, site string, byID bool) error {
	if err := validateSite(site); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	identifiers, err := readIdentifiers(inputPath)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if len(identifiers) == 0 {
		fmt.Println("Empty file")
		return nil
	}

	ctx, cancel := commandContext()
	defer cancel()

	c, code := newClient(ctx)
	if code != 0 {
		os.Exit(code)
	}

	total := len(identifiers)
	cfg := submit.Config{
		ChunkSize: flagChunk,
		Interval:  parseInterval(flagInterval),
		Progress: func(submitted int) {
			fmt.Fprintf(os.Stderr, "Submitted %d/%d profiles\n", submitted, total)
		},
	}
	submitter := submit.New(c, cfg)

	var responses [][]byte
	if byID {
		responses, err = submitter.SubmitIDs(ctx, identifiers, site, flagStub)
	} else {
		responses, err = submitter.SubmitUsernames(ctx, identifiers, site, flagStub)
	}
	if err != nil {
		if client.IsInvalidArgument(err) {
			exitWithError(ExitConfigError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	printResponses(responses)
	return nil
}
