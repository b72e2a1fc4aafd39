// Package operations runs one report invocation as an ordered list of
// stages sharing a RunState.
//
// Core Components:
//
// Runner: builds the stage list for a report mode, executes each stage in
// order inside its own trace span, and records the outcome in the run
// history and the metrics textfile when those are configured.
//
// Stage: a single unit of work (load, normalize, filter, export, report).
// Stages read their inputs from the RunState and store their outputs there.
//
// RunState: tracks the data flowing between stages and the status of each
// stage.
//
// Example usage:
//
//	runner := operations.NewRunner(operations.Options{
//	    Config: cfg,
//	    Paths:  paths,
//	    Out:    os.Stdout,
//	})
//	result, err := runner.Run(ctx, domain.ReportModeFiltered)
//
// A stage failure aborts the run and is returned as an *OperationError
// naming the stage.
package operations
