package services

import "fmt"

// SummarizeBatch turns the counts into the caller-facing success flag and
// message. A batch with both successes and errors still reports success so a
// majority-valid export is not discarded; the message puts the error count
// front and center rather than burying it, and callers are expected to
// inspect Errors.
func SummarizeBatch(result *BatchResult) (bool, string) {
	hasErrors := len(result.Errors) > 0
	hasSuccess := result.Created > 0 || result.Updated > 0

	switch {
	case result.Incomplete:
		return false, fmt.Sprintf(
			"Bulk upload aborted after %d rows: listing store unavailable", result.Total)
	case hasErrors && !hasSuccess:
		return false, "All listings failed to process"
	case hasErrors:
		return true, fmt.Sprintf("Bulk upload completed with %d errors", len(result.Errors))
	default:
		return true, fmt.Sprintf(
			"Bulk upload completed successfully. %d created, %d updated.", result.Created, result.Updated)
	}
}
