// Package summary extracts run-level result counters from Integrity reports.
package summary

// Counts holds the four aggregate counters of one test run, plus the run
// name when the report carried one. The zero value is a valid "nothing
// found" result.
type Counts struct {
	Success       int
	Failure       int
	TestException int
	CallException int
	RunName       string
}

// Add returns the element-wise sum of two Counts. The run name is taken
// from the receiver; summing across runs has no single meaningful name.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Success:       c.Success + o.Success,
		Failure:       c.Failure + o.Failure,
		TestException: c.TestException + o.TestException,
		CallException: c.CallException + o.CallException,
		RunName:       c.RunName,
	}
}

// Problems returns the number of results that should worry a build:
// failures plus exceptions of both kinds.
func (c Counts) Problems() int {
	return c.Failure + c.TestException + c.CallException
}

// Total returns the overall number of recorded results.
func (c Counts) Total() int {
	return c.Success + c.Failure + c.TestException + c.CallException
}
