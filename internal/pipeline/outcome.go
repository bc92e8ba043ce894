package pipeline

import "time"

// Outcome is the terminal result of one invocation. Exactly one of Err or the
// success fields is populated.
type Outcome struct {
	Operation string
	StartedAt time.Time
	Duration  time.Duration

	// Output is what downstream consumers see, after the projection policy.
	Output any
	// Response is the raw service response, kept for introspection.
	Response any
	// Notes are side channel messages such as service warnings.
	Notes []string

	Err error
}

func success(op string, output, response any, notes []string) *Outcome {
	return &Outcome{
		Operation: op,
		Output:    output,
		Response:  response,
		Notes:     notes,
	}
}

func failure(op string, err error) *Outcome {
	return &Outcome{
		Operation: op,
		Err:       err,
	}
}

// Succeeded reports whether the invocation ran and returned no error.
func (o *Outcome) Succeeded() bool {
	return o != nil && o.Err == nil
}

// Failed reports whether the invocation ran and returned an error.
func (o *Outcome) Failed() bool {
	return o != nil && o.Err != nil
}
