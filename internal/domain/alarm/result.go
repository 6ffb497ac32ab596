package alarm

// Outcome classifies a submitted keypad symbol.
type Outcome int

const (
	// OutcomePending means the symbol was buffered and the entry is not complete yet.
	OutcomePending Outcome = iota
	// OutcomeCorrect means the completed entry matched the password.
	OutcomeCorrect
	// OutcomeIncorrect means the completed entry did not match.
	OutcomeIncorrect
	// OutcomeLockedOut means the mismatch exhausted the allowed attempts.
	OutcomeLockedOut
	// OutcomeIgnored means the symbol was dropped without touching any state.
	OutcomeIgnored
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomeLockedOut:
		return "locked_out"
	case OutcomeIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// EntryResult is what the authenticator decided about one symbol.
type EntryResult struct {
	// Outcome is the decision.
	Outcome Outcome
	// Attempts is the mismatch count reached by this submission.
	// For OutcomeLockedOut it is the count that triggered the lockout,
	// the stored counter itself is already reset.
	Attempts int
	// Entered is the number of buffered symbols including this one,
	// counted before a completed entry is cleared.
	Entered int
}
