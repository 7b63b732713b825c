package fluent

//go:generate stringer -type=StepKind -linecomment

// StepKind identifies the kind of a queued step.
type StepKind uint8

const (
	StepUnknown    StepKind = 0  // Unknown
	StepFilter     StepKind = 1  // Filter
	StepMap        StepKind = 2  // Map
	StepDistinct   StepKind = 3  // Distinct
	StepSort       StepKind = 4  // Sort
	StepRejectNull StepKind = 5  // RejectNull
	StepPeek       StepKind = 6  // Peek
	StepLimit      StepKind = 7  // Limit
	StepSkip       StepKind = 8  // Skip
	StepFlatMap    StepKind = 9  // FlatMap
	StepAppend     StepKind = 10 // Append
	// StepCollect is reported by callbacks passed to a terminal operation.
	StepCollect StepKind = 11 // Collect
)
