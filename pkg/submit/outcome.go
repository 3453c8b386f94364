package submit

// Status tags the terminal result of one submit attempt.
type Status string

const (
	// StatusSucceeded: the collaborator persisted the record.
	StatusSucceeded Status = "succeeded"
	// StatusValidationFailed: the record failed schema validation; no network
	// call was made.
	StatusValidationFailed Status = "validation-failed"
	// StatusAttachmentFailed: the selected document could not be read; no
	// network call was made.
	StatusAttachmentFailed Status = "attachment-failed"
	// StatusSubmissionError: the collaborator reported a failure.
	StatusSubmissionError Status = "submission-error"
)

// User-facing notices for failures. They stay generic; diagnostic detail is
// logged, never shown.
const (
	NoticeAttachmentFailed = "We could not read the selected file. Please choose it again."
	NoticeSubmissionError  = "Something went wrong while submitting your registration. Please try again."
)

// Outcome is the defined result of Pipeline.Submit. Every exit path yields
// one; no error escapes the pipeline boundary.
type Outcome struct {
	Status Status

	// Target is the navigation reference emitted on success, of the form
	// /patients/{userId}/new-appointment.
	Target string

	// Ref is the persisted record reference returned by the collaborator.
	Ref *PatientRef

	// FieldErrors carries per-field messages when Status is
	// StatusValidationFailed.
	FieldErrors map[string]string

	// Notice is the generic, dismissible message shown to the user on
	// attachment or submission failures.
	Notice string

	// Err holds diagnostic detail for logging. It is never surfaced to the
	// user.
	Err error
}

// Succeeded reports whether the attempt completed.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusSucceeded
}

// PatientRef identifies the persisted intake record.
type PatientRef struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
}
