package upload

// Method identifies the transfer mechanism the server chose for an upload
type Method string

const (
	// MethodSignedForm submits the bytes as a multipart form POST with the
	// server-issued policy fields replayed ahead of the file part.
	MethodSignedForm Method = "signed-form"

	// MethodResumablePost streams the bytes as a resumable POST body.
	MethodResumablePost Method = "resumable-post"

	// MethodResumablePut streams the bytes as a resumable PUT body.
	MethodResumablePut Method = "resumable-put"
)

// Target is the server-issued destination for one upload attempt.
// It is produced by a Negotiator, consumed exactly once by a Transferrer,
// and never mutated.
type Target struct {
	VideoID     string
	URL         string
	Method      Method
	ContentType string

	// Fields carries the signed form fields for MethodSignedForm. The
	// signing scheme requires them to accompany the bytes unmodified,
	// written before the file part. Nil for the resumable methods.
	Fields map[string]string
}
