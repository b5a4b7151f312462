package gmail

import "fmt"

// AuthError marks a failure to establish or refresh the OAuth session.
// Without a session no messages can be processed, so callers treat it as fatal.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("gmail auth: %v", e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

// RemoteError marks a failed Gmail API call. A listing failure aborts the
// run; a per-message failure degrades or drops a single record.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string { return fmt.Sprintf("gmail %s: %v", e.Op, e.Err) }
func (e *RemoteError) Unwrap() error { return e.Err }
