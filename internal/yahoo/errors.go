package yahoo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthenticated reports that no valid credential was available.
// It is fatal for the whole request and never retried here.
var ErrUnauthenticated = errors.New("yahoo: not authenticated")

// RejectedError reports that the upstream considers a player or league key
// invalid or nonexistent. It is recovered locally by dropping the offending
// key, never fatal for sibling keys.
type RejectedError struct {
	Description string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("yahoo: upstream rejected request: %s", e.Description)
}

// TransientError reports a network failure, timeout or upstream 5xx.
// Retry/backoff policy belongs to the caller; nothing here retries.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("yahoo: transient failure during %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// MalformedError reports a response that could not be decoded or was
// missing expected fields. Callers map it contextually: inside a
// per-player fetch it is treated like a rejection of that player, for a
// whole batch it is treated as transient since the payload cannot be
// safely attributed to one key.
type MalformedError struct {
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("yahoo: malformed response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("yahoo: malformed response: %s", e.Reason)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// IsRejected reports whether err signals an invalid/nonexistent key.
func IsRejected(err error) bool {
	var rejected *RejectedError
	return errors.As(err, &rejected)
}

// IsMalformed reports whether err signals an undecodable or incomplete
// response.
func IsMalformed(err error) bool {
	var malformed *MalformedError
	return errors.As(err, &malformed)
}

// rejectionPhrases is the closed set of upstream error-description signals
// recognized as "this key is invalid". Matching is intentionally narrow:
// anything not in this set is classified transient instead of guessed at.
var rejectionPhrases = []string{
	"does not exist",
	"invalid",
	"not a valid",
}

// classifyDescription maps an upstream error description onto the error
// taxonomy. Descriptions mentioning key invalidity become RejectedError;
// everything else is transient.
func classifyDescription(desc string) error {
	lower := strings.ToLower(desc)
	for _, phrase := range rejectionPhrases {
		if strings.Contains(lower, phrase) {
			return &RejectedError{Description: desc}
		}
	}
	return &TransientError{Op: "upstream call", Err: fmt.Errorf("unrecognized upstream error: %s", desc)}
}
