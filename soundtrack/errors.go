package soundtrack

import (
	"errors"
	"fmt"
)

// ErrTransitionAbandoned matches every TransitionAbandonedError.
var ErrTransitionAbandoned = errors.New("transition abandoned")

// TransitionAbandonedError reports a transition that could not proceed. The
// previous playback state is left unchanged.
type TransitionAbandonedError struct {
	Segment Segment
	Cause   error
}

func (e *TransitionAbandonedError) Error() string {
	return fmt.Sprintf("transition to %s abandoned: %v", e.Segment, e.Cause)
}

func (e *TransitionAbandonedError) Is(target error) bool { return target == ErrTransitionAbandoned }

func (e *TransitionAbandonedError) Unwrap() error { return e.Cause }
