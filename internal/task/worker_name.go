package task

import "fmt"

// WorkerName identifies the node that holds a running task's lease.
// Present only inside a running task's value, per spec.md §3.
type WorkerName string

// Validate enforces the spec.md §3 rule: 1–32 chars, only lowercase
// ASCII letters, digits, and '-'.
func (n WorkerName) Validate() error {
	if len(n) == 0 || len(n) > 32 {
		return fmt.Errorf("%w: %q has length %d, want 1-32", ErrInvalidWorkerName, string(n), len(n))
	}
	for _, r := range n {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return fmt.Errorf("%w: %q contains disallowed character %q", ErrInvalidWorkerName, string(n), r)
		}
	}
	return nil
}
