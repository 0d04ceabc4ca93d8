package model

import "errors"

// journal holds the inverse of each mutation made while executing a move, in
// the order they were made.
type journal []func() error

func (j *journal) record(undo func() error) {
	*j = append(*j, undo)
}

// rollback replays the inverses newest first. It keeps going after a failure
// so that as much of the board as possible is restored.
func (j journal) rollback() error {
	var errs []error
	for i := len(j) - 1; i >= 0; i-- {
		if err := j[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
