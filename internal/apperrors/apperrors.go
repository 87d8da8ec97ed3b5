package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	ErrInvalidRequest = errors.New("invalid request body")
	ErrValidation     = errors.New("validation failed")
)

type TeamAlreadyExistsError struct{ TeamName string }

func (e *TeamAlreadyExistsError) Error() string {
	return fmt.Sprintf("team '%s' already exists", e.TeamName)
}
func (e *TeamAlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }

type TaskAlreadyExistsError struct{ TaskID string }

func (e *TaskAlreadyExistsError) Error() string {
	return fmt.Sprintf("task '%s' already exists", e.TaskID)
}
func (e *TaskAlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }
