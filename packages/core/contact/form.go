// Package contact validates contact form submissions and relays them to the club.
package contact

import (
	"context"
	"errors"
	"sync"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

var ErrSubmitInProgress = errors.New("a submission is already in progress")

// ValidationError blocks a submission; Fields maps each failing field to its message.
type ValidationError struct {
	Fields map[Field]string
}

func (e *ValidationError) Error() string {
	return "contact form has invalid fields"
}

// Form tracks one visitor's contact form: values, which fields were
// touched, their current errors and the submission status.
type Form struct {
	relay Relay

	mu      sync.Mutex
	values  Values
	touched map[Field]bool
	errors  map[Field]string
	status  Status
}

func NewForm(relay Relay) *Form {
	return &Form{
		relay:   relay,
		touched: make(map[Field]bool),
		errors:  make(map[Field]string),
		status:  StatusIdle,
	}
}

// Change sets a field. A touched field is re-validated immediately.
func (f *Form) Change(field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values.Set(field, value)
	if f.touched[field] {
		f.setError(field, ValidateField(field, value))
	}
}

// Blur marks a field touched and validates it.
func (f *Form) Blur(field Field) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.touched[field] = true
	f.setError(field, ValidateField(field, f.values.Get(field)))
}

// Submit validates every field and relays the values. Invalid input
// returns a *ValidationError and never reaches the relay.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}

	errs := Validate(f.values)
	if len(errs) > 0 {
		for _, field := range Fields() {
			f.touched[field] = true
		}
		f.errors = errs
		f.mu.Unlock()
		return &ValidationError{Fields: copyErrors(errs)}
	}

	f.status = StatusSubmitting
	values := f.values
	f.mu.Unlock()

	err := f.relay.Send(ctx, values)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.status = StatusError
		return err
	}

	f.status = StatusSuccess
	f.values = Values{}
	f.touched = make(map[Field]bool)
	f.errors = make(map[Field]string)
	return nil
}

// Reset returns a finished form to idle, keeping its values.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status != StatusSubmitting {
		f.status = StatusIdle
	}
}

func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *Form) Touched(field Field) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[field]
}

func (f *Form) Errors() map[Field]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyErrors(f.errors)
}

func (f *Form) setError(field Field, msg string) {
	if msg == "" {
		delete(f.errors, field)
		return
	}
	f.errors[field] = msg
}

func copyErrors(errs map[Field]string) map[Field]string {
	out := make(map[Field]string, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}
