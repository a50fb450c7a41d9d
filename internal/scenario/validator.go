package scenario

import "fmt"

// Validator checks a loaded scenario before it is handed to a session.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages,
	// e.g. "structural", "correct-option".
	Name() string

	// Validate returns nil if the scenario passes the check.
	Validate(s *Scenario) *ValidationError
}

// ValidationError describes why a scenario was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators returns the standard validator chain.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&CorrectOptionValidator{},
		&DatasetValidator{},
	}
}

// Validate runs the validators in order and returns the first failure.
// An empty chain runs DefaultValidators.
func Validate(s *Scenario, validators ...Validator) error {
	if s == nil {
		return &ValidationError{Validator: "structural", Message: "scenario is nil"}
	}
	if len(validators) == 0 {
		validators = DefaultValidators()
	}
	for _, v := range validators {
		if verr := v.Validate(s); verr != nil {
			return verr
		}
	}
	return nil
}

// StructuralValidator checks required fields and stage shape.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(s *Scenario) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	if s.Title == "" {
		return fail("title is empty")
	}
	if s.Brief == "" {
		return fail("brief is empty")
	}
	if len(s.Stages) == 0 {
		return fail("scenario has no stages")
	}
	for i, st := range s.Stages {
		if st.Question == "" {
			return fail("stage %d: question is empty", i+1)
		}
		if !st.Type.Valid() {
			return fail("stage %d: unknown stage type %q", i+1, st.Type)
		}
		if len(st.Options) == 0 {
			return fail("stage %d: no options", i+1)
		}
		ids := make(map[string]bool, len(st.Options))
		for _, o := range st.Options {
			if o.ID == "" {
				return fail("stage %d: option with empty id", i+1)
			}
			if ids[o.ID] {
				return fail("stage %d: duplicate option id %q", i+1, o.ID)
			}
			ids[o.ID] = true
			if o.Text == "" {
				return fail("stage %d: option %q has no text", i+1, o.ID)
			}
		}
	}
	return nil
}

// CorrectOptionValidator rejects stages that nobody could ever clear.
type CorrectOptionValidator struct{}

func (v *CorrectOptionValidator) Name() string { return "correct-option" }

func (v *CorrectOptionValidator) Validate(s *Scenario) *ValidationError {
	for i, st := range s.Stages {
		if !st.HasCorrectOption() {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("stage %d has no correct option", i+1),
			}
		}
	}
	return nil
}

// DatasetValidator checks that every record has uniquely named fields.
// An empty dataset is allowed.
type DatasetValidator struct{}

func (v *DatasetValidator) Name() string { return "dataset" }

func (v *DatasetValidator) Validate(s *Scenario) *ValidationError {
	for i, r := range s.Dataset {
		if len(r.Fields) == 0 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("record %d has no fields", i+1),
			}
		}
		seen := make(map[string]bool, len(r.Fields))
		for _, f := range r.Fields {
			if f.Name == "" {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("record %d has a field with an empty name", i+1),
				}
			}
			if seen[f.Name] {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("record %d repeats field %q", i+1, f.Name),
				}
			}
			seen[f.Name] = true
		}
	}
	return nil
}
