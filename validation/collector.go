package validation

// Collector accumulates field errors from programmatic checks.
type Collector struct {
	fields []FieldError
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Check records message for field when ok is false.
func (c *Collector) Check(ok bool, field, message string) *Collector {
	if !ok {
		c.fields = append(c.fields, FieldError{Field: field, Message: message})
	}
	return c
}

// Merge adds the field errors of err when it is a *Error, prefixing each
// field with prefix. Any other non-nil error is recorded under prefix.
func (c *Collector) Merge(prefix string, err error) *Collector {
	if err == nil {
		return c
	}
	e, ok := err.(*Error)
	if !ok {
		c.fields = append(c.fields, FieldError{Field: prefix, Message: err.Error()})
		return c
	}
	for _, f := range e.Fields {
		name := f.Field
		if prefix != "" {
			name = prefix + "." + name
		}
		c.fields = append(c.fields, FieldError{Field: name, Message: f.Message})
	}
	return c
}

// HasErrors reports whether any check failed.
func (c *Collector) HasErrors() bool {
	return len(c.fields) > 0
}

// Err returns a *Error with every recorded failure, or nil.
func (c *Collector) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &Error{Fields: append([]FieldError(nil), c.fields...)}
}
