package service

// Validator checks a struct against its declared field rules.
type Validator interface {
	// Struct returns a *errors.ValidationError listing every failing field, or nil.
	Struct(s any) error
}
