package serrors

import "fmt"

// BaseError is a coded business error. The code is stable across releases
// and safe to key client behavior on; template data carries the offending
// identifiers (item number, order number) for message rendering.
type BaseError struct {
	Code         string
	Message      string
	LocaleKey    string
	TemplateData map[string]string
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

func (e *BaseError) Error() string {
	if len(e.TemplateData) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s %v", e.Message, e.TemplateData)
}

func (e *BaseError) WithTemplateData(data map[string]string) *BaseError {
	out := *e
	out.TemplateData = data
	return &out
}

// Is matches by code so wrapped copies with template data still compare
// equal to their sentinel.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}
