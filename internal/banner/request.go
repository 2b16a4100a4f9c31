package banner

import (
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
)

const MaxUserNameLength = 50

// RenderRequest is built once by the request boundary and only read after.
type RenderRequest struct {
	Style     int
	UserName  string
	UserID    string
	AvatarURL string
	ShareURL  string
	Animated  bool
	Quality   string
}

// Validate returns every violation at once; the result matches
// ErrInvalidStyle and ErrUserNameTooLong through errors.Is.
func (r RenderRequest) Validate() error {
	var result *multierror.Error
	if _, err := LookupTheme(r.Style); err != nil {
		result = multierror.Append(result, err)
	}
	if utf8.RuneCountInString(r.UserName) > MaxUserNameLength {
		result = multierror.Append(result, ErrUserNameTooLong)
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = func(errs []error) string {
		msg := errs[0].Error()
		for _, e := range errs[1:] {
			msg += " " + e.Error()
		}
		return msg
	}
	return result
}
