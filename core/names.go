package core

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/fatih/camelcase"
	"github.com/igorsobreira/titlecase"
)

// StagingSuffix is appended to a pack name while an edit of its version info is in progress
const StagingSuffix = "_tmp"

// Pack names are used as file name stems; the staging suffix is reserved
var packNameRegex = regexp2.MustCompile(`^(?!.*`+StagingSuffix+`$)[A-Za-z0-9][A-Za-z0-9 ._-]{0,63}$`, regexp2.None)

// ValidatePackName checks that a name can be used for a user-created pack
func ValidatePackName(name string) error {
	ok, err := packNameRegex.MatchString(name)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidPackName, name, err)
	}
	if !ok {
		if strings.HasSuffix(name, StagingSuffix) {
			return fmt.Errorf("%w %q: names ending in %s are reserved", ErrInvalidPackName, name, StagingSuffix)
		}
		return fmt.Errorf("%w %q: use letters, digits, spaces, dots, dashes and underscores", ErrInvalidPackName, name)
	}
	return nil
}

// PrettyName turns a slug like "fabric-api" or "sodiumExtra" into a space separated title
func PrettyName(slug string) string {
	name := strings.Join(camelcase.Split(slug), " ")
	name = strings.ReplaceAll(strings.ReplaceAll(name, " - ", " "), " _ ", " ")
	return titlecase.Title(name)
}
