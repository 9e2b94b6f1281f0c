package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// MarkAs returns an error that matches sentinel under the standard library's
// errors.Is, keeping err as secondary detail in the %+v rendering. Mark only
// satisfies the cockroachdb matcher, so sentinels that handlers branch on
// must go through here.
func MarkAs(err error, sentinel error) error {
	if err == nil {
		return nil
	}
	return cr.CombineErrors(sentinel, err)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
