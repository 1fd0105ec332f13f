// Package policy gates sign-in with a static email allow-list.
// Each allow-listed email maps to a branch tag used for feature gating.
package policy

import "errors"

// ErrAccessDenied is returned when an email is not on the allow-list.
var ErrAccessDenied = errors.New("access denied: email is not authorized")

// Table maps email addresses to branch tags. Lookup is exact and
// case-sensitive; no wildcard or domain matching.
type Table map[string]string

// Default returns the built-in allow-list.
func Default() Table {
	return Table{
		"workingforthebigg@gmail.com": "test",
		"malupa.macdaver@shap.edu.ph": "test",
	}
}

// ResolveBranch returns the branch tag for email, or ErrAccessDenied
// when the email is not allow-listed.
func (t Table) ResolveBranch(email string) (string, error) {
	branch, ok := t[email]
	if !ok {
		return "", ErrAccessDenied
	}
	return branch, nil
}
