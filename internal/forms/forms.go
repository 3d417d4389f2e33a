// Package forms validates admin form input and assembles the record payloads
// handed to the mirrors. Publish gating lives here, at the edge: the data
// store itself does not enforce bilingual completeness.
package forms

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type pair struct {
	name string
	ar   string
	en   string
}

// requirePairs enforces the publish rule: a record may only go live once
// every required bilingual field pair is filled in both languages. Drafts
// pass unconditionally.
func requirePairs(published bool, pairs ...pair) error {
	if !published {
		return nil
	}

	var missing []string
	for _, p := range pairs {
		if strings.TrimSpace(p.ar) == "" || strings.TrimSpace(p.en) == "" {
			missing = append(missing, p.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("cannot publish with incomplete bilingual fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// requireBalanced applies the publish rule to optional bilingual lists: both
// languages filled, or both left empty.
func requireBalanced(published bool, name string, lenAr, lenEn int) error {
	if !published {
		return nil
	}
	if (lenAr == 0) != (lenEn == 0) {
		return fmt.Errorf("bilingual list %s must be provided in both languages or neither", name)
	}
	return nil
}

func optionalURL(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
