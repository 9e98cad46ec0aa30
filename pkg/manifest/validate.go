package manifest

import (
	"fmt"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// fieldDescriptions render validator failures for operators.
var fieldDescriptions = map[string]string{
	"Path":   "must be a repo-relative path. (required)",
	"Commit": "must be a hexadecimal commit id. (optional)",
	"Name":   "must be a file name. (required)",
	"Digest": "must be a 40 character hexadecimal SHA-1. (optional)",
	"URL":    "must be a fully qualified fetch url. (optional)",
}

// Validate checks every entry of a parsed manifest against the schema
// constraints consumers rely on. Parsing stays lenient by design;
// validation is the stricter gate a resolution client runs before
// trusting digests and URLs.
func Validate(m *Manifest) error {
	v := goValidator.New(goValidator.WithRequiredStructEnabled())

	for name, versions := range m.Packages {
		for version, entries := range versions {
			for _, entry := range entries {
				if err := v.Struct(entry); err != nil {
					return describe(err, name, version)
				}
				for _, file := range entry.Contents {
					if err := v.Struct(file); err != nil {
						return describe(err, name, version)
					}
				}
			}
		}
	}
	return nil
}

func describe(err error, name, version string) error {
	verrs, ok := err.(goValidator.ValidationErrors)
	if !ok {
		return err
	}

	message := fmt.Sprintf("manifest entry %s@%s failed validation", name, version)
	for _, ve := range verrs {
		desc := fieldDescriptions[ve.Field()]
		if desc == "" {
			desc = "is invalid"
		}
		message += fmt.Sprintf("\n  - %q %s", ve.Field(), desc)
	}
	return errors.New(message)
}
