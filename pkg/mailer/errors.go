package mailer

import "errors"

// ErrInvalidFrontmatter indicates a template's YAML frontmatter is
// malformed or missing its closing delimiter.
var ErrInvalidFrontmatter = errors.New("invalid frontmatter")
