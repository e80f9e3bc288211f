package content

import "embed"

// Templates embeds the bundled fallback markdown templates, one per event
// type, used when no message_templates row overrides them.
//
//go:embed templates/*.md
var Templates embed.FS
