// Package content renders an event type into a subject/body/HTML-body
// triple, the shipped implementation of the Template/Content Port.
//
// Resolution order for an event type's body:
//  1. A message_templates row (central store), when one exists.
//  2. A bundled markdown file named "<event_type>.md" under templates/,
//     carrying YAML frontmatter with a subject field, in the same format
//     pkg/mailer.ParseTemplate reads.
//
// The scheduler calls [Renderer.Render] at job-creation time and stores the
// rendered strings directly in the job payload, so the queue engine's
// handlers never re-render (they only need the Messenger port). Rendered
// HTML is passed through pkg/sanitizer before being returned.
package content
