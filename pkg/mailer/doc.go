// Package mailer defines the EmailMessenger port: the Sender interface a
// provider adapter implements, the Email/Attachment wire types handlers
// build, and ParseTemplate for reading a markdown file's YAML frontmatter.
//
// pkg/content.Renderer uses ParseTemplate to read a bundled template's
// subject out of its frontmatter before converting its markdown body to
// HTML; pkg/mailer/resend implements Sender against the Resend API. Neither
// consumer needs more than these three pieces — there is no higher-level
// Mailer client in this package, since the queue engine's handlers already
// own subject/body construction and call Sender directly.
//
// # Custom providers
//
// Implement Sender to add support for another email provider:
//
//	type MySender struct{}
//
//	func (s *MySender) Send(ctx context.Context, email *mailer.Email) error {
//		// send using your provider's API
//		return nil
//	}
package mailer
