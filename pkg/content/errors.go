package content

import "errors"

var (
	// ErrTemplateNotFound indicates neither a message_templates row nor a
	// bundled file exists for the requested event type.
	ErrTemplateNotFound = errors.New("content: template not found")

	// ErrRenderFailed indicates template execution or markdown conversion failed.
	ErrRenderFailed = errors.New("content: failed to render template")
)
