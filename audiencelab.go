// Package audiencelab holds assets shared by the audiencelab binaries.
package audiencelab

import "embed"

// EmailFS contains the html and plaintext email templates, one directory per template.
//
//go:embed templates/emails
var EmailFS embed.FS
