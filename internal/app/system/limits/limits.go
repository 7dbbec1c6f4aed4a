// internal/app/system/limits/limits.go
package limits

// Request body and field size limits. These guard against memory
// exhaustion from oversized requests.
const (
	// MaxJSONBody is the maximum size for any JSON request body.
	MaxJSONBody = 1 << 20 // 1 MB

	// MaxMessageChars is the maximum length of a single message body.
	MaxMessageChars = 4000

	// MaxGalleryImages caps the profile gallery.
	MaxGalleryImages = 20
)
