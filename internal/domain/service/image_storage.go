package service

import "context"

// ImageStorage is the file-storage collaborator for uploaded images.
// Payloads arrive as base64 strings, optionally carrying a
// "data:<mime>;base64," prefix. The empty string and the literal "null"
// both mean "no image".
type ImageStorage interface {
	// Store decodes the payload, assigns a generated unique filename based
	// on the sniffed content type, writes it, and returns the stored
	// reference. Returns ("", nil) for empty payloads.
	Store(ctx context.Context, base64Payload string, prefix string) (string, error)

	// URL builds a retrievable URL for a stored reference.
	// Returns "" for an empty reference.
	URL(ref string) string
}
