package models

// FileAttachment is one uploaded file of a submission. Content holds the
// inline base64 payload of an attachment that has not been uploaded yet; a
// present but empty payload is a zero-byte file. Once the blob is stored,
// URL is set and Content is dropped.
type FileAttachment struct {
	Name    string  `json:"name"`
	Size    int64   `json:"size"`
	Type    string  `json:"type"`
	Content *string `json:"base64,omitempty"`
	URL     string  `json:"url,omitempty"`
}

// MaxAttachments is the most files a single submission may carry.
const MaxAttachments = 5

// Inline returns f carrying the base64 payload b64.
func (f FileAttachment) Inline(b64 string) FileAttachment {
	f.Content = &b64
	return f
}

// Pending reports whether the attachment still carries its payload inline.
func (f FileAttachment) Pending() bool {
	return f.URL == "" && f.Content != nil
}
