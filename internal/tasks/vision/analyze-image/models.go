// internal/tasks/vision/analyze-image/models.go
package analyzeimage

// Input carries the image as base64. A full data URL is accepted too; its MIME
// type is used when MIMEType is empty.
type Input struct {
	ImageBase64 string `json:"imageBase64"`
	MIMEType    string `json:"mimeType,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
}

type Output struct {
	Analysis string `json:"analysis"`
}
