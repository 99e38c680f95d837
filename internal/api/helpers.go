package api

import (
	"github.com/listenupapp/linkstash/internal/metadata"
	"github.com/listenupapp/linkstash/internal/service"
)

// MessageResponse is the body of operations that return no resource.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

func message(msg string) *MessageOutput {
	return &MessageOutput{Body: MessageResponse{Message: msg}}
}

// metadataFields keeps the non-empty extracted values so a refresh never
// blanks a field the page simply did not provide.
func metadataFields(md *metadata.Metadata) *service.MetadataFields {
	fields := &service.MetadataFields{}
	set := func(dst **string, v string) {
		if v != "" {
			*dst = &v
		}
	}
	set(&fields.Title, md.Title)
	set(&fields.Description, md.Description)
	set(&fields.ImageURL, md.ImageURL)
	set(&fields.FaviconURL, md.FaviconURL)
	return fields
}
