// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	contentDomain "github.com/allisson/sealfeed/internal/content/domain"
	customValidation "github.com/allisson/sealfeed/internal/validation"
)

// CreateContentRequest contains the plaintext to encrypt. The content type is taken from
// the URL. RecipientIDs is required for chat messages and rejected otherwise.
type CreateContentRequest struct {
	Content      string   `json:"content"`
	RecipientIDs []string `json:"recipient_ids,omitempty"`
}

// Validate checks the request against the content type and the configured limits.
func (r *CreateContentRequest) Validate(contentType contentDomain.ContentType, maxBytes, maxRecipients int) error {
	recipientRules := []validation.Rule{validation.Empty}
	if contentType.IsMultiRecipient() {
		recipientRules = []validation.Rule{
			validation.Required,
			validation.Length(1, maxRecipients),
			validation.Each(validation.Required, customValidation.UUID),
			customValidation.UniqueStrings,
		}
	}

	return validation.ValidateStruct(r,
		validation.Field(&r.Content,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, maxBytes),
		),
		validation.Field(&r.RecipientIDs, recipientRules...),
	)
}

// ParsedRecipientIDs returns RecipientIDs as UUIDs. Call after Validate.
func (r *CreateContentRequest) ParsedRecipientIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.RecipientIDs))
	for _, id := range r.RecipientIDs {
		if parsed, err := uuid.Parse(id); err == nil {
			ids = append(ids, parsed)
		}
	}
	return ids
}

// ContentRefRequest identifies one content entity in a batch read.
type ContentRefRequest struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Validate checks if the reference is well formed.
func (r ContentRefRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Type,
			validation.Required,
			validation.In(
				string(contentDomain.ContentPost),
				string(contentDomain.ContentComment),
				string(contentDomain.ContentChatMessage),
			),
		),
		validation.Field(&r.ID, validation.Required, customValidation.UUID),
	)
}

// ToDomain converts the reference. Call after Validate.
func (r ContentRefRequest) ToDomain() contentDomain.ContentRef {
	id, _ := uuid.Parse(r.ID)
	return contentDomain.ContentRef{Type: contentDomain.ContentType(r.Type), ID: id}
}

// ReadFeedRequest lists the content a reader wants decrypted, in display order.
type ReadFeedRequest struct {
	Items []ContentRefRequest `json:"items"`
}

// Validate checks if the batch is non-empty, bounded by maxItems and well formed.
func (r *ReadFeedRequest) Validate(maxItems int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Items, validation.Required, validation.Length(1, maxItems)),
	)
}
