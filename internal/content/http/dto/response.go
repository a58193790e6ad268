// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	contentDomain "github.com/allisson/sealfeed/internal/content/domain"
)

// CreateContentResponse is returned when content has been encrypted and stored.
// FailedRecipientIDs lists recipients who will not be able to read it.
type CreateContentResponse struct {
	ID                 string   `json:"id"`
	Type               string   `json:"type"`
	FailedRecipientIDs []string `json:"failed_recipient_ids"`
}

// MapCreateResultToResponse converts a create result to an API response.
func MapCreateResultToResponse(result *contentDomain.CreateResult) CreateContentResponse {
	failed := make([]string, 0, len(result.FailedRecipientIDs))
	for _, id := range result.FailedRecipientIDs {
		failed = append(failed, id.String())
	}
	return CreateContentResponse{
		ID:                 result.Ref.ID.String(),
		Type:               string(result.Ref.Type),
		FailedRecipientIDs: failed,
	}
}

// ContentResponse is one decrypted content entity, or its placeholder text.
type ContentResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// MapContentToResponse converts decrypted content to an API response.
func MapContentToResponse(ref contentDomain.ContentRef, content string) ContentResponse {
	return ContentResponse{
		ID:      ref.ID.String(),
		Type:    string(ref.Type),
		Content: content,
	}
}

// ReadFeedResponse holds the decrypted items in request order.
type ReadFeedResponse struct {
	Data []ContentResponse `json:"data"`
}

// MapFeedToResponse pairs each ref with its decrypted content.
func MapFeedToResponse(refs []contentDomain.ContentRef, contents []string) ReadFeedResponse {
	data := make([]ContentResponse, 0, len(refs))
	for i, ref := range refs {
		data = append(data, MapContentToResponse(ref, contents[i]))
	}
	return ReadFeedResponse{Data: data}
}
