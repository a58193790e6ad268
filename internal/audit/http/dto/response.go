// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	auditDomain "github.com/allisson/sealfeed/internal/audit/domain"
)

// AuditEventResponse represents an audit event in API responses. The signature is
// reported as present or absent only.
type AuditEventResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Action           string    `json:"action"`
	ResourceType     string    `json:"resource_type"`
	ResourceID       string    `json:"resource_id"`
	EncryptionStatus string    `json:"encryption_status"`
	IPAddress        string    `json:"ip_address,omitempty"`
	UserAgent        string    `json:"user_agent,omitempty"`
	Signed           bool      `json:"signed"`
	CreatedAt        time.Time `json:"created_at"`
}

// MapAuditEventToResponse converts a domain audit event to an API response.
func MapAuditEventToResponse(event *auditDomain.AuditEvent) AuditEventResponse {
	return AuditEventResponse{
		ID:               event.ID.String(),
		UserID:           event.UserID.String(),
		Action:           string(event.Action),
		ResourceType:     string(event.ResourceType),
		ResourceID:       event.ResourceID.String(),
		EncryptionStatus: string(event.EncryptionStatus),
		IPAddress:        event.IPAddress,
		UserAgent:        event.UserAgent,
		Signed:           len(event.Signature) > 0,
		CreatedAt:        event.CreatedAt,
	}
}

// ListAuditEventsResponse represents a paginated list of audit events in API responses.
type ListAuditEventsResponse struct {
	Data []AuditEventResponse `json:"data"`
}

// MapAuditEventsToListResponse converts a slice of domain audit events to a list API response.
func MapAuditEventsToListResponse(events []*auditDomain.AuditEvent) ListAuditEventsResponse {
	responses := make([]AuditEventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, MapAuditEventToResponse(event))
	}
	return ListAuditEventsResponse{Data: responses}
}

// VerifyAuditEventsResponse summarizes a signature check of the caller's trail.
type VerifyAuditEventsResponse struct {
	Total           int      `json:"total"`
	Valid           int      `json:"valid"`
	Unsigned        int      `json:"unsigned"`
	InvalidEventIDs []string `json:"invalid_event_ids"`
	Intact          bool     `json:"intact"`
}

// MapVerificationResultToResponse converts a verification result to an API response.
func MapVerificationResultToResponse(result *auditDomain.VerificationResult) VerifyAuditEventsResponse {
	invalid := make([]string, 0, len(result.Invalid))
	for _, id := range result.Invalid {
		invalid = append(invalid, id.String())
	}
	return VerifyAuditEventsResponse{
		Total:           result.Total,
		Valid:           result.Valid,
		Unsigned:        result.Unsigned,
		InvalidEventIDs: invalid,
		Intact:          result.Intact(),
	}
}
