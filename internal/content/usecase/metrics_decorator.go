package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	contentDomain "github.com/allisson/sealfeed/internal/content/domain"
	"github.com/allisson/sealfeed/internal/metrics"
)

// contentUseCaseWithMetrics decorates ContentUseCase with metrics instrumentation.
type contentUseCaseWithMetrics struct {
	next    ContentUseCase
	metrics metrics.BusinessMetrics
}

// NewContentUseCaseWithMetrics wraps a ContentUseCase with metrics recording.
func NewContentUseCaseWithMetrics(useCase ContentUseCase, m metrics.BusinessMetrics) ContentUseCase {
	return &contentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *contentUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	c.metrics.RecordOperation(ctx, "content", operation, status)
	c.metrics.RecordDuration(ctx, "content", operation, time.Since(start), status)
}

// CreateEncrypted records metrics for single-owner content creation.
func (c *contentUseCaseWithMetrics) CreateEncrypted(
	ctx context.Context,
	contentType contentDomain.ContentType,
	content string,
	ownerID uuid.UUID,
) (*contentDomain.CreateResult, error) {
	start := time.Now()
	result, err := c.next.CreateEncrypted(ctx, contentType, content, ownerID)
	c.record(ctx, "content_create", start, err)
	return result, err
}

// CreateEncryptedForRecipients records metrics for multi-recipient content creation.
func (c *contentUseCaseWithMetrics) CreateEncryptedForRecipients(
	ctx context.Context,
	contentType contentDomain.ContentType,
	content string,
	senderID uuid.UUID,
	recipientIDs []uuid.UUID,
) (*contentDomain.CreateResult, error) {
	start := time.Now()
	result, err := c.next.CreateEncryptedForRecipients(ctx, contentType, content, senderID, recipientIDs)
	c.record(ctx, "content_create_for_recipients", start, err)
	return result, err
}

// ReadDecrypted records metrics for content reads.
func (c *contentUseCaseWithMetrics) ReadDecrypted(
	ctx context.Context,
	ref contentDomain.ContentRef,
	requestingUserID uuid.UUID,
) (string, error) {
	start := time.Now()
	content, err := c.next.ReadDecrypted(ctx, ref, requestingUserID)
	c.record(ctx, "content_read", start, err)
	return content, err
}

// ReadManyDecrypted records metrics for batched content reads.
func (c *contentUseCaseWithMetrics) ReadManyDecrypted(
	ctx context.Context,
	refs []contentDomain.ContentRef,
	requestingUserID uuid.UUID,
) ([]string, error) {
	start := time.Now()
	contents, err := c.next.ReadManyDecrypted(ctx, refs, requestingUserID)
	c.record(ctx, "content_read_many", start, err)
	return contents, err
}

// GetOwner records metrics for owner lookups.
func (c *contentUseCaseWithMetrics) GetOwner(ctx context.Context, ref contentDomain.ContentRef) (uuid.UUID, error) {
	start := time.Now()
	ownerID, err := c.next.GetOwner(ctx, ref)
	c.record(ctx, "content_get_owner", start, err)
	return ownerID, err
}

// Delete records metrics for content deletion.
func (c *contentUseCaseWithMetrics) Delete(ctx context.Context, ref contentDomain.ContentRef) error {
	start := time.Now()
	err := c.next.Delete(ctx, ref)
	c.record(ctx, "content_delete", start, err)
	return err
}
