package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	auditDomain "github.com/allisson/sealfeed/internal/audit/domain"
	auditUseCase "github.com/allisson/sealfeed/internal/audit/usecase"
)

// RunVerifyAuditLogs checks the HMAC signature of every audit event of one user.
// Returns an error when any event is unsigned or fails verification so the process
// exits non-zero.
func RunVerifyAuditLogs(
	ctx context.Context,
	auditUseCase auditUseCase.AuditUseCase,
	logger *slog.Logger,
	writer io.Writer,
	rawUserID string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	userID, err := parseUserID(rawUserID)
	if err != nil {
		return err
	}

	logger.Info("verifying audit logs", slog.String("user_id", userID.String()))

	result, err := auditUseCase.Verify(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to verify audit logs: %w", err)
	}

	if format == "json" {
		if err := outputVerifyJSON(writer, result); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputVerifyText(writer, userID.String(), result)
	}

	logger.Info("verification completed",
		slog.Int("total_checked", result.Total),
		slog.Int("valid", result.Valid),
		slog.Int("invalid", len(result.Invalid)),
		slog.Int("unsigned", result.Unsigned),
	)

	if !result.Intact() {
		return fmt.Errorf(
			"integrity check failed: %d invalid, %d unsigned event(s)",
			len(result.Invalid),
			result.Unsigned,
		)
	}

	return nil
}

func outputVerifyText(writer io.Writer, userID string, result *auditDomain.VerificationResult) {
	_, _ = fmt.Fprintf(writer, "Audit Log Integrity Verification\n")
	_, _ = fmt.Fprintf(writer, "=================================\n\n")
	_, _ = fmt.Fprintf(writer, "User: %s\n\n", userID)

	_, _ = fmt.Fprintf(writer, "Total Checked:  %d\n", result.Total)
	_, _ = fmt.Fprintf(writer, "Valid:          %d\n", result.Valid)
	_, _ = fmt.Fprintf(writer, "Unsigned:       %d\n", result.Unsigned)
	_, _ = fmt.Fprintf(writer, "Invalid:        %d\n\n", len(result.Invalid))

	switch {
	case len(result.Invalid) > 0:
		_, _ = fmt.Fprintf(writer, "WARNING: %d log(s) failed integrity check!\n\n", len(result.Invalid))
		_, _ = fmt.Fprintf(writer, "Invalid Log IDs:\n")
		for _, id := range result.Invalid {
			_, _ = fmt.Fprintf(writer, "  - %s\n", id)
		}
		_, _ = fmt.Fprintf(writer, "\nStatus: FAILED\n")
	case result.Unsigned > 0:
		_, _ = fmt.Fprintf(writer, "WARNING: %d log(s) carry no signature\n\n", result.Unsigned)
		_, _ = fmt.Fprintf(writer, "Status: FAILED\n")
	case result.Total == 0:
		_, _ = fmt.Fprintf(writer, "Status: No logs found for user\n")
	default:
		_, _ = fmt.Fprintf(writer, "Status: PASSED\n")
	}
}

func outputVerifyJSON(writer io.Writer, result *auditDomain.VerificationResult) error {
	invalid := make([]string, 0, len(result.Invalid))
	for _, id := range result.Invalid {
		invalid = append(invalid, id.String())
	}

	output := map[string]any{
		"total_checked":  result.Total,
		"valid_count":    result.Valid,
		"unsigned_count": result.Unsigned,
		"invalid_count":  len(result.Invalid),
		"invalid_logs":   invalid,
		"passed":         result.Intact(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
	return nil
}
