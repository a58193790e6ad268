package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	cryptoUseCase "github.com/allisson/sealfeed/internal/crypto/usecase"
)

// RunProvisionKeys makes sure a user has a key pair and prints its public half.
// Running it again for the same user prints the same key.
func RunProvisionKeys(
	ctx context.Context,
	keyUseCase cryptoUseCase.KeyUseCase,
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

	keys, err := keyUseCase.GetOrCreateUserKeys(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to provision user keys: %w", err)
	}

	if format == "json" {
		output := map[string]string{
			"user_id":    userID.String(),
			"public_key": keys.PublicKey,
		}
		jsonBytes, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
	} else {
		_, _ = fmt.Fprintf(writer, "User:       %s\n", userID)
		_, _ = fmt.Fprintf(writer, "Public Key: %s\n", keys.PublicKey)
	}

	logger.Info("user keys provisioned", slog.String("user_id", userID.String()))
	return nil
}
