// Package repository persists per-user key material.
//
// Each repository type has two implementations:
//   - PostgreSQL: Uses native UUID type and BYTEA for binary data
//   - MySQL: Uses BINARY(16) for UUIDs and BLOB for binary data
//
// Rows are created once and never updated. The primary key on user_keys.user_id is
// what makes lazy provisioning safe across processes: a second insert for the same
// user fails with ErrUserKeysAlreadyExist and the caller re-reads the stored row.
//
// All repositories support transaction context via database.GetTx().
package repository
