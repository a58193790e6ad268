package domain

// SealedContent is the output of one symmetric encryption: ciphertext without the
// tag, the 16-byte nonce, and the detached 16-byte authentication tag.
type SealedContent struct {
	Ciphertext []byte
	Nonce      []byte
	AuthTag    []byte
}

// EncryptedPayload is what one recipient needs to read one content item. Payloads
// produced by the same encryption call share Ciphertext, Nonce and AuthTag and differ
// only in RecipientID and WrappedKey. Immutable once written.
type EncryptedPayload struct {
	RecipientID string
	Ciphertext  []byte
	Nonce       []byte
	AuthTag     []byte
	WrappedKey  []byte
	WrapMethod  WrapMethod
	IsEncrypted bool
}

// Sealed returns the symmetric part of the payload.
func (p *EncryptedPayload) Sealed() SealedContent {
	return SealedContent{
		Ciphertext: p.Ciphertext,
		Nonce:      p.Nonce,
		AuthTag:    p.AuthTag,
	}
}

// Recipient is one member of a recipient set. Multi-recipient content uses
// WrapRSAOAEP with a base64 public key; single-owner content is the degenerate
// one-element set using WrapOwnerKey with the owner's base64 symmetric key.
type Recipient struct {
	ID     string
	Method WrapMethod
	Key    string
}

// NewPublicKeyRecipient builds an RSA-OAEP recipient.
func NewPublicKeyRecipient(id, publicKey string) Recipient {
	return Recipient{ID: id, Method: WrapRSAOAEP, Key: publicKey}
}

// NewOwnerRecipient builds a single-owner recipient wrapped under the owner's symmetric key.
func NewOwnerRecipient(id, symmetricKey string) Recipient {
	return Recipient{ID: id, Method: WrapOwnerKey, Key: symmetricKey}
}

// RecipientFailure names a recipient whose key could not be wrapped.
type RecipientFailure struct {
	RecipientID string
	Err         error
}

// Envelope is the result of a multi-recipient encryption: one payload per recipient
// that could be served, plus the recipients that were skipped.
type Envelope struct {
	Payloads []EncryptedPayload
	Failed   []RecipientFailure
}

// FailedRecipientIDs returns the identifiers of skipped recipients.
func (e *Envelope) FailedRecipientIDs() []string {
	ids := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		ids = append(ids, f.RecipientID)
	}
	return ids
}

// PayloadFor returns the payload addressed to recipientID, if any.
func (e *Envelope) PayloadFor(recipientID string) (*EncryptedPayload, bool) {
	for i := range e.Payloads {
		if e.Payloads[i].RecipientID == recipientID {
			return &e.Payloads[i], true
		}
	}
	return nil, false
}
