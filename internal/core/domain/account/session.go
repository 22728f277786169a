package account

type SessionToken string

// SessionIssuer issues signed tokens binding account identity and role.
// Verification is stateless, no store round-trip is required.
type SessionIssuer interface {
	Issue(accountID ID, role Role) (SessionToken, error)
	Verify(token SessionToken) (accountID ID, role Role, err error)
}
