package domain

// PushPort is the narrow real-time channel the engine depends on.
// Implementations must tolerate recipients without a live connection;
// the engine treats every publish as best-effort.
type PushPort interface {
	PublishToAccount(accountID, event string, payload any) error
	PublishToAll(event string, payload any) error
}
