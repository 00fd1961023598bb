package bitwarden

// Status is the vault state reported by "bw status".
type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusLocked          Status = "locked"
	StatusUnlocked        Status = "unlocked"
)

// SessionToken is the opaque credential from "bw unlock --raw". It lives
// in process memory only and travels to child processes through the
// BW_SESSION environment variable, never on a command line.
type SessionToken string

// ItemType mirrors the numeric item types of the CLI.
type ItemType int

const (
	TypeLogin    ItemType = 1
	TypeNote     ItemType = 2
	TypeCard     ItemType = 3
	TypeIdentity ItemType = 4
)

func (it ItemType) String() string {
	switch it {
	case TypeLogin:
		return "login"
	case TypeNote:
		return "note"
	case TypeCard:
		return "card"
	case TypeIdentity:
		return "identity"
	}
	return "other"
}

// ItemSummary is one vault entry without any secret material. Summaries
// are immutable once parsed and are replaced wholesale on sync.
type ItemSummary struct {
	ID       string
	Name     string
	Username string
	Type     ItemType
}

// HasPassword tells whether fetching a secret for this item can succeed.
func (it ItemSummary) HasPassword() bool {
	return it.Type == TypeLogin
}

// Wipe overwrites secret material in place. Callers use it on fetched
// passwords as soon as the value has been handed over.
func Wipe(buffer []byte) {
	for at := range buffer {
		buffer[at] = 0
	}
}
