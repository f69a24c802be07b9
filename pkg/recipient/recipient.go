package recipient

// Type is the kind of addressable target.
type Type string

const (
	TypeEmail Type = "email"
	TypeUser  Type = "user"
	TypeRole  Type = "role"
)

// Recipient is one entry of the recipient list.
type Recipient struct {
	Type  Type   `json:"type"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// Counts splits recipients by type.
func Counts(list []Recipient) (emails, groups, users int) {
	for _, r := range list {
		switch r.Type {
		case TypeEmail:
			emails++
		case TypeRole:
			groups++
		case TypeUser:
			users++
		}
	}
	return emails, groups, users
}
