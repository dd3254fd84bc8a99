package notification

import "strings"

// StaticUserDirectory maps user ids to email addresses from configuration.
// Ids that already look like an email pass through unchanged.
type StaticUserDirectory struct {
	emails map[string]string
}

// NewStaticUserDirectory parses "id1=a@x.com,id2=b@y.com".
func NewStaticUserDirectory(spec string) *StaticUserDirectory {
	emails := make(map[string]string)
	for _, pair := range strings.Split(spec, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			emails[parts[0]] = parts[1]
		}
	}
	return &StaticUserDirectory{emails: emails}
}

func (d *StaticUserDirectory) EmailForUser(userID string) (string, bool) {
	if email, ok := d.emails[userID]; ok {
		return email, true
	}
	if strings.Contains(userID, "@") {
		return userID, true
	}
	return "", false
}
