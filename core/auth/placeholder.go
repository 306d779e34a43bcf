package auth

import (
	"context"
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

// Placeholder accepts any non-empty token. It is not a security boundary.
// Tokens it issues are base64("<userID>:<unix millis>") and decode back to
// the user id, but foreign tokens are accepted too.
type Placeholder struct {
	now func() time.Time
}

func NewPlaceholder() *Placeholder {
	return &Placeholder{now: time.Now}
}

func (p *Placeholder) Issue(ctx context.Context, userID string) (string, error) {
	raw := userID + ":" + strconv.FormatInt(p.now().UnixMilli(), 10)
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

func (p *Placeholder) Authenticate(ctx context.Context, token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrInvalidToken
	}

	id := Identity{Token: token}
	if raw, err := base64.StdEncoding.DecodeString(token); err == nil {
		if userID, _, ok := strings.Cut(string(raw), ":"); ok {
			id.UserID = userID
		}
	}
	return id, nil
}
