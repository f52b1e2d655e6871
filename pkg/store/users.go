package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/waleedan253-cmd/Moxiepro/internal/util"
	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

const (
	userKeyPrefix     = "user:"
	referralKeyPrefix = "referral:"
)

// UserDirectory persists user records and the referral-code index. It owns
// the user:* and referral:* key namespaces exclusively. User keys carry no
// TTL; users are never deleted.
type UserDirectory struct {
	kv  KV
	now func() time.Time
}

// NewUserDirectory builds a directory on the given KV store.
func NewUserDirectory(kv KV) *UserDirectory {
	return &UserDirectory{kv: kv, now: time.Now}
}

// GetOrCreate looks up the user by lower-cased email, creating the record and
// its referral-code index entry on first sight.
func (d *UserDirectory) GetOrCreate(ctx context.Context, email string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, found, err := d.get(ctx, email)
	if err != nil {
		return domain.User{}, err
	}
	if found {
		return user, nil
	}

	user = domain.User{
		Email:        email,
		Audits:       []string{},
		ReferralCode: newReferralCode(email),
		CreatedAt:    d.now().UTC(),
	}
	if err := d.put(ctx, user); err != nil {
		return domain.User{}, err
	}
	if err := d.kv.Set(ctx, referralKeyPrefix+user.ReferralCode, user.Email, 0); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// ResolveReferralCode maps a referral code back to its owner.
func (d *UserDirectory) ResolveReferralCode(ctx context.Context, code string) (domain.User, bool, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.User{}, false, nil
	}
	email, found, err := d.kv.Get(ctx, referralKeyPrefix+code)
	if err != nil || !found {
		return domain.User{}, false, err
	}
	user, err := d.GetOrCreate(ctx, email)
	if err != nil {
		return domain.User{}, false, err
	}
	return user, true, nil
}

// AppendAudit adds an audit id to the user's list, once.
func (d *UserDirectory) AppendAudit(ctx context.Context, email, auditID string) error {
	return d.update(ctx, email, func(u *domain.User) {
		for _, id := range u.Audits {
			if id == auditID {
				return
			}
		}
		u.Audits = append(u.Audits, auditID)
	})
}

// CreditReferral bumps the referrer's count by one and credits the tiered
// amount for their current volume.
func (d *UserDirectory) CreditReferral(ctx context.Context, referrerEmail string) error {
	return d.update(ctx, referrerEmail, func(u *domain.User) {
		u.ReferralCredits += ReferralCreditAmount(u.ReferralCount)
		u.ReferralCount++
	})
}

// MarkReferred records who referred this user. A user can only ever be
// attributed to one referrer; later calls are no-ops.
func (d *UserDirectory) MarkReferred(ctx context.Context, email, referrerEmail string) error {
	return d.update(ctx, email, func(u *domain.User) {
		if u.ReferredBy == "" {
			u.ReferredBy = strings.ToLower(referrerEmail)
		}
	})
}

// ReferralCreditAmount returns the credit earned for the next referral given
// the referrer's current count. Tiers reward volume.
func ReferralCreditAmount(referralCount int) int {
	switch {
	case referralCount < 5:
		return 3
	case referralCount < 15:
		return 5
	default:
		return 8
	}
}

func (d *UserDirectory) get(ctx context.Context, email string) (domain.User, bool, error) {
	raw, found, err := d.kv.Get(ctx, userKeyPrefix+email)
	if err != nil || !found {
		return domain.User{}, false, err
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return domain.User{}, false, fmt.Errorf("%w: decode user %s: %v", domain.ErrDatabase, email, err)
	}
	return user, true, nil
}

func (d *UserDirectory) put(ctx context.Context, user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: encode user %s: %v", domain.ErrDatabase, user.Email, err)
	}
	return d.kv.Set(ctx, userKeyPrefix+user.Email, string(raw), 0)
}

// update mutates the user record under the KV store's optimistic transaction
// so concurrent credit updates cannot lose increments.
func (d *UserDirectory) update(ctx context.Context, email string, fn func(*domain.User)) error {
	email = strings.ToLower(strings.TrimSpace(email))
	return d.kv.Update(ctx, userKeyPrefix+email, 0, func(current string, found bool) (string, error) {
		if !found {
			return "", fmt.Errorf("%w: user %s not found", domain.ErrDatabase, email)
		}
		var user domain.User
		if err := json.Unmarshal([]byte(current), &user); err != nil {
			return "", fmt.Errorf("%w: decode user %s: %v", domain.ErrDatabase, email, err)
		}
		fn(&user)
		raw, err := json.Marshal(user)
		if err != nil {
			return "", fmt.Errorf("%w: encode user %s: %v", domain.ErrDatabase, email, err)
		}
		return string(raw), nil
	})
}

// newReferralCode derives a code like "JANEDOE-X7K" from the email local part.
// Collisions are possible but vanishingly rare for this volume.
func newReferralCode(email string) string {
	local := email
	if i := strings.IndexByte(local, '@'); i >= 0 {
		local = local[:i]
	}
	var sb strings.Builder
	for _, c := range strings.ToUpper(local) {
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			sb.WriteRune(c)
		}
	}
	if sb.Len() == 0 {
		sb.WriteString("USER")
	}
	return sb.String() + "-" + strings.ToUpper(util.RandomToken(3))
}
