package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/waleedan253-cmd/Moxiepro/internal/util"
	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

const (
	// AuditTTL is how long an audit and its URL-index entry live.
	AuditTTL = 30 * 24 * time.Hour
	// PDFTTL is the access window for a purchased PDF.
	PDFTTL = 60 * 24 * time.Hour

	urlKeyPrefix = "url:"
)

// AuditRepository persists audits and the URL cache index. It owns the
// audit_* and url:* key namespaces exclusively.
type AuditRepository struct {
	kv  KV
	now func() time.Time
}

// NewAuditRepository builds a repository on the given KV store.
func NewAuditRepository(kv KV) *AuditRepository {
	return &AuditRepository{kv: kv, now: time.Now}
}

// Save allocates an id, stamps the 30-day window and writes the audit record
// plus the URL-index entry. The two writes are not transactional: the audit
// record is authoritative, the index is a rebuildable cache.
func (r *AuditRepository) Save(ctx context.Context, profileURL, userEmail string, data domain.AuditData) (domain.Audit, error) {
	now := r.now().UTC()
	audit := domain.Audit{
		ID:         util.NewAuditID(now),
		ProfileURL: profileURL,
		UserEmail:  userEmail,
		IsPaid:     false,
		AuditData:  data,
		CreatedAt:  now,
		ExpiresAt:  now.Add(AuditTTL),
	}
	if err := r.write(ctx, audit, AuditTTL); err != nil {
		return domain.Audit{}, err
	}
	urlKey := urlKeyPrefix + NormalizeURL(profileURL)
	if err := r.kv.Set(ctx, urlKey, audit.ID, AuditTTL); err != nil {
		return domain.Audit{}, err
	}
	return audit, nil
}

// Get returns the audit by id.
func (r *AuditRepository) Get(ctx context.Context, id string) (domain.Audit, bool, error) {
	raw, found, err := r.kv.Get(ctx, id)
	if err != nil || !found {
		return domain.Audit{}, false, err
	}
	var audit domain.Audit
	if err := json.Unmarshal([]byte(raw), &audit); err != nil {
		return domain.Audit{}, false, fmt.Errorf("%w: decode audit %s: %v", domain.ErrDatabase, id, err)
	}
	return audit, true, nil
}

// Update applies fn to the stored audit and re-writes it with the TTL
// remaining until the original expiresAt, so updates never extend an audit's
// life beyond its 30-day window.
func (r *AuditRepository) Update(ctx context.Context, id string, fn func(*domain.Audit)) (domain.Audit, error) {
	audit, found, err := r.Get(ctx, id)
	if err != nil {
		return domain.Audit{}, err
	}
	if !found {
		return domain.Audit{}, domain.ErrAuditNotFound
	}
	originalExpiry := audit.ExpiresAt
	fn(&audit)
	audit.ExpiresAt = originalExpiry

	remaining := originalExpiry.Sub(r.now())
	if remaining <= 0 {
		return domain.Audit{}, domain.ErrAuditExpired
	}
	if err := r.write(ctx, audit, remaining); err != nil {
		return domain.Audit{}, err
	}
	return audit, nil
}

// FindByURL resolves a profile URL to a cached audit id via the URL index.
func (r *AuditRepository) FindByURL(ctx context.Context, profileURL string) (string, bool, error) {
	return r.kv.Get(ctx, urlKeyPrefix+NormalizeURL(profileURL))
}

// MarkPaid flips the paid flag and stamps the PDF fields.
func (r *AuditRepository) MarkPaid(ctx context.Context, id, pdfURL string) (domain.Audit, error) {
	now := r.now().UTC()
	pdfExpiry := now.Add(PDFTTL)
	return r.Update(ctx, id, func(a *domain.Audit) {
		a.IsPaid = true
		a.PDFGeneratedAt = &now
		a.PDFURL = pdfURL
		a.PDFExpiresAt = &pdfExpiry
	})
}

func (r *AuditRepository) write(ctx context.Context, audit domain.Audit, ttl time.Duration) error {
	raw, err := json.Marshal(audit)
	if err != nil {
		return fmt.Errorf("%w: encode audit %s: %v", domain.ErrDatabase, audit.ID, err)
	}
	return r.kv.Set(ctx, audit.ID, string(raw), ttl)
}
