package service

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strconv"
    "time"

    "gorm.io/gorm"

    "onboarding-go/models"
    "onboarding-go/verifier"
)

var (
    ErrTicketNotFound = errors.New("ticket not found")
    // ErrUpstream marks failures of the external KYC verifier. Callers
    // surface it as a generic failure, never with transport detail.
    ErrUpstream = errors.New("upstream verifier failure")
)

// EnterpriseVerifier is the slice of the external KYC API the ticket
// lifecycle depends on.
type EnterpriseVerifier interface {
    CreateEnterprise(ctx context.Context, req verifier.CreateEnterpriseRequest) (string, error)
    UpdateEnterpriseStatus(ctx context.Context, externalID, status string) error
}

// externalStatus maps the local ticket status vocabulary onto the
// verifier's.
var externalStatus = map[models.TicketStatus]string{
    models.StatusPending:  verifier.EnterpriseStatusAnalysing,
    models.StatusApproved: verifier.EnterpriseStatusActive,
    models.StatusRejected: verifier.EnterpriseStatusRejected,
}

// TicketService owns the ticket lifecycle. It is the sole writer of ticket
// records; single-record atomicity is the storage layer's.
type TicketService struct {
    db       *gorm.DB
    verifier EnterpriseVerifier

    // failClosedSync makes UpdateStatus call the verifier before the local
    // write and abort on failure. Default is the fail-open behavior: local
    // status is authoritative, the external sync is best-effort.
    failClosedSync bool
}

func NewTicketService(db *gorm.DB, v EnterpriseVerifier, statusSyncPolicy string) *TicketService {
    return &TicketService{
        db:             db,
        verifier:       v,
        failClosedSync: statusSyncPolicy == "fail-closed",
    }
}

// NewCustomID generates the short, human-shareable ticket identifier:
// "AX" plus a slice of the base-36 unix-millisecond clock. Collisions are
// accepted as negligible and not deduplicated against storage.
func NewCustomID() string {
    s := strconv.FormatInt(time.Now().UnixMilli(), 36)
    if len(s) > 2 {
        s = s[2:]
    }
    if len(s) > 7 {
        s = s[:7]
    }
    return "AX" + s
}

// Create registers the enterprise with the external verifier and, only on
// success, persists the ticket as PENDING. A verifier failure aborts the
// whole operation with nothing persisted: single attempt, fail-closed, no
// compensation.
func (s *TicketService) Create(ctx context.Context, req *models.TicketRequest) (string, error) {
    customID := NewCustomID()

    externalUserID, err := s.verifier.CreateEnterprise(ctx, verifier.CreateEnterpriseRequest{
        Address:         req.StreetAddress,
        Cep:             req.PostalCode,
        CityAndState:    req.City + "/" + req.State,
        Document:        models.DigitsOnly(req.TaxID),
        PartnerDocument: models.DigitsOnly(req.PartnerSocialID),
        Email:           req.Email,
        Name:            req.LegalName,
        Phone:           req.Phone,
        Status:          verifier.EnterpriseStatusAnalysing,
    })
    if err != nil {
        return "", fmt.Errorf("%w: %v", ErrUpstream, err)
    }

    ticket := req.ToTicket()
    ticket.CustomID = customID
    ticket.ExternalUserID = externalUserID

    if err := s.db.WithContext(ctx).Create(&ticket).Error; err != nil {
        return "", fmt.Errorf("persist ticket: %w", err)
    }
    return customID, nil
}

// GetByCustomID is the public lookup used by the submission success page.
func (s *TicketService) GetByCustomID(ctx context.Context, customID string) (*models.Ticket, error) {
    var t models.Ticket
    if err := s.db.WithContext(ctx).Where("custom_id = ?", customID).First(&t).Error; err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrTicketNotFound
        }
        return nil, err
    }
    t = models.Redact(t, models.ViewerPublic)
    return &t, nil
}

// GetByID is the admin lookup by internal id, with the admin projection
// applied.
func (s *TicketService) GetByID(ctx context.Context, id uint) (*models.Ticket, error) {
    var t models.Ticket
    if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrTicketNotFound
        }
        return nil, err
    }
    t = models.Redact(t, models.ViewerAdmin)
    return &t, nil
}

// List returns one page of tickets ordered by created_at descending plus
// the total size of the filtered set. A non-empty search matches as a
// substring against full_name, email, phone, partner_full_name or
// custom_id; sqlite LIKE makes the match ASCII case-insensitive.
func (s *TicketService) List(ctx context.Context, search string, limit, page int) ([]models.Ticket, int64, error) {
    var items []models.Ticket
    var total int64

    tx := s.db.WithContext(ctx).Model(&models.Ticket{})
    if search != "" {
        like := "%" + search + "%"
        tx = tx.Where(
            "full_name LIKE ? OR email LIKE ? OR phone LIKE ? OR partner_full_name LIKE ? OR custom_id LIKE ?",
            like, like, like, like, like,
        )
    }

    // Count total before pagination
    if err := tx.Count(&total).Error; err != nil {
        return nil, 0, err
    }

    if err := tx.Order("created_at DESC").Limit(limit).Offset(page * limit).Find(&items).Error; err != nil {
        return nil, 0, err
    }
    // List rows get the same admin projection as the detail view, so a
    // field excluded from admins never appears on any admin surface.
    for i := range items {
        items[i] = models.Redact(items[i], models.ViewerAdmin)
    }
    return items, total, nil
}

// UpdateStatus sets the flat status field (transitions are unrestricted)
// and syncs the mapped status to the verifier keyed by the ticket's
// external id. Under the default fail-open policy the local write stands
// even when the sync fails; fail-closed syncs first and aborts on failure.
func (s *TicketService) UpdateStatus(ctx context.Context, id uint, status models.TicketStatus) error {
    if !status.Valid() {
        return fmt.Errorf("invalid status %q", status)
    }

    var t models.Ticket
    if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return ErrTicketNotFound
        }
        return err
    }

    if s.failClosedSync {
        if err := s.verifier.UpdateEnterpriseStatus(ctx, t.ExternalUserID, externalStatus[status]); err != nil {
            return fmt.Errorf("%w: %v", ErrUpstream, err)
        }
    }

    if err := s.db.WithContext(ctx).Model(&t).Update("status", status).Error; err != nil {
        return err
    }

    if !s.failClosedSync {
        if err := s.verifier.UpdateEnterpriseStatus(ctx, t.ExternalUserID, externalStatus[status]); err != nil {
            // Known inconsistency window: the local change is committed and
            // the external system has drifted until the next status change.
            log.Printf("ticket %s: status sync failed: %v", t.CustomID, err)
        }
    }
    return nil
}

// DashboardCounts are four independent counts over the full ticket set.
type DashboardCounts struct {
    CountTickets         int64 `json:"countTickets"`
    CountApprovedTickets int64 `json:"countApprovedTickets"`
    CountPendingTickets  int64 `json:"countPendingTickets"`
    CountRejectedTickets int64 `json:"countRejectedTickets"`
}

func (s *TicketService) Dashboard(ctx context.Context) (*DashboardCounts, error) {
    var counts DashboardCounts
    db := s.db.WithContext(ctx).Model(&models.Ticket{})

    if err := db.Count(&counts.CountTickets).Error; err != nil {
        return nil, err
    }
    for status, dst := range map[models.TicketStatus]*int64{
        models.StatusApproved: &counts.CountApprovedTickets,
        models.StatusPending:  &counts.CountPendingTickets,
        models.StatusRejected: &counts.CountRejectedTickets,
    } {
        if err := s.db.WithContext(ctx).Model(&models.Ticket{}).
            Where("status = ?", status).Count(dst).Error; err != nil {
            return nil, err
        }
    }
    return &counts, nil
}
