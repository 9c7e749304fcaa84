package models

import (
    "strconv"
    "strings"
    "time"
)

type TicketStatus string

const (
    StatusPending  TicketStatus = "PENDING"
    StatusApproved TicketStatus = "APPROVED"
    StatusRejected TicketStatus = "REJECTED"
)

func (s TicketStatus) Valid() bool {
    switch s {
    case StatusPending, StatusApproved, StatusRejected:
        return true
    }
    return false
}

// Ticket is one company+partner onboarding submission. Status is the only
// field mutated after creation, and only through the admin surface.
type Ticket struct {
    ID       uint   `json:"id" gorm:"primaryKey"`
    CustomID string `json:"custom_id" gorm:"uniqueIndex;not null"`

    // Personal data
    FullName string `json:"full_name" gorm:"not null"`
    Email    string `json:"email" gorm:"not null"`

    // Company data
    Website           string    `json:"website"`
    TradeName         string    `json:"trade_name"`
    LegalName         string    `json:"legal_name"`
    TaxID             string    `json:"tax_id" gorm:"index"`
    MonthlyRevenue    string    `json:"monthly_revenue"`
    IncorporationDate time.Time `json:"incorporation_date"`
    Phone             string    `json:"phone"`
    CompanyEmail      string    `json:"company_email"`
    TaxIDAge          int       `json:"tax_id_age"`
    PartnersCount     int       `json:"partners_count"`

    // Company address
    PostalCode     string `json:"postal_code"`
    StreetAddress  string `json:"street_address"`
    AddressNumber  string `json:"address_number"`
    District       string `json:"district"`
    AddressType    string `json:"address_type"`
    Country        string `json:"country"`
    State          string `json:"state"`
    City           string `json:"city"`
    AreaCode       string `json:"area_code"`
    AdditionalInfo string `json:"additional_info,omitempty"`
    ReferencePoint string `json:"reference_point,omitempty"`

    TermsAccepted bool `json:"terms_accepted"`

    // Partner data
    PartnerSocialID    string    `json:"partner_social_id"`
    PartnerFullName    string    `json:"partner_full_name"`
    PartnerEmail       string    `json:"partner_email"`
    PartnerPhone       string    `json:"partner_phone"`
    PartnerBirthDate   time.Time `json:"partner_birth_date"`
    PartnerMotherName  string    `json:"partner_mother_name"`
    PartnerFatherName  string    `json:"partner_father_name"`
    PartnerGender      string    `json:"partner_gender"`
    PartnerNationality string    `json:"partner_nationality"`
    PartnerDocumentRG  string    `json:"partner_document_rg"`

    // Partner address
    PartnerAddressStreet   string `json:"partner_address_street"`
    PartnerAddressNumber   string `json:"partner_address_number"`
    PartnerAddressDistrict string `json:"partner_address_district"`
    PartnerAddressZipcode  string `json:"partner_address_zipcode"`
    PartnerAddressCity     string `json:"partner_address_city"`
    PartnerAddressState    string `json:"partner_address_state"`

    // Uploaded documents (already-resolved public URLs)
    ContractFileURL           string `json:"contract_file_url"`
    BalanceFileURL            string `json:"balance_file_url"`
    AddressProofFileURL       string `json:"address_proof_file_url"`
    SelfieFileURL             string `json:"selfie_file_url"`
    IdentityFileURL           string `json:"identity_file_url"`
    CommercialContractFileURL string `json:"commercial_contract_file_url,omitempty"`

    // Identifier assigned by the external KYC verifier at creation time.
    ExternalUserID string `json:"external_user_id"`

    Status TicketStatus `json:"status" gorm:"type:varchar(16);index;default:PENDING"`

    CreatedAt time.Time `json:"created_at" gorm:"index"`
    UpdatedAt time.Time `json:"updated_at"`
}

// TicketRequest is the raw onboarding submission as sent by the form.
// Numbers and dates arrive as strings; Normalize brings the accepted
// request into canonical form before it becomes a Ticket.
type TicketRequest struct {
    FullName string `json:"full_name" validate:"required"`
    Email    string `json:"email" validate:"required,email"`

    Website           string `json:"website" validate:"required,url"`
    TradeName         string `json:"trade_name" validate:"required"`
    LegalName         string `json:"legal_name" validate:"required"`
    TaxID             string `json:"tax_id" validate:"required,cnpj"`
    MonthlyRevenue    string `json:"monthly_revenue" validate:"required"`
    IncorporationDate string `json:"incorporation_date" validate:"required,isodate"`
    Phone             string `json:"phone" validate:"required,min=10"`
    CompanyEmail      string `json:"company_email" validate:"required,email"`
    TaxIDAge          string `json:"tax_id_age" validate:"required,nonnegint"`
    PartnersCount     string `json:"partners_count" validate:"required,posint"`

    PostalCode     string `json:"postal_code" validate:"required,cep"`
    StreetAddress  string `json:"street_address" validate:"required"`
    AddressNumber  string `json:"address_number" validate:"required"`
    District       string `json:"district" validate:"required"`
    AddressType    string `json:"address_type" validate:"required"`
    Country        string `json:"country" validate:"required"`
    State          string `json:"state" validate:"required,len=2"`
    City           string `json:"city" validate:"required"`
    AreaCode       string `json:"area_code" validate:"required,digits"`
    AdditionalInfo string `json:"additional_info"`
    ReferencePoint string `json:"reference_point"`

    TermsAccepted bool `json:"terms_accepted" validate:"eq=true"`

    PartnerSocialID    string `json:"partner_social_id" validate:"required,cpf"`
    PartnerFullName    string `json:"partner_full_name" validate:"required"`
    PartnerEmail       string `json:"partner_email" validate:"required,email"`
    PartnerPhone       string `json:"partner_phone" validate:"required,min=10"`
    PartnerBirthDate   string `json:"partner_birth_date" validate:"required,isodate"`
    PartnerMotherName  string `json:"partner_mother_name" validate:"required"`
    PartnerFatherName  string `json:"partner_father_name" validate:"required"`
    PartnerGender      string `json:"partner_gender" validate:"required,oneof=Masculino Feminino"`
    PartnerNationality string `json:"partner_nationality" validate:"required"`
    PartnerDocumentRG  string `json:"partner_document_rg" validate:"required,rg"`

    PartnerAddressStreet   string `json:"partner_address_street" validate:"required"`
    PartnerAddressNumber   string `json:"partner_address_number" validate:"required"`
    PartnerAddressDistrict string `json:"partner_address_district" validate:"required"`
    PartnerAddressZipcode  string `json:"partner_address_zipcode" validate:"required,cep"`
    PartnerAddressCity     string `json:"partner_address_city" validate:"required"`
    PartnerAddressState    string `json:"partner_address_state" validate:"required,len=2"`

    ContractFileURL     string `json:"contract_file_url" validate:"required,url"`
    BalanceFileURL      string `json:"balance_file_url" validate:"required,url"`
    AddressProofFileURL string `json:"address_proof_file_url" validate:"required,url"`
    SelfieFileURL       string `json:"selfie_file_url" validate:"required,url"`
    IdentityFileURL     string `json:"identity_file_url" validate:"required,url"`
}

// DateLayout is the wire format for date fields before normalization.
const DateLayout = "2006-01-02"

// Normalize rewrites an already-validated request into canonical form:
// identifiers to digits only, dates to ISO-8601 instants. It is idempotent
// and its output still validates cleanly.
func (r *TicketRequest) Normalize() {
    r.TaxID = DigitsOnly(r.TaxID)
    r.PartnerSocialID = DigitsOnly(r.PartnerSocialID)
    r.IncorporationDate = normalizeDate(r.IncorporationDate)
    r.PartnerBirthDate = normalizeDate(r.PartnerBirthDate)
}

// ToTicket builds the persistable entity from a validated, normalized
// request. Conversion errors cannot occur after validation passed.
func (r *TicketRequest) ToTicket() Ticket {
    incorporation, _ := parseDate(r.IncorporationDate)
    birth, _ := parseDate(r.PartnerBirthDate)
    taxIDAge, _ := strconv.Atoi(r.TaxIDAge)
    partnersCount, _ := strconv.Atoi(r.PartnersCount)

    return Ticket{
        FullName: r.FullName,
        Email:    r.Email,

        Website:           r.Website,
        TradeName:         r.TradeName,
        LegalName:         r.LegalName,
        TaxID:             DigitsOnly(r.TaxID),
        MonthlyRevenue:    r.MonthlyRevenue,
        IncorporationDate: incorporation,
        Phone:             r.Phone,
        CompanyEmail:      r.CompanyEmail,
        TaxIDAge:          taxIDAge,
        PartnersCount:     partnersCount,

        PostalCode:     r.PostalCode,
        StreetAddress:  r.StreetAddress,
        AddressNumber:  r.AddressNumber,
        District:       r.District,
        AddressType:    r.AddressType,
        Country:        r.Country,
        State:          r.State,
        City:           r.City,
        AreaCode:       r.AreaCode,
        AdditionalInfo: r.AdditionalInfo,
        ReferencePoint: r.ReferencePoint,

        TermsAccepted: r.TermsAccepted,

        PartnerSocialID:    DigitsOnly(r.PartnerSocialID),
        PartnerFullName:    r.PartnerFullName,
        PartnerEmail:       r.PartnerEmail,
        PartnerPhone:       r.PartnerPhone,
        PartnerBirthDate:   birth,
        PartnerMotherName:  r.PartnerMotherName,
        PartnerFatherName:  r.PartnerFatherName,
        PartnerGender:      r.PartnerGender,
        PartnerNationality: r.PartnerNationality,
        PartnerDocumentRG:  r.PartnerDocumentRG,

        PartnerAddressStreet:   r.PartnerAddressStreet,
        PartnerAddressNumber:   r.PartnerAddressNumber,
        PartnerAddressDistrict: r.PartnerAddressDistrict,
        PartnerAddressZipcode:  r.PartnerAddressZipcode,
        PartnerAddressCity:     r.PartnerAddressCity,
        PartnerAddressState:    r.PartnerAddressState,

        ContractFileURL:     r.ContractFileURL,
        BalanceFileURL:      r.BalanceFileURL,
        AddressProofFileURL: r.AddressProofFileURL,
        SelfieFileURL:       r.SelfieFileURL,
        IdentityFileURL:     r.IdentityFileURL,

        Status: StatusPending,
    }
}

// DigitsOnly strips every non-digit rune, e.g. "12.345.678/0001-95" to
// "12345678000195".
func DigitsOnly(s string) string {
    return strings.Map(func(r rune) rune {
        if r >= '0' && r <= '9' {
            return r
        }
        return -1
    }, s)
}

func normalizeDate(s string) string {
    t, err := parseDate(s)
    if err != nil {
        return s
    }
    return t.UTC().Format(time.RFC3339)
}

// parseDate accepts both the form wire format (YYYY-MM-DD) and the
// canonical RFC 3339 instant produced by Normalize.
func parseDate(s string) (time.Time, error) {
    if t, err := time.Parse(DateLayout, s); err == nil {
        return t.UTC(), nil
    }
    return time.Parse(time.RFC3339, s)
}
