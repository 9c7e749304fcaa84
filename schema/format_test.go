package schema

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestFormatForDisplayPostalCodeMask(t *testing.T) {
    assert.Equal(t, "01310-100", FormatForDisplay("postal_code", "01310100"))
}

func TestFormatForDisplayMasks(t *testing.T) {
    tests := []struct {
        name  string
        field string
        raw   string
        want  string
    }{
        {"cnpj full", "tax_id", "12345678000195", "12.345.678/0001-95"},
        {"cnpj with punctuation already", "tax_id", "12.345.678/0001-95", "12.345.678/0001-95"},
        {"phone", "phone", "11987654321", "(11) 98765-4321"},
        {"cpf", "partner_social_id", "52998224725", "529.982.247-25"},
        {"partial input stops at last digit", "postal_code", "013", "013"},
        {"no digits renders empty, not the raw value", "phone", "abc", ""},
        {"truncates beyond mask capacity", "area_code", "11999", "119"},
        {"unmasked passthrough", "full_name", "Maria Silva", "Maria Silva"},
        {"unknown field passthrough", "nope", "raw", "raw"},
        {"select passthrough", "partner_gender", "Feminino", "Feminino"},
        {"file passthrough", "selfie_file_url", "https://x/y.png", "https://x/y.png"},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            assert.Equal(t, tt.want, FormatForDisplay(tt.field, tt.raw))
        })
    }
}

func TestFormatCurrencyMinorUnits(t *testing.T) {
    // Raw digits are centavos: 5000000 -> 50000.00.
    assert.Equal(t, FormatAmount(50000.00), FormatCurrency("5000000"))
    assert.Equal(t, FormatAmount(50000.00), FormatForDisplay("monthly_revenue", "R$ 50.000,00"))
    assert.Equal(t, FormatAmount(0.09), FormatCurrency("9"))
    assert.Equal(t, "", FormatCurrency("abc"))
}

func TestFormatAmountLocale(t *testing.T) {
    got := FormatAmount(50000.00)
    assert.Contains(t, got, "R$")
    assert.Contains(t, got, "50.000,00")
}
