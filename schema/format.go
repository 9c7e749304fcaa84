package schema

import (
    "strconv"
    "strings"

    "golang.org/x/text/language"
    "golang.org/x/text/message"
    "golang.org/x/text/number"
)

var currencyPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatForDisplay applies a field's display formatting to raw input:
// currency fields get locale currency formatting, masked fields get their
// digit mask, everything else (including select and file fields) passes
// through unchanged. It never fails; input beyond the mask's digit capacity
// is truncated silently.
func FormatForDisplay(fieldName, raw string) string {
    field, ok := FindField(fieldName)
    if !ok || field.Kind == KindSelect || field.Kind == KindFile {
        return raw
    }
    if field.IsCurrency {
        return FormatCurrency(raw)
    }
    if field.Mask == "" {
        return raw
    }
    digits := digitsOnly(raw)
    if len(digits) > len(field.Mask) {
        digits = digits[:len(field.Mask)]
    }
    return applyMask(digits, field.Mask)
}

// applyMask fills '9' slots with input digits consumed left to right and
// copies literal mask runes. Formatting stops when input runs out.
func applyMask(digits, mask string) string {
    var b strings.Builder
    i := 0
    for _, m := range mask {
        if i >= len(digits) {
            break
        }
        if m == '9' {
            b.WriteByte(digits[i])
            i++
        } else {
            b.WriteRune(m)
        }
    }
    return b.String()
}

// FormatCurrency strips non-digits, interprets what remains as centavos and
// renders the amount in Brazilian real.
func FormatCurrency(raw string) string {
    digits := digitsOnly(raw)
    if digits == "" {
        return ""
    }
    cents, err := strconv.ParseFloat(digits, 64)
    if err != nil {
        return raw
    }
    return FormatAmount(cents / 100)
}

// FormatAmount renders a monetary value with the pt-BR locale, e.g.
// 50000.00 -> "R$ 50.000,00".
func FormatAmount(v float64) string {
    return currencyPrinter.Sprintf("R$ %v",
        number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

func digitsOnly(s string) string {
    return strings.Map(func(r rune) rune {
        if r >= '0' && r <= '9' {
            return r
        }
        return -1
    }, s)
}
