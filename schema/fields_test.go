package schema

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestRegistryFieldNamesAreUnique(t *testing.T) {
    seen := make(map[string]bool)
    for _, section := range Sections() {
        for _, f := range section.Fields {
            assert.False(t, seen[f.Name], "duplicate field name %q", f.Name)
            seen[f.Name] = true
        }
    }
    assert.NotEmpty(t, seen)
}

func TestRegistryInvariants(t *testing.T) {
    for _, section := range Sections() {
        require.NotEmpty(t, section.Title)
        require.NotEmpty(t, section.Fields, "section %q has no fields", section.Title)

        for _, f := range section.Fields {
            if f.Kind == KindSelect {
                assert.NotEmpty(t, f.Options, "select field %q needs options", f.Name)
            } else {
                assert.Empty(t, f.Options, "non-select field %q must not have options", f.Name)
            }

            if f.Kind == KindFile {
                assert.NotEmpty(t, f.Accept, "file field %q needs an accept map", f.Name)
            }

            if f.IsCurrency {
                assert.Empty(t, f.Mask, "field %q may not combine mask and currency", f.Name)
            }
        }
    }
}

func TestFindField(t *testing.T) {
    f, ok := FindField("tax_id")
    require.True(t, ok)
    assert.Equal(t, "99.999.999/9999-99", f.Mask)

    f, ok = FindField("partner_gender")
    require.True(t, ok)
    assert.Equal(t, KindSelect, f.Kind)
    assert.Equal(t, []string{"Masculino", "Feminino"}, f.Options)

    _, ok = FindField("no_such_field")
    assert.False(t, ok)
}

func TestSectionOrderIsStable(t *testing.T) {
    titles := make([]string, 0, len(Sections()))
    for _, s := range Sections() {
        titles = append(titles, s.Title)
    }
    assert.Equal(t, []string{
        "Dados pessoais",
        "Dados da Empresa",
        "Endereço da Empresa",
        "Dados dos Sócios",
        "Endereço do sócio",
        "Termos e Condições de Uso",
    }, titles)
}
