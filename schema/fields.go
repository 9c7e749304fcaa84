// Package schema holds the declarative description of the onboarding form:
// every field, its display formatting rules and its grouping into ordered
// sections. The registry is fixed at startup and immutable; the server and
// the submitting client both render and validate from it.
package schema

// FieldKind discriminates how a field is rendered and which raw value shape
// it carries.
type FieldKind string

const (
    KindText     FieldKind = "text"
    KindNumber   FieldKind = "number"
    KindDate     FieldKind = "date"
    KindCheckbox FieldKind = "checkbox"
    KindSelect   FieldKind = "select"
    KindFile     FieldKind = "file"
)

// Field describes one form field. Mask positions marked '9' consume input
// digits; all other mask runes are literals. Mask and IsCurrency are
// mutually exclusive.
type Field struct {
    Name        string              `json:"name"`
    Label       string              `json:"label"`
    Placeholder string              `json:"placeholder,omitempty"`
    Description string              `json:"description"`
    Kind        FieldKind           `json:"type"`
    Mask        string              `json:"mask,omitempty"`
    IsCurrency  bool                `json:"is_currency,omitempty"`
    Options     []string            `json:"options,omitempty"`
    Accept      map[string][]string `json:"accept,omitempty"`
}

// Section is an ordered group of fields under a title. Section order and
// field order are significant.
type Section struct {
    Title  string  `json:"title"`
    Fields []Field `json:"fields"`
}

var sections = []Section{
    {
        Title: "Dados pessoais",
        Fields: []Field{
            {Name: "full_name", Label: "Nome", Placeholder: "Nome completo", Description: "Informe o seu nome completo.", Kind: KindText},
            {Name: "email", Label: "E-mail", Placeholder: "Informe seu e-mail", Description: "Informe um e-mail válido para contato.", Kind: KindText},
        },
    },
    {
        Title: "Dados da Empresa",
        Fields: []Field{
            {Name: "website", Label: "Site da Plataforma", Placeholder: "https://www.suaempresa.com", Description: "Informe o site da sua empresa ou plataforma principal.", Kind: KindText},
            {Name: "trade_name", Label: "Nome Fantasia", Placeholder: "Ex: Sua Empresa", Description: "Nome pelo qual sua empresa é conhecida publicamente.", Kind: KindText},
            {Name: "legal_name", Label: "Razão Social", Placeholder: "Razão Social Ltda", Description: "Nome jurídico registrado da sua empresa.", Kind: KindText},
            {Name: "tax_id", Label: "Número do CNPJ", Placeholder: "00.000.000/0000-00", Description: "Informe o número do CNPJ da empresa.", Kind: KindText, Mask: "99.999.999/9999-99"},
            {Name: "monthly_revenue", Label: "Faturamento Mensal", Placeholder: "Ex: R$ 50.000,00", Description: "Informe o faturamento médio mensal.", Kind: KindText, IsCurrency: true},
            {Name: "incorporation_date", Label: "Data de Constituição", Description: "Data de abertura oficial da empresa.", Kind: KindDate},
            {Name: "phone", Label: "Telefone", Placeholder: "(11) 98765-4321", Description: "Número de contato principal da empresa.", Kind: KindText, Mask: "(99) 99999-9999"},
            {Name: "company_email", Label: "E-mail", Placeholder: "contato@suaempresa.com", Description: "E-mail oficial para contato empresarial.", Kind: KindText},
            {Name: "tax_id_age", Label: "Tempo de Constituição do CNPJ", Placeholder: "Ex: 5 anos", Description: "Informe quantos anos desde a constituição do CNPJ.", Kind: KindNumber},
            {Name: "partners_count", Label: "Quantidade de Sócios", Placeholder: "Ex: 3", Description: "Informe o número de sócios da empresa.", Kind: KindNumber},
            {Name: "contract_file_url", Label: "Contrato Social e Última Atualização", Description: "Faça o upload do contrato social com a última atualização.", Kind: KindFile, Accept: map[string][]string{
                "application/pdf":    {".pdf"},
                "application/msword": {".doc", ".docx"},
            }},
            {Name: "balance_file_url", Label: "Balanço e Faturamento do Último Período", Description: "Envie o balanço ou previsão de faturamento, conforme aplicável.", Kind: KindFile, Accept: map[string][]string{
                "application/pdf":    {".pdf"},
                "application/msword": {".doc", ".docx"},
            }},
        },
    },
    {
        Title: "Endereço da Empresa",
        Fields: []Field{
            {Name: "postal_code", Label: "CEP", Placeholder: "00000-000", Description: "Informe o CEP da empresa.", Kind: KindText, Mask: "99999-999"},
            {Name: "street_address", Label: "Endereço", Placeholder: "Ex: Av. Paulista, 1000", Description: "Informe o endereço completo da empresa.", Kind: KindText},
            {Name: "address_number", Label: "Número", Placeholder: "Ex: 1000", Description: "Número do endereço.", Kind: KindText},
            {Name: "district", Label: "Bairro", Placeholder: "Centro", Description: "Informe o bairro.", Kind: KindText},
            {Name: "address_type", Label: "Tipo de Endereço", Placeholder: "Comercial/Residencial", Description: "Informe o tipo do endereço.", Kind: KindText},
            {Name: "country", Label: "País", Placeholder: "Ex: Brasil", Description: "País onde a empresa está localizada.", Kind: KindText},
            {Name: "state", Label: "Estado (Sigla)", Placeholder: "Ex: SP", Description: "Estado (UF).", Kind: KindText},
            {Name: "city", Label: "Cidade", Placeholder: "Ex: São Paulo", Description: "Cidade onde a empresa está localizada.", Kind: KindText},
            {Name: "area_code", Label: "DDD da Região", Placeholder: "Ex: 11", Description: "Código DDD.", Kind: KindText, Mask: "999"},
            {Name: "additional_info", Label: "Complemento", Placeholder: "Ex: Sala 101", Description: "Complemento do endereço, se houver.", Kind: KindText},
            {Name: "reference_point", Label: "Ponto de Referência", Placeholder: "Próximo ao metrô", Description: "Ponto de referência do endereço.", Kind: KindText},
            {Name: "address_proof_file_url", Label: "Comprovante de Endereço do CNPJ", Description: "Faça o upload do comprovante de endereço do CNPJ.", Kind: KindFile, Accept: map[string][]string{
                "application/pdf": {".pdf"},
                "image/*":         {".jpg", ".jpeg", ".png"},
            }},
        },
    },
    {
        Title: "Dados dos Sócios",
        Fields: []Field{
            {Name: "partner_social_id", Label: "CPF", Placeholder: "000.000.000-00", Description: "CPF do sócio.", Kind: KindText, Mask: "999.999.999-99"},
            {Name: "partner_document_rg", Label: "RG", Placeholder: "00.000.000-0", Description: "RG do sócio.", Kind: KindText, Mask: "99.999.999-9"},
            {Name: "partner_full_name", Label: "Nome do Sócio", Placeholder: "Nome completo", Description: "Nome completo do sócio.", Kind: KindText},
            {Name: "partner_email", Label: "E-mail", Placeholder: "email@socio.com", Description: "E-mail do sócio.", Kind: KindText},
            {Name: "partner_phone", Label: "Telefone", Placeholder: "(11) 98765-4321", Description: "Telefone do sócio.", Kind: KindText, Mask: "(99) 99999-9999"},
            {Name: "partner_birth_date", Label: "Data de Nascimento", Description: "Data de nascimento do sócio.", Kind: KindDate},
            {Name: "partner_mother_name", Label: "Nome da Mãe", Placeholder: "Nome completo", Description: "Nome da mãe do sócio.", Kind: KindText},
            {Name: "partner_father_name", Label: "Nome do Pai", Placeholder: "Nome completo", Description: "Nome do pai do sócio.", Kind: KindText},
            {Name: "partner_gender", Label: "Gênero", Description: "Gênero do sócio.", Kind: KindSelect, Options: []string{"Masculino", "Feminino"}},
            {Name: "partner_nationality", Label: "Nacionalidade", Placeholder: "Brasileiro", Description: "Nacionalidade do sócio.", Kind: KindText},
            {Name: "selfie_file_url", Label: "Selfie (Segurando o Documento)", Description: "Faça o upload de uma selfie do sócio segurando o documento.", Kind: KindFile, Accept: map[string][]string{
                "image/*":         {".jpg", ".jpeg", ".png"},
                "application/pdf": {".pdf"},
            }},
            {Name: "identity_file_url", Label: "Identidade ou CNH", Description: "Faça o upload da identidade ou CNH.", Kind: KindFile, Accept: map[string][]string{
                "image/*":         {".jpg", ".jpeg", ".png"},
                "application/pdf": {".pdf"},
            }},
        },
    },
    {
        Title: "Endereço do sócio",
        Fields: []Field{
            {Name: "partner_address_zipcode", Label: "CEP", Placeholder: "00000-000", Description: "Informe o CEP do sócio.", Kind: KindText, Mask: "99999-999"},
            {Name: "partner_address_street", Label: "Endereço", Placeholder: "Ex: Av. Paulista, 1000", Description: "Informe o endereço completo do sócio.", Kind: KindText},
            {Name: "partner_address_number", Label: "Número", Placeholder: "Ex: 1000", Description: "Número do endereço.", Kind: KindText},
            {Name: "partner_address_district", Label: "Bairro", Placeholder: "Centro", Description: "Informe o bairro.", Kind: KindText},
            {Name: "partner_address_state", Label: "Estado (Sigla)", Placeholder: "Ex: SP", Description: "Estado (UF).", Kind: KindText},
            {Name: "partner_address_city", Label: "Cidade", Placeholder: "Ex: São Paulo", Description: "Cidade do sócio.", Kind: KindText},
        },
    },
    {
        Title: "Termos e Condições de Uso",
        Fields: []Field{
            {Name: "terms_accepted", Label: "Aceito os Termos e Condições", Description: "Ao clicar, você concorda com os Termos e Condições de Uso.", Kind: KindCheckbox},
        },
    },
}

// fieldsByName is built once at init for FindField lookups.
var fieldsByName = func() map[string]Field {
    m := make(map[string]Field)
    for _, s := range sections {
        for _, f := range s.Fields {
            m[f.Name] = f
        }
    }
    return m
}()

// Sections returns the ordered form sections. Callers must not mutate the
// returned slice.
func Sections() []Section {
    return sections
}

// FindField looks a field up by its stable name.
func FindField(name string) (Field, bool) {
    f, ok := fieldsByName[name]
    return f, ok
}
