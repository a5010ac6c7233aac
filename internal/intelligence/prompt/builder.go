// Package prompt renders the infringement analysis request sent to the model.
// The output is a pure function of the patent and the company.
package prompt

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/invopop/jsonschema"

	"github.com/turtacn/InfringeScope/internal/domain/company"
	"github.com/turtacn/InfringeScope/internal/domain/infringement"
	"github.com/turtacn/InfringeScope/internal/domain/patent"
	"github.com/turtacn/InfringeScope/pkg/errors"
)

// SystemPersona is the fixed system message.
const SystemPersona = "You are a professional patent genius with expertise in analyzing and evaluating patent infringement scenarios."

const userTemplate = `You are an expert in patent analysis. Your task is to analyze the following patent and company product details and provide a response in the JSON format specified below:

{
    "patent_id": {{ quote .PatentID }},
    "company_name": {{ quote .CompanyName }},
    "top_infringing_products": [
        {
            "product_name": "<Product Name>",
            "infringement_likelihood": "<High/Moderate/Low>",
            "relevant_claims": ["<Claim Number>", "<Claim Number>"],
            "explanation": "<Detailed explanation of why this product potentially infringes on the patent claims>",
            "specific_features": ["<Feature 1>", "<Feature 2>"]
        }
    ],
    "overall_risk_assessment": "<Overall risk assessment summary>"
}
{{ if .Schema }}
The response must validate against this JSON Schema:
{{ .Schema }}
{{ end }}
### Patent Information:
- **Title**: {{ .Title }}
- **Abstract**: {{ .Abstract }}
- **Claims**:
{{ .Claims }}

### Company Information:
- **Products**:
{{ .Products }}

Please analyze and identify which of these products potentially infringe on the patent claims. Include detailed explanations and ensure the response follows the JSON format specified above.`

// Prompt is the rendered message pair.
type Prompt struct {
	System string
	User   string
}

// Options tunes rendering.
type Options struct {
	// IncludeSchema embeds the JSON Schema of infringement.Findings.
	IncludeSchema bool
}

// Builder renders prompts.  It is safe for concurrent use.
type Builder struct {
	tmpl   *template.Template
	schema string
}

type view struct {
	PatentID    string
	CompanyName string
	Title       string
	Abstract    string
	Claims      string
	Products    string
	Schema      string
}

// NewBuilder parses the template and, when requested, reflects the schema
// once.
func NewBuilder(opts Options) (*Builder, error) {
	tmpl, err := template.New("infringement").Funcs(template.FuncMap{
		"quote": quote,
	}).Parse(userTemplate)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to parse prompt template")
	}

	b := &Builder{tmpl: tmpl}
	if opts.IncludeSchema {
		schema, err := FindingsSchema()
		if err != nil {
			return nil, err
		}
		b.schema = schema
	}
	return b, nil
}

// Build renders the prompt for p and c.
func (b *Builder) Build(p *patent.Patent, c *company.Company) (*Prompt, error) {
	if p == nil || c == nil {
		return nil, errors.InvalidParam("patent and company are required")
	}

	claims, err := indentJSON(p.NormalizedClaims())
	if err != nil {
		return nil, err
	}
	products := c.Products
	if products == nil {
		products = []company.Product{}
	}
	productsJSON, err := indentJSON(products)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = b.tmpl.Execute(&buf, view{
		PatentID:    p.PublicationNumber,
		CompanyName: c.Name,
		Title:       p.Title,
		Abstract:    p.AbstractText(),
		Claims:      claims,
		Products:    productsJSON,
		Schema:      b.schema,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to render prompt")
	}

	return &Prompt{System: SystemPersona, User: buf.String()}, nil
}

// FindingsSchema returns the indented JSON Schema of the expected reply.
// Additional properties are allowed: the example reply echoes patent_id and
// company_name.
func FindingsSchema() (string, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	return indentJSON(r.Reflect(&infringement.Findings{}))
}

func indentJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode prompt section")
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func quote(s string) string {
	out, _ := json.Marshal(s)
	return string(out)
}

//Personal.AI order the ending
