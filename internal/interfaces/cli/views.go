package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/turtacn/InfringeScope/pkg/client"
)

// The view types give API payloads their text and table forms.  JSON output
// always prints the payload unchanged.

type companyList struct{ *client.List[client.Company] }

func (v companyList) JSONValue() interface{} { return v.List }

func (v companyList) String() string {
	var sb strings.Builder
	for _, c := range v.Data {
		fmt.Fprintf(&sb, "%s  %s (%d products)\n", c.ID, c.Name, len(c.Products))
	}
	fmt.Fprintf(&sb, "%d of %d companies\n", len(v.Data), v.Count)
	return sb.String()
}

func (v companyList) TableHeaders() []string { return []string{"ID", "NAME", "PRODUCTS"} }

func (v companyList) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Data))
	for _, c := range v.Data {
		rows = append(rows, []string{c.ID, c.Name, strconv.Itoa(len(c.Products))})
	}
	return rows
}

type companyView struct{ *client.Company }

func (v companyView) JSONValue() interface{} { return v.Company }

func (v companyView) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\nid: %s\n", v.Name, v.ID)
	for _, p := range v.Products {
		fmt.Fprintf(&sb, "  - %s: %s\n", p.Name, p.Description)
	}
	return sb.String()
}

func (v companyView) TableHeaders() []string { return []string{"PRODUCT", "DESCRIPTION"} }

func (v companyView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Products))
	for _, p := range v.Products {
		rows = append(rows, []string{p.Name, p.Description})
	}
	return rows
}

type patentList struct{ *client.List[client.Patent] }

func (v patentList) JSONValue() interface{} { return v.List }

func (v patentList) String() string {
	var sb strings.Builder
	for _, p := range v.Data {
		fmt.Fprintf(&sb, "%s  %s\n", p.PublicationNumber, p.Title)
	}
	fmt.Fprintf(&sb, "%d of %d patents\n", len(v.Data), v.Count)
	return sb.String()
}

func (v patentList) TableHeaders() []string {
	return []string{"ID", "PUBLICATION NUMBER", "ASSIGNEE", "TITLE"}
}

func (v patentList) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Data))
	for _, p := range v.Data {
		rows = append(rows, []string{p.ID, p.PublicationNumber, deref(p.Assignee), p.Title})
	}
	return rows
}

type patentView struct{ *client.Patent }

func (v patentView) JSONValue() interface{} { return v.Patent }

func (v patentView) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s\nid: %s\n", v.PublicationNumber, v.Title, v.ID)
	if a := deref(v.Assignee); a != "" {
		fmt.Fprintf(&sb, "assignee: %s\n", a)
	}
	if v.PriorityDate != nil {
		fmt.Fprintf(&sb, "priority date: %s\n", v.PriorityDate.Format("2006-01-02"))
	}
	if a := deref(v.Abstract); a != "" {
		fmt.Fprintf(&sb, "\n%s\n", a)
	}
	return sb.String()
}

func (v patentView) TableHeaders() []string { return patentList{}.TableHeaders() }

func (v patentView) TableRows() [][]string {
	return [][]string{{v.ID, v.PublicationNumber, deref(v.Assignee), v.Title}}
}

type analysisList struct{ *client.List[client.Analysis] }

func (v analysisList) JSONValue() interface{} { return v.List }

func (v analysisList) String() string {
	var sb strings.Builder
	for _, a := range v.Data {
		fmt.Fprintf(&sb, "%s  %s vs %s: %s\n", a.ID, a.PatentID, a.CompanyName, a.OverallRiskAssessment)
	}
	fmt.Fprintf(&sb, "%d of %d analyses\n", len(v.Data), v.Count)
	return sb.String()
}

func (v analysisList) TableHeaders() []string {
	return []string{"ID", "PATENT", "COMPANY", "DATE", "RISK"}
}

func (v analysisList) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Data))
	for _, a := range v.Data {
		rows = append(rows, []string{a.ID, a.PatentID, a.CompanyName, formatDate(a.AnalysisDate), a.OverallRiskAssessment})
	}
	return rows
}

type analysisView struct{ *client.Analysis }

func (v analysisView) JSONValue() interface{} { return v.Analysis }

func (v analysisView) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "analysis %s (%s)\n", v.ID, formatDate(v.AnalysisDate))
	fmt.Fprintf(&sb, "patent:  %s\ncompany: %s\nrisk:    %s\n", v.PatentID, v.CompanyName, v.OverallRiskAssessment)
	if v.Explanation != nil && *v.Explanation != "" {
		fmt.Fprintf(&sb, "note:    %s\n", *v.Explanation)
	}
	for i, p := range v.TopInfringingProducts {
		fmt.Fprintf(&sb, "\n%d. %s [%s]\n", i+1, p.ProductName, p.InfringementLikelihood)
		if len(p.RelevantClaims) > 0 {
			fmt.Fprintf(&sb, "   claims:   %s\n", strings.Join(p.RelevantClaims, ", "))
		}
		if len(p.SpecificFeatures) > 0 {
			fmt.Fprintf(&sb, "   features: %s\n", strings.Join(p.SpecificFeatures, "; "))
		}
		if p.Explanation != "" {
			fmt.Fprintf(&sb, "   %s\n", p.Explanation)
		}
	}
	return sb.String()
}

func (v analysisView) TableHeaders() []string {
	return []string{"PRODUCT", "LIKELIHOOD", "CLAIMS", "FEATURES"}
}

func (v analysisView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.TopInfringingProducts))
	for _, p := range v.TopInfringingProducts {
		rows = append(rows, []string{
			p.ProductName,
			p.InfringementLikelihood,
			strings.Join(p.RelevantClaims, ","),
			strings.Join(p.SpecificFeatures, "; "),
		})
	}
	return rows
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

//Personal.AI order the ending
