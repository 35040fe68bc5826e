package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ppiankov/orgresolve/internal/model"
)

// printJSON writes v to stdout as indented JSON
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// printMatches writes ranked results as an aligned table
func printMatches(w io.Writer, results []model.MatchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "(no matches)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tTYPE\tNAME")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Score, r.MatchType, r.Name)
	}
	_ = tw.Flush()
}

// printProfile writes the attributes of entry, skipping unknown fields
func printProfile(w io.Writer, entry model.CatalogEntry) {
	a := entry.Attributes
	fmt.Fprintf(w, "%s\n", entry.Name)
	rows := [][2]string{
		{"法定代表人", a.LegalRepresentative},
		{"注册资本", a.RegisteredCapital},
		{"实缴资本", a.PaidCapital},
		{"成立日期", a.EstablishmentDate},
		{"经营状态", a.BusinessStatus},
		{"企业类型", a.CompanyType},
		{"注册地址", a.Address},
		{"所属行业", a.Industry},
		{"统一社会信用代码", a.CreditCode},
		{"经营范围", a.BusinessScope},
		{"企业性质", a.EnterpriseNature},
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		if row[1] != "" {
			fmt.Fprintf(tw, "  %s\t%s\n", row[0], row[1])
		}
	}
	if a.YearsEstablished > 0 {
		fmt.Fprintf(tw, "  成立年限\t%d\n", a.YearsEstablished)
	}
	if entry.Origin != "" {
		fmt.Fprintf(tw, "  来源\t%s\n", entry.Origin)
	}
	_ = tw.Flush()
	if entry.IsPlaceholder() {
		fmt.Fprintln(w, "  (synthesized placeholder, not a verified registry record)")
	}
}
