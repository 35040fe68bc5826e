package model

import (
	"strings"
	"time"
)

var natureRules = []struct {
	tokens []string
	nature string
}{
	{[]string{"国有", "央企", "中央", "国营"}, "国有企业"},
	{[]string{"合资", "中外"}, "合资企业"},
	{[]string{"外资"}, "独资企业"},
	{[]string{"有限责任", "有限公司", "股份"}, "民营企业"},
}

// EnterpriseNature classifies an organization by ownership cues in its name
func EnterpriseNature(name string) string {
	for _, rule := range natureRules {
		for _, t := range rule.tokens {
			if strings.Contains(name, t) {
				return rule.nature
			}
		}
	}
	return "其他"
}

// YearsEstablished returns whole calendar years between the year of date
// (YYYY-MM-DD or YYYY) and now. Unparseable dates yield 0.
func YearsEstablished(date string, now time.Time) int {
	if len(date) < 4 {
		return 0
	}
	t, err := time.Parse("2006", date[:4])
	if err != nil {
		return 0
	}
	years := now.Year() - t.Year()
	if years < 0 {
		return 0
	}
	return years
}

// Enrich fills the derived fields that can be computed from the name and
// establishment date. Fields already set are kept.
func (a *Attributes) Enrich(name string, now time.Time) {
	if a.EnterpriseNature == "" {
		a.EnterpriseNature = EnterpriseNature(name)
	}
	if a.YearsEstablished == 0 {
		a.YearsEstablished = YearsEstablished(a.EstablishmentDate, now)
	}
}
