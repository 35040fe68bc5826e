package model

import (
	"testing"
	"time"
)

func TestEnterpriseNature(t *testing.T) {
	tests := map[string]string{
		"中央国债登记结算有限责任公司": "国有企业",
		"中外运物流有限公司":      "合资企业",
		"某外资咨询":          "独资企业",
		"华为技术有限公司":       "民营企业",
		"某某研究所":          "其他",
	}
	for name, want := range tests {
		if got := EnterpriseNature(name); got != want {
			t.Errorf("EnterpriseNature(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestYearsEstablished(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	if got := YearsEstablished("2010-03-03", now); got != 14 {
		t.Errorf("got %d, want 14", got)
	}
	for _, bad := range []string{"", "20", "abcd-01-01", "2030-01-01"} {
		if got := YearsEstablished(bad, now); got != 0 {
			t.Errorf("YearsEstablished(%q) = %d, want 0", bad, got)
		}
	}
}

func TestAttributes_Enrich(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	a := Attributes{EstablishmentDate: "2000-01-01", EnterpriseNature: "国有企业"}
	a.Enrich("华为技术有限公司", now)

	if a.EnterpriseNature != "国有企业" {
		t.Errorf("existing nature should be kept, got %q", a.EnterpriseNature)
	}
	if a.YearsEstablished != 24 {
		t.Errorf("years = %d, want 24", a.YearsEstablished)
	}
}
