package synth

import (
	"fmt"
	"strings"

	"github.com/ppiankov/orgresolve/internal/model"
)

type businessType string

const (
	typeTechnology    businessType = "technology"
	typeManufacturing businessType = "manufacturing"
	typeTrading       businessType = "trading"
	typeInvestment    businessType = "investment"
	typeGeneral       businessType = "general"
)

type scale string

const (
	scaleLarge  scale = "large"
	scaleMedium scale = "medium"
	scaleSmall  scale = "small"
)

func classifyBusiness(name string) businessType {
	switch {
	case containsAny(name, "科技", "技术", "软件", "网络", "信息"):
		return typeTechnology
	case containsAny(name, "制造", "设备", "机械", "工业"):
		return typeManufacturing
	case containsAny(name, "贸易", "商贸", "进出口"):
		return typeTrading
	case containsAny(name, "投资", "控股", "金融"):
		return typeInvestment
	default:
		return typeGeneral
	}
}

func classifyScale(name string) scale {
	switch {
	case containsAny(name, "集团", "控股", "国际", "股份", "投资"):
		return scaleLarge
	case strings.Contains(name, "有限公司"):
		return scaleMedium
	default:
		return scaleSmall
	}
}

func industryFor(name string) string {
	for _, r := range industryRules {
		if strings.Contains(name, r.keyword) {
			return r.industry
		}
	}
	return defaultIndustry
}

func regionPoolFor(region string) (regionPool, bool) {
	for _, p := range regionPools {
		if p.name == region {
			return p, true
		}
	}
	return regionPool{}, false
}

// regionFor returns the first pooled region named in name, else a
// plausible pick for the business type. Caller holds e.mu.
func (e *Engine) regionFor(name string, bt businessType) string {
	for _, p := range regionPools {
		if strings.Contains(name, p.name) {
			return p.name
		}
	}
	switch {
	case containsAny(name, "科技", "软件", "网络"):
		return e.pick(techRegions)
	case containsAny(name, "制造", "铸造", "设备") || bt == typeManufacturing:
		return e.pick(manufacturingRegions)
	default:
		return e.pick(generalRegions)
	}
}

// attributesFor fabricates a full attribute set for name. A degenerate
// result is replaced by the fixed template.
func (e *Engine) attributesFor(name string) model.Attributes {
	e.mu.Lock()
	attrs := e.randomAttributes(name)
	e.mu.Unlock()

	if !attrs.Usable() {
		attrs = templateAttributes(name)
	}
	attrs.Enrich(name, e.now())
	return attrs
}

func (e *Engine) randomAttributes(name string) model.Attributes {
	bt := classifyBusiness(name)
	sc := classifyScale(name)
	industry := industryFor(name)
	region := e.regionFor(name, bt)

	return model.Attributes{
		LegalRepresentative: e.pick(legalRepresentatives),
		RegisteredCapital:   e.capital(sc, bt),
		EstablishmentDate:   e.establishmentDate(bt),
		BusinessStatus:      "存续",
		CompanyType:         companyType(name),
		Industry:            industry,
		CreditCode:          e.creditCode(region),
		Address:             e.address(region, bt),
		BusinessScope:       e.scope(industry),
	}
}

// templateAttributes is the deterministic fallback record
func templateAttributes(name string) model.Attributes {
	return model.Attributes{
		LegalRepresentative: legalRepresentatives[0],
		RegisteredCapital:   "1000万人民币",
		EstablishmentDate:   "2010-01-01",
		BusinessStatus:      "存续",
		CompanyType:         companyType(name),
		Industry:            industryFor(name),
		CreditCode:          defaultCodePrefix + strings.Repeat("0", codeSuffixLen),
		Address:             defaultDistrict,
		BusinessScope:       strings.Join(append(append([]string{}, defaultScope...), commonScope...), "；") + "...",
	}
}

func companyType(name string) string {
	switch {
	case strings.Contains(name, "股份有限公司"):
		return "股份有限公司"
	case strings.Contains(name, "有限责任公司"), strings.Contains(name, "有限公司"):
		return "有限责任公司"
	default:
		return ""
	}
}

func (e *Engine) capital(sc scale, bt businessType) string {
	var lo, hi int
	switch {
	case sc == scaleLarge && bt == typeInvestment:
		lo, hi = 50000, 200000
	case sc == scaleLarge:
		lo, hi = 10000, 50000
	case sc == scaleMedium && bt == typeManufacturing:
		lo, hi = 3000, 15000
	case sc == scaleMedium:
		lo, hi = 1000, 8000
	default:
		lo, hi = 100, 3000
	}
	return fmt.Sprintf("%d万人民币", e.between(lo, hi))
}

func (e *Engine) establishmentDate(bt businessType) string {
	start, end := 2000, 2019
	switch bt {
	case typeTechnology:
		start, end = 2005, 2020
	case typeManufacturing:
		start, end = 1995, 2018
	}
	return fmt.Sprintf("%d-%02d-%02d", e.between(start, end), e.between(1, 12), e.between(1, 28))
}

func (e *Engine) creditCode(region string) string {
	prefix := defaultCodePrefix
	if p, ok := regionPoolFor(region); ok {
		prefix = p.codePrefix
	}
	var b strings.Builder
	b.WriteString(prefix)
	for i := 0; i < codeSuffixLen; i++ {
		b.WriteByte(codeAlphabet[e.rng.Intn(len(codeAlphabet))])
	}
	return b.String()
}

func (e *Engine) address(region string, bt businessType) string {
	district := defaultDistrict
	if p, ok := regionPoolFor(region); ok {
		district = e.pick(p.districts)
	}
	suffixes, ok := addressSuffixes[bt]
	if !ok {
		suffixes = addressSuffixes[typeGeneral]
	}
	return fmt.Sprintf("%s%s%d号", district, e.pick(suffixes), e.between(1, 999))
}

func (e *Engine) scope(industry string) string {
	pool, ok := scopePools[industry]
	if !ok {
		pool = defaultScope
	}
	n := e.between(3, 6)
	if n > len(pool) {
		n = len(pool)
	}
	picked := make([]string, 0, n+len(commonScope))
	for _, i := range e.rng.Perm(len(pool))[:n] {
		picked = append(picked, pool[i])
	}
	picked = append(picked, commonScope...)
	return strings.Join(picked, "；") + "..."
}

func (e *Engine) pick(pool []string) string {
	return pool[e.rng.Intn(len(pool))]
}

// between returns a uniform integer in [lo, hi]
func (e *Engine) between(lo, hi int) int {
	return lo + e.rng.Intn(hi-lo+1)
}

func containsAny(s string, tokens ...string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
