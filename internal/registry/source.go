package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/orgresolve/internal/model"
	"github.com/ppiankov/orgresolve/internal/worker"
)

// Source answers registry lookups for one backend. Lookup returns an
// error matching model.ErrNotFound when the backend has no such
// organization and model.ErrExternalUnavailable when it cannot answer.
type Source interface {
	Name() string
	Lookup(ctx context.Context, name string) (model.CatalogEntry, error)
}

// Source kinds accepted in configuration
const (
	KindJSON = "json"
	KindPage = "page"
)

// Per-minute budgets used when a source does not set one
const (
	defaultJSONPerMinute = 5
	defaultPagePerMinute = 10
)

const maxResponseBytes = 2 << 20

// queryURL appends the organization name as the name= parameter
func queryURL(base, name string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse source URL: %w", err)
	}
	q := u.Query()
	q.Set("name", name)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// classify maps fetch failures onto the error taxonomy
func classify(op string, err error) error {
	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return model.NewError(model.KindNotFound, op, err)
	}
	return model.NewError(model.KindExternalUnavailable, op, err)
}

// JSONSource queries a registry API that answers with a 企业基本信息 object
type JSONSource struct {
	name    string
	baseURL string
	fetcher *Fetcher
}

// NewJSONSource creates a JSON API source
func NewJSONSource(name, baseURL string, fetcher *Fetcher) *JSONSource {
	return &JSONSource{name: name, baseURL: baseURL, fetcher: fetcher}
}

func (s *JSONSource) Name() string { return s.name }

type jsonPayload struct {
	Base jsonBase `json:"企业基本信息"`
}

type jsonBase struct {
	Name                string `json:"企业名称"`
	LegalRepresentative string `json:"法人代表"`
	RegisteredCapital   string `json:"注册资本"`
	PaidCapital         string `json:"实缴资本"`
	EstablishmentDate   string `json:"成立日期"`
	BusinessStatus      string `json:"经营状态"`
	CompanyType         string `json:"企业类型"`
	Address             string `json:"注册地址"`
	Industry            string `json:"行业"`
	CreditCode          string `json:"统一社会信用代码"`
	BusinessScope       string `json:"经营范围"`
}

func (s *JSONSource) Lookup(ctx context.Context, name string) (model.CatalogEntry, error) {
	op := "registry." + s.name
	u, err := queryURL(s.baseURL, name)
	if err != nil {
		return model.CatalogEntry{}, model.NewError(model.KindExternalUnavailable, op, err)
	}

	body, err := s.fetcher.GetWithRetry(ctx, u, "application/json")
	if err != nil {
		return model.CatalogEntry{}, classify(op, err)
	}

	var payload jsonPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return model.CatalogEntry{}, model.NewError(model.KindExternalUnavailable, op, fmt.Errorf("decode response: %w", err))
	}
	b := payload.Base
	if strings.TrimSpace(b.Name) == "" {
		return model.CatalogEntry{}, model.NewError(model.KindNotFound, op, nil)
	}

	entry := model.NewEntry(b.Name, model.OriginRegistry)
	entry.Attributes = model.Attributes{
		LegalRepresentative: b.LegalRepresentative,
		RegisteredCapital:   b.RegisteredCapital,
		PaidCapital:         b.PaidCapital,
		EstablishmentDate:   b.EstablishmentDate,
		BusinessStatus:      b.BusinessStatus,
		CompanyType:         b.CompanyType,
		Industry:            b.Industry,
		CreditCode:          b.CreditCode,
		Address:             b.Address,
		BusinessScope:       b.BusinessScope,
	}
	return entry, nil
}

// PageSource scrapes a public registry detail page laid out as label/value
// table rows or dt/dd pairs
type PageSource struct {
	name    string
	baseURL string
	fetcher *Fetcher
	robots  *RobotsChecker
	limiter *worker.Limiter
}

// NewPageSource creates an HTML page source. A nil robots checker skips
// the robots.txt check; a nil limiter ignores the host's crawl delay.
func NewPageSource(name, baseURL string, fetcher *Fetcher, robots *RobotsChecker, limiter *worker.Limiter) *PageSource {
	return &PageSource{name: name, baseURL: baseURL, fetcher: fetcher, robots: robots, limiter: limiter}
}

func (s *PageSource) Name() string { return s.name }

func (s *PageSource) Lookup(ctx context.Context, name string) (model.CatalogEntry, error) {
	op := "registry." + s.name
	u, err := queryURL(s.baseURL, name)
	if err != nil {
		return model.CatalogEntry{}, model.NewError(model.KindExternalUnavailable, op, err)
	}

	if s.robots != nil {
		allowed, crawlDelay, err := s.robots.CanFetch(ctx, u)
		if err != nil {
			return model.CatalogEntry{}, model.NewError(model.KindExternalUnavailable, op, err)
		}
		if !allowed {
			return model.CatalogEntry{}, model.NewError(model.KindExternalUnavailable, op, fmt.Errorf("disallowed by robots.txt"))
		}
		if s.limiter != nil {
			if err := s.limiter.WaitInterval(ctx, crawlKey(u), crawlDelay); err != nil {
				return model.CatalogEntry{}, model.NewError(model.KindExternalUnavailable, op, fmt.Errorf("crawl delay: %w", err))
			}
		}
	}

	body, err := s.fetcher.GetWithRetry(ctx, u, "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return model.CatalogEntry{}, classify(op, err)
	}

	entry, err := ParsePage(body)
	if err != nil {
		return model.CatalogEntry{}, model.NewError(model.KindExternalUnavailable, op, err)
	}
	if entry.Name == "" {
		return model.CatalogEntry{}, model.NewError(model.KindNotFound, op, nil)
	}
	return entry, nil
}

// crawlKey names the limiter bucket that spaces requests to one host
func crawlKey(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return "crawl:" + u.Host
	}
	return "crawl:" + rawURL
}

// pageLabels maps the labels used on registry pages to attribute setters
var pageLabels = map[string]func(e *model.CatalogEntry, v string){
	"企业名称":     func(e *model.CatalogEntry, v string) { e.Name = v },
	"公司名称":     func(e *model.CatalogEntry, v string) { e.Name = v },
	"法定代表人":    func(e *model.CatalogEntry, v string) { e.Attributes.LegalRepresentative = v },
	"法人代表":     func(e *model.CatalogEntry, v string) { e.Attributes.LegalRepresentative = v },
	"注册资本":     func(e *model.CatalogEntry, v string) { e.Attributes.RegisteredCapital = v },
	"实缴资本":     func(e *model.CatalogEntry, v string) { e.Attributes.PaidCapital = v },
	"成立日期":     func(e *model.CatalogEntry, v string) { e.Attributes.EstablishmentDate = v },
	"经营状态":     func(e *model.CatalogEntry, v string) { e.Attributes.BusinessStatus = v },
	"登记状态":     func(e *model.CatalogEntry, v string) { e.Attributes.BusinessStatus = v },
	"企业类型":     func(e *model.CatalogEntry, v string) { e.Attributes.CompanyType = v },
	"公司类型":     func(e *model.CatalogEntry, v string) { e.Attributes.CompanyType = v },
	"所属行业":     func(e *model.CatalogEntry, v string) { e.Attributes.Industry = v },
	"行业":       func(e *model.CatalogEntry, v string) { e.Attributes.Industry = v },
	"统一社会信用代码": func(e *model.CatalogEntry, v string) { e.Attributes.CreditCode = v },
	"注册地址":     func(e *model.CatalogEntry, v string) { e.Attributes.Address = v },
	"住所":       func(e *model.CatalogEntry, v string) { e.Attributes.Address = v },
	"经营范围":     func(e *model.CatalogEntry, v string) { e.Attributes.BusinessScope = v },
}

// ParsePage extracts a registry profile from an HTML detail page. Labels
// and values are read from adjacent th/td cells within a row and from
// dt/dd pairs. A page without a name label yields an entry with an empty
// name.
func ParsePage(body []byte) (model.CatalogEntry, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return model.CatalogEntry{}, fmt.Errorf("parse HTML: %w", err)
	}

	entry := model.CatalogEntry{Origin: model.OriginRegistry}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "tr":
				applyPairs(&entry, childTexts(n, "th", "td"))
				return
			case "dl":
				applyPairs(&entry, childTexts(n, "dt", "dd"))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return entry, nil
}

func applyPairs(e *model.CatalogEntry, cells []string) {
	for i := 0; i+1 < len(cells); i++ {
		set, ok := pageLabels[cleanLabel(cells[i])]
		if !ok || cells[i+1] == "" {
			continue
		}
		set(e, cells[i+1])
		i++
	}
}

func cleanLabel(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ":：")
}

// childTexts returns the text of each direct child element whose tag is in tags
func childTexts(n *html.Node, tags ...string) []string {
	var out []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		for _, t := range tags {
			if c.Data == t {
				out = append(out, nodeText(c))
				break
			}
		}
	}
	return out
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
