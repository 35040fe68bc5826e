package registry

import (
	"context"
	"strings"

	"github.com/ppiankov/orgresolve/internal/extract"
	"github.com/ppiankov/orgresolve/internal/model"
)

// LocalName is the source name of the built-in registry
const LocalName = "local"

// LocalSource answers from a small built-in table of well-known
// organizations. It never fails with ErrExternalUnavailable.
type LocalSource struct {
	entries []model.CatalogEntry
}

// NewLocalSource creates the built-in registry
func NewLocalSource() *LocalSource {
	return &LocalSource{entries: localRegistry()}
}

// NewLocalSourceFrom creates a local registry over entries
func NewLocalSourceFrom(entries []model.CatalogEntry) *LocalSource {
	return &LocalSource{entries: entries}
}

func (s *LocalSource) Name() string { return LocalName }

// Lookup tries an exact name match first, then a name that contains the
// query or is contained in it. The canonical stored name is returned.
func (s *LocalSource) Lookup(_ context.Context, name string) (model.CatalogEntry, error) {
	q := extract.Normalize(name)
	if q == "" {
		return model.CatalogEntry{}, model.NewError(model.KindNotFound, "registry.local", nil)
	}
	for _, e := range s.entries {
		if extract.Normalize(e.Name) == q {
			return e, nil
		}
	}
	for _, e := range s.entries {
		stored := extract.Normalize(e.Name)
		if strings.Contains(stored, q) || strings.Contains(q, stored) {
			return e, nil
		}
	}
	return model.CatalogEntry{}, model.NewError(model.KindNotFound, "registry.local", nil)
}

// Len returns the number of built-in entries
func (s *LocalSource) Len() int {
	return len(s.entries)
}

func localEntry(name string, a model.Attributes) model.CatalogEntry {
	if a.BusinessStatus == "" {
		a.BusinessStatus = "存续"
	}
	return model.CatalogEntry{Name: name, Attributes: a, Origin: model.OriginRegistry}
}

func localRegistry() []model.CatalogEntry {
	return []model.CatalogEntry{
		localEntry("小米科技有限责任公司", model.Attributes{
			LegalRepresentative: "雷军",
			RegisteredCapital:   "185000万人民币",
			EstablishmentDate:   "2010-03-03",
			Industry:            "计算机、通信和其他电子设备制造业",
			CreditCode:          "91110108551738572Q",
			Address:             "北京市海淀区清河中街68号华润五彩城购物中心二期13层",
			BusinessScope:       "技术开发、技术咨询、技术服务、技术推广、技术转让",
		}),
		localEntry("小米通讯技术有限公司", model.Attributes{
			LegalRepresentative: "林斌",
			RegisteredCapital:   "50000万人民币",
			EstablishmentDate:   "2012-09-18",
			Industry:            "软件和信息技术服务业",
			CreditCode:          "91110108054758659P",
		}),
		localEntry("阿里巴巴(中国)有限公司", model.Attributes{
			LegalRepresentative: "戴珊",
			RegisteredCapital:   "800000万人民币",
			EstablishmentDate:   "1999-09-09",
			Industry:            "互联网和相关服务",
			CreditCode:          "91330100717651207G",
		}),
		localEntry("阿里巴巴集团控股有限公司", model.Attributes{
			LegalRepresentative: "张勇",
			RegisteredCapital:   "12000000万美元",
			EstablishmentDate:   "1999-06-28",
			Industry:            "控股公司",
			CreditCode:          "HK1688",
		}),
		localEntry("腾讯科技(深圳)有限公司", model.Attributes{
			LegalRepresentative: "马化腾",
			RegisteredCapital:   "200000万人民币",
			EstablishmentDate:   "1998-11-11",
			Industry:            "软件和信息技术服务业",
			CreditCode:          "91440300708461136T",
		}),
		localEntry("腾讯控股有限公司", model.Attributes{
			LegalRepresentative: "马化腾",
			RegisteredCapital:   "25000万港币",
			EstablishmentDate:   "1998-11-11",
			Industry:            "控股公司",
			CreditCode:          "HK0700",
		}),
		localEntry("百度在线网络技术(北京)有限公司", model.Attributes{
			LegalRepresentative: "李彦宏",
			RegisteredCapital:   "140625万人民币",
			EstablishmentDate:   "2000-01-18",
			Industry:            "互联网和相关服务",
			CreditCode:          "91110000802100433B",
		}),
		localEntry("百度网讯科技有限公司", model.Attributes{
			LegalRepresentative: "李彦宏",
			RegisteredCapital:   "21000万人民币",
			EstablishmentDate:   "2001-06-05",
			Industry:            "软件和信息技术服务业",
			CreditCode:          "91110108732406081P",
		}),
		localEntry("华为技术有限公司", model.Attributes{
			LegalRepresentative: "徐直军",
			RegisteredCapital:   "4003136.8万人民币",
			EstablishmentDate:   "1987-09-15",
			Industry:            "计算机、通信和其他电子设备制造业",
			CreditCode:          "91440300279734442P",
		}),
		localEntry("华为投资控股有限公司", model.Attributes{
			LegalRepresentative: "徐直军",
			RegisteredCapital:   "4003136.8万人民币",
			EstablishmentDate:   "1987-09-15",
			Industry:            "商务服务业",
			CreditCode:          "914403001922038216",
		}),
		localEntry("字节跳动有限公司", model.Attributes{
			LegalRepresentative: "张一鸣",
			RegisteredCapital:   "500000万人民币",
			EstablishmentDate:   "2012-03-09",
			Industry:            "软件和信息技术服务业",
			CreditCode:          "91110108593212774M",
		}),
		localEntry("字节跳动科技有限公司", model.Attributes{
			LegalRepresentative: "张利东",
			RegisteredCapital:   "100000万人民币",
			EstablishmentDate:   "2012-07-10",
			Industry:            "科技推广和应用服务业",
			CreditCode:          "91110108599879012K",
		}),
	}
}
