package catalog

import "github.com/ppiankov/orgresolve/internal/model"

// builtinNames is the startup catalog of well-known organizations
var builtinNames = []string{
	// 互联网
	"阿里巴巴(中国)有限公司",
	"阿里巴巴集团控股有限公司",
	"腾讯科技(深圳)有限公司",
	"腾讯控股有限公司",
	"百度在线网络技术(北京)有限公司",
	"百度网讯科技有限公司",
	"字节跳动有限公司",
	"字节跳动科技有限公司",
	"小米科技有限责任公司",
	"小米通讯技术有限公司",
	"华为技术有限公司",
	"华为投资控股有限公司",
	"京东科技信息技术有限公司",
	"京东数字科技控股股份有限公司",
	"美团网络科技有限公司",
	"美团点评网络科技有限公司",
	"滴滴出行科技有限公司",
	"北京嘀嘀无限科技发展有限公司",

	// 金融
	"中国工商银行股份有限公司",
	"中国建设银行股份有限公司",
	"中国农业银行股份有限公司",
	"中国银行股份有限公司",
	"招商银行股份有限公司",
	"平安银行股份有限公司",
	"中国人寿保险股份有限公司",
	"中国平安保险(集团)股份有限公司",
	"中国太平洋保险(集团)股份有限公司",

	// 制造
	"比亚迪股份有限公司",
	"吉利汽车控股有限公司",
	"中国石油化工股份有限公司",
	"中国石油天然气股份有限公司",
	"中国海洋石油有限公司",
	"宝山钢铁股份有限公司",
	"中国神华能源股份有限公司",
	"格力电器股份有限公司",
	"美的集团股份有限公司",
	"海尔智家股份有限公司",
	"东京电子(上海)有限公司",

	// 房地产
	"万科企业股份有限公司",
	"碧桂园控股有限公司",
	"中国恒大集团",
	"融创中国控股有限公司",
	"绿地控股集团股份有限公司",
	"保利发展控股集团股份有限公司",
	"龙湖集团控股有限公司",

	// 零售
	"沃尔玛(中国)投资有限公司",
	"家乐福(中国)管理咨询服务有限公司",
	"大润发投资有限公司",
	"苏宁易购集团股份有限公司",
	"国美零售控股有限公司",

	// 教育
	"新东方教育科技集团有限公司",
	"学而思教育科技有限公司",
	"中公教育科技有限公司",
	"达内时代科技集团有限公司",

	// 医药
	"恒瑞医药股份有限公司",
	"云南白药集团股份有限公司",
	"同仁堂科技发展股份有限公司",
	"片仔癀药业股份有限公司",
}

// popularNames is the curated popular list, most popular first
var popularNames = []string{
	"阿里巴巴(中国)有限公司",
	"腾讯科技(深圳)有限公司",
	"百度在线网络技术(北京)有限公司",
	"小米科技有限责任公司",
	"华为技术有限公司",
	"京东科技信息技术有限公司",
	"美团网络科技有限公司",
	"字节跳动有限公司",
	"中国工商银行股份有限公司",
	"中国建设银行股份有限公司",
	"招商银行股份有限公司",
	"比亚迪股份有限公司",
	"格力电器股份有限公司",
	"美的集团股份有限公司",
	"万科企业股份有限公司",
	"碧桂园控股有限公司",
	"新东方教育科技集团有限公司",
	"恒瑞医药股份有限公司",
	"苏宁易购集团股份有限公司",
	"滴滴出行科技有限公司",
}

// BuiltinSeed returns the built-in startup entries
func BuiltinSeed() []model.CatalogEntry {
	entries := make([]model.CatalogEntry, len(builtinNames))
	for i, name := range builtinNames {
		entries[i] = model.NewEntry(name, model.OriginSeed)
	}
	return entries
}

// Popular returns up to limit popular names that are present in the index
func (idx *Index) Popular(limit int) []string {
	if limit <= 0 || limit > len(popularNames) {
		limit = len(popularNames)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]string, 0, limit)
	for _, name := range popularNames {
		if len(out) >= limit {
			break
		}
		if _, ok := idx.entries[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
