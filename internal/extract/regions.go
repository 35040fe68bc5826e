package extract

import "strings"

// regions are the geographic tokens recognized in names and queries.
// Ordered longest first so that 内蒙古 wins over a shorter prefix.
var regions = []string{
	"内蒙古", "黑龙江",
	"北京", "上海", "天津", "重庆", "深圳", "广州", "杭州", "苏州", "南京", "武汉",
	"成都", "西安", "青岛", "厦门", "宁波", "无锡", "长沙", "郑州", "济南", "合肥",
	"福州", "大连", "沈阳", "昆明", "东莞", "佛山", "珠海", "香港", "澳门", "台湾",
	"广东", "浙江", "江苏", "山东", "河北", "河南", "湖北", "湖南", "四川", "福建",
	"安徽", "江西", "辽宁", "吉林", "山西", "陕西", "云南", "贵州", "广西", "海南",
	"甘肃", "青海", "宁夏", "新疆", "西藏",
}

// qualifiers may appear in parentheses without being a region
var qualifiers = []string{"中国", "集团", "控股", "国际", "有限合伙"}

// Regions returns the recognized region tokens
func Regions() []string {
	out := make([]string, len(regions))
	copy(out, regions)
	return out
}

// FindRegions returns the region tokens contained in s, in table order
func FindRegions(s string) []string {
	var found []string
	for _, r := range regions {
		if strings.Contains(s, r) {
			found = append(found, r)
		}
	}
	return found
}

// FirstRegion returns the first region token contained in s, or ""
func FirstRegion(s string) string {
	for _, r := range regions {
		if strings.Contains(s, r) {
			return r
		}
	}
	return ""
}

func isQualifier(s string) bool {
	for _, q := range qualifiers {
		if s == q {
			return true
		}
	}
	for _, r := range regions {
		if s == r || s == r+"市" || s == r+"省" {
			return true
		}
	}
	return false
}
