package synth

import "strings"

// curatedRoots lists brand roots with the registered entities commonly
// operating under them. Matched by substring containment in the query, or
// through a known abbreviation of the root.
var curatedRoots = []struct {
	root     string
	variants []string
}{
	{"维斯登", []string{
		"维斯登光电有限公司",
		"维斯登光电技术有限公司",
		"维斯登(苏州)光电科技有限公司",
		"维斯登精密设备有限公司",
		"维斯登科技有限公司",
	}},
	{"东京电子", []string{
		"东京电子(上海)有限公司",
		"东京电子(中国)有限公司",
		"东京电子(苏州)有限公司",
		"东京电子半导体设备(上海)有限公司",
		"东京电子贸易(上海)有限公司",
	}},
	{"长鑫", []string{
		"长鑫存储技术有限公司",
		"长鑫集电(北京)存储技术有限公司",
		"长鑫新桥存储技术有限公司",
		"长鑫科技集团股份有限公司",
	}},
	{"中芯国际", []string{
		"中芯国际集成电路制造(上海)有限公司",
		"中芯国际集成电路制造(北京)有限公司",
		"中芯国际集成电路制造(深圳)有限公司",
		"中芯国际集成电路制造(天津)有限公司",
	}},
	{"中芯", []string{
		"中芯南方集成电路制造有限公司",
		"中芯京城集成电路制造(北京)有限公司",
		"中芯国际集成电路制造(上海)有限公司",
	}},
	{"应用材料", []string{
		"应用材料(中国)有限公司",
		"应用材料(西安)有限公司",
		"应用材料(天津)有限公司",
		"应用材料贸易(上海)有限公司",
	}},
	{"北方华创", []string{
		"北方华创科技集团股份有限公司",
		"北京北方华创微电子装备有限公司",
		"北方华创真空技术有限公司",
	}},
	{"拓荆", []string{
		"拓荆科技股份有限公司",
		"拓荆创益(沈阳)半导体设备有限公司",
	}},
}

// curatedFor returns the variants of the first root found in query,
// either literally or through one of shorts (abbreviations of the root).
func curatedFor(query string, shortsOf func(root string) []string) (string, []string) {
	for _, c := range curatedRoots {
		if strings.Contains(query, c.root) {
			return c.root, c.variants
		}
	}
	if shortsOf == nil {
		return "", nil
	}
	for _, c := range curatedRoots {
		for _, short := range shortsOf(c.root) {
			if strings.Contains(query, short) {
				return c.root, c.variants
			}
		}
	}
	return "", nil
}
