package synth

// Fixed candidate pools for placeholder records. Every random choice the
// engine makes is drawn from one of these.

// industryRules map a sector keyword to an industry classification.
// The first keyword found in the name wins.
var industryRules = []struct{ keyword, industry string }{
	{"科技", "软件和信息技术服务业"},
	{"技术", "科技推广和应用服务业"},
	{"软件", "软件和信息技术服务业"},
	{"网络", "互联网和相关服务"},
	{"信息", "软件和信息技术服务业"},
	{"光电", "光电设备制造"},
	{"激光", "专用设备制造业"},
	{"半导体", "专用设备制造业"},
	{"电子", "计算机、通信和其他电子设备制造业"},
	{"铸造", "金属制品业"},
	{"制造", "专用设备制造业"},
	{"设备", "专用设备制造业"},
	{"机械", "通用设备制造业"},
	{"汽车", "汽车制造业"},
	{"化工", "化学原料和化学制品制造业"},
	{"医药", "医药制造业"},
	{"建筑", "建筑业"},
	{"贸易", "批发和零售业"},
	{"投资", "商务服务业"},
	{"控股", "商务服务业"},
	{"金融", "金融业"},
	{"教育", "教育"},
	{"物流", "运输业"},
}

const defaultIndustry = "商务服务业"

var legalRepresentatives = []string{
	"张建国", "李志强", "王建军", "刘德华", "陈志明", "赵明华", "周建华",
	"吴志勇", "郑建平", "何志华", "谢建国", "蒋志强", "韩建军", "冯德华",
	"曹志明", "彭明华", "董建华", "袁志勇", "卢建平", "苏志华", "程建国",
	"魏志强", "薛建军", "葛德华", "范志明", "邓明华", "许建华", "傅志勇",
	"沈建平", "曾志华", "毛建国", "段志强", "雷建军", "黎德华", "史志明",
}

type regionPool struct {
	name       string
	districts  []string
	codePrefix string
}

var regionPools = []regionPool{
	{"上海", []string{"上海市浦东新区", "上海市黄浦区", "上海市徐汇区", "上海市长宁区", "上海市静安区"}, "91310000"},
	{"北京", []string{"北京市海淀区", "北京市朝阳区", "北京市丰台区", "北京市石景山区", "北京市通州区"}, "91110000"},
	{"深圳", []string{"广东省深圳市南山区", "广东省深圳市福田区", "广东省深圳市罗湖区", "广东省深圳市宝安区"}, "91440300"},
	{"杭州", []string{"浙江省杭州市西湖区", "浙江省杭州市拱墅区", "浙江省杭州市江干区", "浙江省杭州市下城区"}, "91330100"},
	{"苏州", []string{"江苏省苏州市高新区", "江苏省苏州市工业园区", "江苏省苏州市吴中区", "江苏省苏州市相城区"}, "91320500"},
	{"武汉", []string{"湖北省武汉市东西湖区", "湖北省武汉市洪山区", "湖北省武汉市江夏区", "湖北省武汉市硚口区"}, "91420100"},
	{"成都", []string{"四川省成都市高新区", "四川省成都市锦江区", "四川省成都市青羊区", "四川省成都市武侯区"}, "91510100"},
	{"西安", []string{"陕西省西安市高新区", "陕西省西安市雁塔区", "陕西省西安市碑林区", "陕西省西安市莲湖区"}, "91610100"},
	{"南京", []string{"江苏省南京市江宁区", "江苏省南京市鼓楼区", "江苏省南京市玄武区", "江苏省南京市建邺区"}, "91320100"},
	{"青岛", []string{"山东省青岛市市南区", "山东省青岛市市北区", "山东省青岛市李沧区", "山东省青岛市崂山区"}, "91370200"},
}

const (
	defaultDistrict   = "北京市海淀区"
	defaultCodePrefix = "91110000"
	codeAlphabet      = "ABCDEFGHJKLMNPQRSTUVWXYZ0123456789"
	codeSuffixLen     = 10
)

// Region fallbacks when the name carries no region
var (
	techRegions          = []string{"上海", "北京", "深圳", "杭州"}
	manufacturingRegions = []string{"苏州", "武汉", "青岛", "西安"}
	generalRegions       = []string{"上海", "北京", "深圳"}
)

var addressSuffixes = map[businessType][]string{
	typeTechnology:    {"科技园", "软件园", "创新园区", "高科技园区", "产业园"},
	typeManufacturing: {"工业园区", "制造基地", "产业园", "开发区", "工业区"},
	typeTrading:       {"商贸区", "经济开发区", "商务区", "贸易中心"},
	typeGeneral:       {"商务区", "CBD", "金融区", "经济开发区"},
}

var scopePools = map[string][]string{
	"软件和信息技术服务业": {"软件开发", "技术咨询", "技术服务", "技术转让", "计算机系统集成", "数据处理", "信息技术咨询", "网络技术开发"},
	"光电设备制造":     {"光电设备研发", "激光设备制造", "精密光学器件", "光电技术咨询", "激光技术服务", "光电产品销售"},
	"金属制品业":      {"精密铸造", "机械加工", "金属制品制造", "铸造技术咨询", "金属表面处理", "模具设计制造"},
	"专用设备制造业":    {"专用设备制造", "设备技术服务", "机械设备维修", "工业自动化设备", "技术开发"},
}

var (
	defaultScope = []string{"技术开发", "技术咨询", "技术服务"}
	commonScope  = []string{"进出口贸易", "企业管理咨询"}
)

// sectorWords are the sector parts of nameForms, longest first
var sectorWords = []string{
	"信息技术", "网络科技", "精密机械", "投资管理",
	"进出口", "科技", "技术", "信息", "网络", "软件", "制造", "设备", "机械",
	"工业", "实业", "贸易", "商贸", "投资", "控股", "发展", "集团",
}

// nameForms are appended to a root to build generic name variants
var nameForms = map[businessType][]string{
	typeTechnology:    {"科技有限公司", "技术有限公司", "信息技术有限公司", "网络科技有限公司"},
	typeManufacturing: {"制造有限公司", "设备有限公司", "精密机械有限公司", "实业有限公司"},
	typeTrading:       {"贸易有限公司", "商贸有限公司", "进出口有限公司"},
	typeInvestment:    {"投资有限公司", "控股有限公司", "投资管理有限公司"},
	typeGeneral:       {"科技有限公司", "实业有限公司", "发展有限公司", "集团有限公司"},
}
