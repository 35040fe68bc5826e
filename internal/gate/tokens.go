package gate

// suffixTokens are corporate-form and sector endings. A query carrying one
// of them reads like a full registered name (rule 4).
var suffixTokens = []string{
	"股份有限公司", "有限责任公司", "有限公司", "股份", "集团", "控股",
	"科技", "技术", "设备", "光电", "电子", "制造", "实业", "贸易", "投资",
	"发展", "信息", "网络", "软件", "工业", "机械", "材料", "铸造", "化工",
	"医药", "物流", "建筑", "咨询", "管理", "服务",
}

// technicalKeywords mark a query as naming a specific line of business
// (rule 5, second clause).
var technicalKeywords = []string{
	"集成电路", "半导体", "新材料", "新能源", "自动化", "机器人",
	"光电", "激光", "芯片", "电子", "精密", "仪器", "通信", "智能",
	"生物", "医药", "软件", "网络", "设备", "技术", "科技", "材料",
	"铸造", "机械", "化工",
}
