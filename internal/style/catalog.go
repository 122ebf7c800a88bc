// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package style is the static catalog of report styles (industry tone
// presets) and their per-language metadata. Lookups never fail: unknown
// style keys resolve to Internet and unknown languages to Chinese.
package style

// Style keys.
const (
	Internet   = "internet"
	StateOwned = "stateOwned"
	Foreign    = "foreign"
	Government = "government"
	Freelancer = "freelancer"
)

// Supported languages.
const (
	Chinese = "zh-CN"
	English = "en-US"
)

const (
	// DefaultKey is substituted for unknown style keys.
	DefaultKey = Internet
	// DefaultLanguage is substituted for unknown languages.
	DefaultLanguage = Chinese
)

// Info is the localized description of one style.
type Info struct {
	Key       string    `json:"key"`
	Language  string    `json:"language"`
	Name      string    `json:"name"`
	Keywords  []string  `json:"keywords"`
	Structure [3]string `json:"structure"` // completed, problems, plans
	Tone      string    `json:"tone"`
}

var order = []string{Internet, StateOwned, Foreign, Government, Freelancer}

var languages = []string{Chinese, English}

var catalog = map[string]map[string]Info{
	Internet: {
		Chinese: {
			Name:      "互联网风格",
			Keywords:  []string{"数据驱动", "敏捷迭代", "技术术语", "用户体验", "性能优化", "A/B测试", "灰度发布"},
			Structure: [3]string{"核心成果", "问题与解决", "下周重点"},
			Tone:      "专业、技术导向、结果驱动",
		},
		English: {
			Name:      "Internet Style",
			Keywords:  []string{"data-driven", "agile iteration", "technical terms", "user experience", "performance optimization", "A/B testing", "gradual rollout"},
			Structure: [3]string{"Key Achievements", "Problems & Solutions", "Next Week Focus"},
			Tone:      "Professional, technology-oriented, results-driven",
		},
	},
	StateOwned: {
		Chinese: {
			Name:      "国企风格",
			Keywords:  []string{"稳步推进", "贯彻落实", "提高认识", "加强领导", "统筹协调", "确保完成", "取得实效"},
			Structure: [3]string{"工作完成情况", "存在问题", "下一步打算"},
			Tone:      "正式、稳重、政策导向",
		},
		English: {
			Name:      "State-Owned Enterprise Style",
			Keywords:  []string{"steady progress", "implementation", "awareness improvement", "leadership strengthening", "coordination", "ensuring completion", "achieving results"},
			Structure: [3]string{"Work Completion", "Existing Problems", "Next Steps"},
			Tone:      "Formal, steady, policy-oriented",
		},
	},
	Foreign: {
		Chinese: {
			Name:      "外企风格",
			Keywords:  []string{"OKR完成情况", "stakeholder沟通", "alignment", "deliverable", "KPI", "roadmap", "sync-up"},
			Structure: [3]string{"主要成就", "挑战与解决方案", "下周计划"},
			Tone:      "国际化、目标导向、协作",
		},
		English: {
			Name:      "Foreign Company Style",
			Keywords:  []string{"OKR completion", "stakeholder communication", "alignment", "deliverables", "KPI", "roadmap", "sync-up"},
			Structure: [3]string{"Key Achievements", "Challenges & Solutions", "Next Week Plan"},
			Tone:      "International, goal-oriented, collaborative",
		},
	},
	Government: {
		Chinese: {
			Name:      "体制内风格",
			Keywords:  []string{"在领导下", "认真学习", "贯彻落实", "提高政治站位", "服务大局", "担当作为", "履职尽责"},
			Structure: [3]string{"主要工作", "存在问题", "下步计划"},
			Tone:      "政治性、规范性、程序性",
		},
		English: {
			Name:      "Government Style",
			Keywords:  []string{"under leadership", "serious study", "implementation", "political awareness", "serving the overall situation", "taking responsibility", "performing duties"},
			Structure: [3]string{"Main Work", "Existing Problems", "Next Steps"},
			Tone:      "Political, normative, procedural",
		},
	},
	Freelancer: {
		Chinese: {
			Name:      "自由职业者",
			Keywords:  []string{"客户反馈", "项目进展", "时间投入", "收入情况", "技能提升", "网络建设", "时间管理"},
			Structure: [3]string{"项目完成情况", "遇到的问题", "下周安排"},
			Tone:      "灵活、务实、个人成长导向",
		},
		English: {
			Name:      "Freelancer Style",
			Keywords:  []string{"client feedback", "project progress", "time investment", "income situation", "skill improvement", "network building", "time management"},
			Structure: [3]string{"Project Completion", "Problems Encountered", "Next Week Arrangements"},
			Tone:      "Flexible, practical, personal growth-oriented",
		},
	},
}

// Resolve returns the style metadata for key in lang, substituting the
// default style and the default language where needed. The returned
// Keywords slice is a copy.
func Resolve(key, lang string) Info {
	key = NormalizeKey(key)
	byLang := catalog[key]
	info, ok := byLang[lang]
	if !ok {
		lang = DefaultLanguage
		info = byLang[lang]
	}
	info.Key = key
	info.Language = lang
	info.Keywords = append([]string(nil), info.Keywords...)
	return info
}

// NormalizeKey returns key if it names a known style, else DefaultKey.
func NormalizeKey(key string) string {
	if _, ok := catalog[key]; ok {
		return key
	}
	return DefaultKey
}

// NormalizeLanguage returns lang if it is supported, else DefaultLanguage.
func NormalizeLanguage(lang string) string {
	for _, l := range languages {
		if l == lang {
			return lang
		}
	}
	return DefaultLanguage
}

// Keys returns every style key in catalog order.
func Keys() []string {
	return append([]string(nil), order...)
}

// Languages returns the supported language identifiers.
func Languages() []string {
	return append([]string(nil), languages...)
}

// All returns the localized info of every style in catalog order.
func All(lang string) []Info {
	out := make([]Info, 0, len(order))
	for _, key := range order {
		out = append(out, Resolve(key, lang))
	}
	return out
}
