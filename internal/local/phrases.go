// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package local

import "weeklyreport/internal/style"

// family is one set of interchangeable phrasings. {item} is replaced by
// the bullet text and {kw} by a keyword drawn from the style.
type family []string

// phrasing holds the three families of one style in one language.
type phrasing struct {
	completed family
	problems  family
	plans     family
}

var phrases = map[string]map[string]phrasing{
	style.Internet: {
		style.Chinese: {
			completed: family{"{item}：通过{kw}方法，取得了显著成效", "{item}：采用{kw}策略，提升了工作效率", "{item}：基于{kw}原则，优化了工作流程"},
			problems:  family{"技术问题：{item}，已通过{kw}解决", "体验问题：{item}，正在优化{kw}方案", "协作问题：{item}，通过{kw}改善沟通"},
			plans:     family{"{item}：预计完成{kw}功能", "{item}：进行{kw}测试", "{item}：优化{kw}性能"},
		},
		style.English: {
			completed: family{"{item}: Achieved significant results through {kw} method", "{item}: Improved work efficiency by adopting {kw} strategy", "{item}: Optimized workflow based on {kw} principle"},
			problems:  family{"Technical issue: {item}, resolved through {kw}", "Experience issue: {item}, optimizing {kw} solution", "Collaboration issue: {item}, improved communication through {kw}"},
			plans:     family{"{item}: Expected to complete {kw} feature", "{item}: Conduct {kw} testing", "{item}: Optimize {kw} performance"},
		},
	},
	style.StateOwned: {
		style.Chinese: {
			completed: family{"{item}：按照上级要求，{kw}，确保任务完成", "{item}：认真贯彻落实，{kw}，取得阶段性成果", "{item}：在领导指导下，{kw}，推进工作落实"},
			problems:  family{"存在问题：{item}，需要{kw}加以解决", "困难挑战：{item}，正在{kw}协调推进", "不足之处：{item}，将{kw}改进提升"},
			plans:     family{"{item}：{kw}，确保任务完成", "{item}：{kw}，推进工作落实", "{item}：{kw}，提高工作成效"},
		},
		style.English: {
			completed: family{"{item}: According to superior requirements, {kw}, ensuring task completion", "{item}: Seriously implemented, {kw}, achieved phased results", "{item}: Under leadership guidance, {kw}, promoted work implementation"},
			problems:  family{"Existing problem: {item}, needs {kw} to solve", "Difficulty challenge: {item}, coordinating through {kw}", "Shortcoming: {item}, will improve through {kw}"},
			plans:     family{"{item}: {kw}, ensuring task completion", "{item}: {kw}, promoting work implementation", "{item}: {kw}, improving work effectiveness"},
		},
	},
	style.Foreign: {
		style.Chinese: {
			completed: family{"{item}：成功与利益相关者{kw}", "{item}：提前交付{kw}", "{item}：通过有效协作实现{kw}"},
			problems:  family{"挑战：{item}，通过{kw}解决", "问题：{item}，解决方案涉及{kw}", "困难：{item}，正在制定{kw}方法"},
			plans:     family{"{item}：专注于{kw}交付物", "{item}：计划{kw}对齐", "{item}：安排{kw}会议"},
		},
		style.English: {
			completed: family{"{item}: Successfully {kw} with stakeholders", "{item}: Delivered {kw} ahead of schedule", "{item}: Achieved {kw} through effective collaboration"},
			problems:  family{"Challenge: {item}, addressed through {kw}", "Issue: {item}, solution involves {kw}", "Problem: {item}, working on {kw} approach"},
			plans:     family{"{item}: Focus on {kw} deliverables", "{item}: Plan for {kw} alignment", "{item}: Schedule {kw} meetings"},
		},
	},
	style.Government: {
		style.Chinese: {
			completed: family{"{item}：{kw}，认真履行职责", "{item}：{kw}，服务大局需要", "{item}：{kw}，提高工作水平"},
			problems:  family{"存在问题：{item}，需要{kw}", "不足之处：{item}，将{kw}", "困难挑战：{item}，正在{kw}"},
			plans:     family{"{item}：{kw}，认真组织实施", "{item}：{kw}，确保取得实效", "{item}：{kw}，提高工作水平"},
		},
		style.English: {
			completed: family{"{item}: {kw}, seriously performing duties", "{item}: {kw}, serving the overall situation", "{item}: {kw}, improving work level"},
			problems:  family{"Existing problem: {item}, needs {kw}", "Shortcoming: {item}, will {kw}", "Difficulty challenge: {item}, currently {kw}"},
			plans:     family{"{item}: {kw}, seriously organizing implementation", "{item}: {kw}, ensuring actual results", "{item}: {kw}, improving work level"},
		},
	},
	style.Freelancer: {
		style.Chinese: {
			completed: family{"{item}：获得客户积极{kw}", "{item}：{kw}，项目进展顺利", "{item}：通过{kw}，提升了服务质量"},
			problems:  family{"遇到的问题：{item}，通过{kw}调整", "客户反馈：{item}，正在{kw}改进", "时间管理：{item}，优化{kw}安排"},
			plans:     family{"{item}：安排{kw}时间", "{item}：准备{kw}材料", "{item}：进行{kw}沟通"},
		},
		style.English: {
			completed: family{"{item}: Received positive {kw} from clients", "{item}: {kw}, project progress smoothly", "{item}: Through {kw}, improved service quality"},
			problems:  family{"Problem encountered: {item}, adjusted through {kw}", "Client feedback: {item}, improving through {kw}", "Time management: {item}, optimizing {kw} arrangement"},
			plans:     family{"{item}: Arrange {kw} time", "{item}: Prepare {kw} materials", "{item}: Conduct {kw} communication"},
		},
	},
}

// phrasingFor returns the families for an already-resolved style info.
func phrasingFor(info style.Info) phrasing {
	return phrases[info.Key][info.Language]
}
