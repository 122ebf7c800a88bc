// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

// DefaultSpecs returns the built-in provider table.
func DefaultSpecs() []Spec {
	return []Spec{
		{
			ID:          "openrouter",
			Name:        "OpenRouter",
			Description: "Aggregator platform for many AI models, with a free allowance",
			Website:     "https://openrouter.ai",
			FreeTier:    true,
			Quota:       "100 requests/day",
			Models: []string{
				"openai/gpt-3.5-turbo",
				"openai/gpt-4",
				"anthropic/claude-3-haiku",
				"meta-llama/llama-3-70b-instruct",
			},
			DefaultModel: "openai/gpt-3.5-turbo",
			Endpoints:    []string{"https://openrouter.ai/api/v1/chat/completions"},
			Headers: map[string]string{
				"HTTP-Referer": "https://github.com/cleao2/ai_weekly_report",
				"X-Title":      "AI Weekly Report Generator",
			},
			Shape:              ShapeChat,
			Params:             map[string]any{"top_p": 0.9},
			RequiresCredential: true,
		},
		{
			ID:          "together",
			Name:        "Together AI",
			Description: "AI cloud focused on open-source models",
			Website:     "https://together.ai",
			FreeTier:    true,
			Quota:       "$25 starting credits",
			Models: []string{
				"meta-llama/Llama-3-70b-chat-hf",
				"mistralai/Mixtral-8x7B-Instruct-v0.1",
				"codellama/CodeLlama-34b-Instruct-hf",
			},
			DefaultModel:       "meta-llama/Llama-3-70b-chat-hf",
			ProbeModel:         "meta-llama/Llama-3-8b-chat-hf",
			Endpoints:          []string{"https://api.together.xyz/v1/chat/completions"},
			Shape:              ShapeChat,
			Params:             map[string]any{"top_p": 0.9, "repetition_penalty": 1.1},
			RequiresCredential: true,
		},
		{
			ID:          "huggingface",
			Name:        "Hugging Face",
			Description: "Hosted inference for a large catalog of open models",
			Website:     "https://huggingface.co",
			FreeTier:    true,
			Quota:       "30k tokens/month",
			Models: []string{
				"mistralai/Mistral-7B-Instruct-v0.2",
				"google/flan-t5-xxl",
				"microsoft/phi-2",
			},
			DefaultModel:       "mistralai/Mistral-7B-Instruct-v0.2",
			Endpoints:          []string{"https://api-inference.huggingface.co/models/{model}"},
			Shape:              ShapeTextInputs,
			Params:             map[string]any{"top_p": 0.9},
			RequiresCredential: true,
		},
		{
			ID:           "deepseek",
			Name:         "DeepSeek",
			Description:  "DeepSeek chat and code models",
			Website:      "https://www.deepseek.com",
			FreeTier:     true,
			Models:       []string{"deepseek-chat", "deepseek-reasoner"},
			DefaultModel: "deepseek-chat",
			// Both URL forms are documented; some accounts only answer on one.
			Endpoints: []string{
				"https://api.deepseek.com/chat/completions",
				"https://api.deepseek.com/v1/chat/completions",
			},
			Shape:              ShapeChat,
			Params:             map[string]any{"stream": false},
			RequiresCredential: true,
		},
		{
			ID:                 "openai",
			Name:               "OpenAI",
			Description:        "Official ChatGPT API",
			Website:            "https://openai.com",
			FreeTier:           false,
			Models:             []string{"gpt-3.5-turbo", "gpt-4o-mini", "gpt-4o"},
			DefaultModel:       "gpt-3.5-turbo",
			Endpoints:          []string{"https://api.openai.com/v1/chat/completions"},
			Shape:              ShapeChat,
			RequiresCredential: true,
		},
		{
			ID:                 "qwen",
			Name:               "Qwen",
			Description:        "Alibaba Cloud Tongyi Qianwen, fast from mainland China",
			Website:            "https://www.aliyun.com/product/ai",
			FreeTier:           true,
			Models:             []string{"qwen-turbo", "qwen-plus", "qwen-max"},
			DefaultModel:       "qwen-turbo",
			Endpoints:          []string{"https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions"},
			Shape:              ShapeChat,
			RequiresCredential: true,
		},
		{
			ID:                 "spark",
			Name:               "iFlytek Spark",
			Description:        "iFlytek Spark large model (讯飞星火)",
			Website:            "https://xinghuo.xfyun.cn",
			FreeTier:           true,
			Models:             []string{"generalv3.5"},
			DefaultModel:       "generalv3.5",
			Endpoints:          []string{"https://api-spark.xfyun.cn/v3.5/chat"},
			Shape:              ShapeChat,
			RequiresCredential: true,
		},
	}
}
