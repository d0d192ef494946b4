// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

// Topic names referenced by the scoring tables.
const (
	BehavioralFinance    = "behavioral_finance"
	AssetPricing         = "asset_pricing"
	MarketMicrostructure = "market_microstructure"
	NLPFinance           = "nlp_finance"
	TailRisk             = "tail_risk"
	CorporateFinance     = "corporate_finance"
	GenderFinance        = "gender_finance"
	QuantTrading         = "quant_trading"
)

// Method tag names produced by Methods().
const (
	MethodMachineLearning = "machine_learning"
	MethodEmpirical       = "empirical"
	MethodTheoretical     = "theoretical"
	MethodTextAnalysis    = "text_analysis"
	MethodHighFrequency   = "high_frequency"
	MethodPortfolio       = "portfolio_methods"
	MethodCausalInference = "causal_inference"
)

var defaultTopics = MustNew([]Topic{
	{Name: BehavioralFinance, Label: "Behavioral", Color: "#e94560", Keywords: []string{
		"behavioral finance", "investor sentiment", "market sentiment",
		"overconfidence", "loss aversion", "prospect theory",
		"attention allocation", "limited attention", "salience",
		"extrapolation", "belief formation", "diagnostic expectations",
		"anchoring", "herding", "disposition effect", "narrative finance",
		"investor psychology", "retail investor", "household finance",
	}},
	{Name: AssetPricing, Label: "Asset Pricing", Color: "#00b4d8", Keywords: []string{
		"asset pricing", "risk premium", "factor model", "anomaly",
		"cross-sectional returns", "time-series predictability",
		"expected returns", "momentum", "value premium",
		"machine learning asset pricing", "neural network returns",
		"quantile regression finance", "stochastic discount factor",
		"no-arbitrage", "option pricing", "variance risk premium",
		"factor zoo", "monthly returns",
	}},
	{Name: MarketMicrostructure, Label: "Microstructure", Color: "#f5a623", Keywords: []string{
		"market microstructure", "price discovery", "liquidity",
		"high frequency trading", "order flow", "informed trading",
		"insider trading", "information asymmetry", "bid-ask spread",
		"dark pool", "market making", "adverse selection",
	}},
	{Name: NLPFinance, Label: "NLP/LLM", Color: "#06d6a0", Keywords: []string{
		"text analysis finance", "NLP finance", "LLM finance",
		"language model asset pricing", "transformer finance",
		"sentiment analysis stock", "news and returns", "ChatGPT finance",
		"large language model investment", "GPT stock prediction",
		"earnings call NLP", "10-K text analysis",
	}},
	{Name: TailRisk, Label: "Tail Risk", Color: "#ff6b6b", Keywords: []string{
		"tail risk", "downside risk", "crash risk", "volatility risk",
		"conditional value at risk", "extreme returns", "skewness premium",
		"jump risk", "rare disaster", "left tail", "systemic risk",
	}},
	{Name: CorporateFinance, Label: "Corp Finance", Color: "#7b2d8b", Keywords: []string{
		"corporate finance", "capital structure", "CEO", "board of directors",
		"managerial incentives", "executive compensation", "M&A",
		"mergers and acquisitions", "corporate governance", "firm investment",
		"dividend policy", "payout policy", "IPO", "seasoned equity offering",
		"debt financing", "financial constraints", "cash holdings",
		"corporate debt", "credit risk", "default risk", "bankruptcy",
		"private equity", "venture capital", "financial distress",
	}},
	{Name: GenderFinance, Label: "Gender", Color: "#ff9f43", Keywords: []string{
		"gender finance", "gender gap", "female CEO", "women board",
		"gender diversity", "glass ceiling", "gender discrimination",
		"female executives", "gender pay gap", "gender investment",
		"women entrepreneurship", "gender bias finance", "female investor",
		"gender and risk", "maternity leave firm", "gender board diversity",
		"racial diversity board", "diversity inclusion finance",
	}},
	{Name: QuantTrading, Label: "Quant Trading", Color: "#45b7d1", Keywords: []string{
		"quantitative trading", "algorithmic trading", "systematic trading",
		"backtesting", "trading strategy", "alpha generation",
		"machine learning trading", "reinforcement learning trading",
		"deep learning portfolio", "factor investing", "smart beta",
		"statistical arbitrage", "pairs trading", "mean reversion strategy",
		"trend following", "CTA", "risk parity", "portfolio optimization",
		"dynamic asset allocation", "execution algorithm", "market impact",
		"transaction costs", "Kelly criterion", "Sharpe ratio optimization",
		"neural network trading", "LSTM forecasting returns",
		"gradient boosting finance", "random forest stock selection",
	}},
})

var defaultMethods = MustNew([]Topic{
	{Name: MethodMachineLearning, Keywords: []string{
		"machine learning", "neural network", "deep learning", "transformer",
		"llm", "gpt", "reinforcement learning", "gradient boosting",
	}},
	{Name: MethodEmpirical, Keywords: []string{
		"regression", "panel data", "fixed effects", "instrumental variable",
		"difference-in-differences",
	}},
	{Name: MethodTheoretical, Keywords: []string{
		"equilibrium", "theorem", "proof", "proposition",
	}},
	{Name: MethodTextAnalysis, Keywords: []string{
		"nlp", "text analysis", "sentiment", "language model", "topic model",
	}},
	{Name: MethodHighFrequency, Keywords: []string{
		"high frequency", "intraday", "order flow", "microstructure",
	}},
	{Name: MethodPortfolio, Keywords: []string{
		"portfolio optimization", "sharpe", "alpha", "backt", "factor", "risk parity",
	}},
	{Name: MethodCausalInference, Keywords: []string{
		"causal", "regression discontinuity", "natural experiment",
	}},
})

// Default returns the built-in finance research taxonomy.
func Default() Taxonomy { return defaultTopics }

// Methods returns the built-in methodology tag table used to derive AI tags.
func Methods() Taxonomy { return defaultMethods }
