// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Demo returns the fixed placeholder dataset used for --demo runs and when
// every source comes back empty. Records carry no date so they are stamped
// with the run date.
func Demo() []types.RawRecord {
	return []types.RawRecord{
		{
			Source:   "NBER",
			ID:       "demo-nber-attention",
			Title:    "Transformer Attention and Cross-Sectional Return Predictability",
			Authors:  "J. Smith, L. Chen",
			Abstract: "We apply transformer attention mechanisms to measure time-varying investor attention and demonstrate predictability in cross-sectional returns. Stocks with elevated attention earn significant alphas after controlling for known risk factors.",
			URL:      "https://www.nber.org",
		},
		{
			Source:   "SSRN",
			ID:       "demo-ssrn-quantile",
			Title:    "Quantile Sentiment and Tail Risk Premia",
			Authors:  "M. Zhang, S. Park",
			Abstract: "We develop a quantile-based framework linking sentiment-induced belief distortions to tail risk premia. Diagnostic expectations shift quantile preference parameters asymmetrically, generating excess skewness in the cross-section.",
			URL:      "https://www.ssrn.com",
		},
		{
			Source:     "arXiv",
			ID:         "demo-arxiv-execution",
			Title:      "Reinforcement Learning for Optimal Execution",
			Authors:    "A. Wang",
			Abstract:   "We train deep RL agents on a realistic limit order book simulator. Our agent outperforms TWAP/VWAP benchmarks by 15 bps on average while controlling market impact.",
			URL:        "https://arxiv.org",
			Categories: []string{"q-fin.TR", "cs.LG"},
		},
		{
			Source:   "NBER",
			ID:       "demo-nber-gender",
			Title:    "Gender Diversity and Corporate Innovation: Causal Evidence",
			Authors:  "E. Johnson",
			Abstract: "Using board gender quota legislation as a natural experiment, we identify the causal effect of female board representation on corporate innovation. Firms with more female directors file significantly more patents.",
			URL:      "https://www.nber.org",
		},
		{
			Source:     "arXiv",
			ID:         "demo-arxiv-factor-zoo",
			Title:      "Deep Learning for Factor Zoo: Neural Alpha Prediction",
			Authors:    "Y. Liu",
			Abstract:   "We train a deep neural network on 200+ firm characteristics to predict monthly returns. Out-of-sample Sharpe ratio reaches 2.1 with modest transaction costs.",
			URL:        "https://arxiv.org",
			Categories: []string{"q-fin.PM", "cs.LG"},
		},
	}
}

// DemoSource serves Demo as a Source.
type DemoSource struct{}

// Name returns the source identifier.
func (DemoSource) Name() string { return "demo" }

// Fetch returns the demo records.
func (DemoSource) Fetch(context.Context) ([]types.RawRecord, error) { return Demo(), nil }
