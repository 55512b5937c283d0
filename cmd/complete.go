package cmd

import (
	"maps"

	"github.com/etnz/rebalancer/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the rebal command line for shell completion.
func Completion() *complete.Command {
	holdings := predict.Or(predict.Files("*.csv"), predict.Files("*.xlsx"), predict.Files("*.xlsm"))
	output := predict.Or(predict.Files("*.csv"), predict.Files("*.xlsx"))
	columns := map[string]complete.Predictor{
		"symbol-col": predict.Something,
		"qty-col":    predict.Something,
		"price-col":  predict.Something,
		"market-col": predict.Something,
	}
	with := func(extra map[string]complete.Predictor) map[string]complete.Predictor {
		flags := maps.Clone(columns)
		maps.Copy(flags, extra)
		return flags
	}
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config-file": predict.Files("*.json"),
			"currency":    predict.Set{"INR", "USD", "EUR", "GBP"},
			"v":           predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"columns":   {Flags: with(nil), Args: holdings},
			"drift":     {Flags: with(map[string]complete.Predictor{"o": output}), Args: holdings},
			"rebalance": {Flags: with(map[string]complete.Predictor{"o": output}), Args: holdings},
			"invest": {
				Flags: with(map[string]complete.Predictor{
					"o":        output,
					"amount":   predict.Something,
					"price":    predict.Something,
					"no-floor": predict.Nothing,
				}),
				Args: holdings,
			},
			"key": {
				Flags: map[string]complete.Predictor{"provider": predict.Set{"groq", "gemini"}},
				Args:  predict.Set{"set", "clear", "show"},
			},
			"topic": {
				Flags: map[string]complete.Predictor{"list": predict.Nothing},
				Args:  predict.Set(append(topics, "readme")),
			},
			"help":  {Args: predict.Set{"columns", "drift", "rebalance", "invest", "key", "topic"}},
		},
	}
}
