package cmd

import (
	"github.com/etnz/cryptoath/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the ath command line.
func Completion() *complete.Command {
	topics, _ := docs.GetAllTopics()
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"generate": {
				Flags: map[string]complete.Predictor{
					"o":          predict.Files("*"),
					"format":     predict.Set{"html", "json", "md"},
					"commentary": predict.Nothing,
				},
			},
			"preview": {
				Flags: map[string]complete.Predictor{
					"view": predict.Something,
				},
			},
			"views": {},
			"hash":  {Args: predict.Something},
			"init": {
				Flags: map[string]complete.Predictor{
					"o": predict.Files("*.yaml"),
					"f": predict.Nothing,
				},
			},
			"topic": {Args: predict.Set(append(topics, "*"))},
		},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"v":      predict.Nothing,
		},
	}
}
