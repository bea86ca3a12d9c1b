package main

import (
	"fmt"
	"os"
	"time"

	"creditlens/internal/ai"
	"creditlens/internal/analysis"
	"creditlens/internal/extract"
	"creditlens/pkg/types"

	"github.com/k0kubun/pp/v3"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// analyzeCommand runs the extraction and analysis stages against a
// local file without touching the database or object storage. Useful
// for tuning the pattern extractor and provider prompts.
var analyzeCommand = &cli.Command{
	Name:      "analyze",
	Usage:     "Analyze a local credit report file and print the result",
	ArgsUsage: "[file]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "provider",
			Aliases: []string{"p"},
			Usage:   "Extraction provider (pattern, openai, anthropic, gemini, openrouter, azure)",
			Value:   analysis.ProviderPattern,
		},
		&cli.BoolFlag{
			Name:  "demo",
			Usage: "Analyze the built-in sample report instead of a file",
		},
		&cli.StringFlag{
			Name:  "policy",
			Usage: "Score policy version",
			Value: "v2",
		},
	},
	Action: analyze,
}

func analyze(c *cli.Context) error {
	logger := logrus.New()
	policy := analysis.PolicyFromName(c.String("policy"))

	var parsed *types.ParsedReport

	if c.Bool("demo") {
		parsed = extract.SampleReport()
	} else {
		if c.NArg() != 1 {
			return fmt.Errorf("expected exactly one file argument")
		}

		report, err := analyzeFile(c, logger, c.Args().First())
		if err != nil {
			return err
		}
		parsed = report
	}

	items := analysis.IdentifyNegativeItems(parsed.Accounts)
	items = analysis.MergeNegativeItems(items, parsed.NegativeItems)
	violations := analysis.DetectViolations(parsed.Accounts, items, time.Now())
	violations = append(violations, parsed.Violations...)
	summary := analysis.Summarize(parsed, items, violations, policy)

	pp.Println(parsed)
	pp.Println(items)
	pp.Println(violations)
	pp.Println(summary)

	return nil
}

func analyzeFile(c *cli.Context, logger *logrus.Logger, path string) (*types.ParsedReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	config, err := loadOfflineConfig()
	if err != nil {
		return nil, err
	}

	text, err := extract.NewTextExtractor(logger).ExtractText(data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	providerName := c.String("provider")
	if providerName == analysis.ProviderPattern {
		extraction := extract.NewPatternExtractor().ExtractFields(text.Text)
		switch extraction.Outcome {
		case extract.OutcomeFound:
			return extraction.Report, nil
		case extract.OutcomeEmpty:
			empty := &types.ParsedReport{}
			empty.EnsureDefaults()
			return empty, nil
		default:
			return nil, fmt.Errorf("pattern extraction failed: %s", extraction.Reason)
		}
	}

	provider, err := ai.NewRegistry(config, logger).Provider(providerName)
	if err != nil {
		return nil, err
	}

	input := ai.Input{FileData: data, MimeType: "application/pdf"}
	if !text.Scanned {
		input.Text = text.Text
	}

	return provider.Analyze(c.Context, input)
}

// loadOfflineConfig is loadConfig without the DATABASE_URL requirement.
func loadOfflineConfig() (*types.Config, error) {
	config := new(types.Config)
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}
	return config, nil
}
