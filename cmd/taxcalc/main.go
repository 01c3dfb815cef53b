package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/kobiz/taxcalc/internal/calculation"
	"github.com/kobiz/taxcalc/internal/config"
	"github.com/kobiz/taxcalc/internal/domain"
	"github.com/kobiz/taxcalc/internal/output"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "taxcalc",
	Short: "Korean business tax and investment calculator CLI",
	Long:  "Corporate tax, gift tax, VAT and investment appraisal calculations for consulting engagements",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "taxcalc %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

// newEngine builds the engine from --rates (falling back to the built-in
// 2024 table) and wires the debug logger.
func newEngine(cmd *cobra.Command) (*calculation.Engine, error) {
	ratesFile, _ := cmd.Flags().GetString("rates")

	var engine *calculation.Engine
	if ratesFile != "" {
		parser := config.NewRateTableParser()
		table, err := parser.LoadFromFile(ratesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load rate table: %w", err)
		}
		engine = calculation.NewEngine(table)
	} else {
		engine = calculation.NewDefaultEngine()
	}

	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine, nil
}

func printResult(cmd *cobra.Command, result any) error {
	format, _ := cmd.Flags().GetString("format")
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("unsupported format: %s", format)
	}
	data, err := formatter.Format(result)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

var corporateCmd = &cobra.Command{
	Use:   "corporate [input-file]",
	Short: "Calculate corporate income tax",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		var input domain.CorporateTaxInput
		if err := config.LoadInputFile(args[0], &input); err != nil {
			return err
		}
		result, err := engine.CalculateCorporateTax(&input)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

var giftCmd = &cobra.Command{
	Use:   "gift [input-file]",
	Short: "Calculate gift tax with 10-year aggregation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		var input domain.GiftTaxInput
		if err := config.LoadInputFile(args[0], &input); err != nil {
			return err
		}
		result, err := engine.CalculateGiftTax(&input)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

var vatCmd = &cobra.Command{
	Use:   "vat [input-file]",
	Short: "Calculate VAT under the applicable regime",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		var input domain.VATInput
		if err := config.LoadInputFile(args[0], &input); err != nil {
			return err
		}
		result, err := engine.CalculateVAT(&input)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

var investCmd = &cobra.Command{
	Use:   "invest [input-file]",
	Short: "Run the investment appraisal (NPV, IRR, payback, DSCR)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		var input domain.InvestmentInput
		if err := config.LoadInputFile(args[0], &input); err != nil {
			return err
		}
		result, err := engine.AnalyzeInvestment(&input)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios [input-file]",
	Short: "Run pessimistic/neutral/optimistic scenarios",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		var input domain.InvestmentInput
		if err := config.LoadInputFile(args[0], &input); err != nil {
			return err
		}
		result, err := engine.AnalyzeScenarios(&input)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [input-file]",
	Short: "Sweep one parameter and report the NPV/IRR series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		var input domain.InvestmentInput
		if err := config.LoadInputFile(args[0], &input); err != nil {
			return err
		}
		parameter, _ := cmd.Flags().GetString("parameter")
		result, err := engine.AnalyzeSensitivity(&input, domain.SensitivityParameter(parameter))
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [corporate|gift|vat|invest] [input-file]",
	Short: "Validate an input file without computing",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		var result *domain.ValidationResult
		switch args[0] {
		case "corporate":
			var input domain.CorporateTaxInput
			if err := config.LoadInputFile(args[1], &input); err != nil {
				return err
			}
			result = engine.ValidateCorporateTax(&input)
		case "gift":
			var input domain.GiftTaxInput
			if err := config.LoadInputFile(args[1], &input); err != nil {
				return err
			}
			result = engine.ValidateGiftTax(&input)
		case "vat":
			var input domain.VATInput
			if err := config.LoadInputFile(args[1], &input); err != nil {
				return err
			}
			result = engine.ValidateVAT(&input)
		case "invest":
			var input domain.InvestmentInput
			if err := config.LoadInputFile(args[1], &input); err != nil {
				return err
			}
			result = engine.ValidateInvestment(&input)
		default:
			return fmt.Errorf("unknown calculator: %s", args[0])
		}
		return printResult(cmd, result)
	},
}

func main() {
	rootCmd.PersistentFlags().String("rates", "", "rate table YAML file (default: built-in 2024 table)")
	rootCmd.PersistentFlags().String("format", "console", "output format (console, json)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	sensitivityCmd.Flags().String("parameter", string(domain.ParamDiscountRate), "parameter to sweep")

	rootCmd.AddCommand(corporateCmd, giftCmd, vatCmd, investCmd, scenariosCmd, sensitivityCmd, validateCmd, versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
