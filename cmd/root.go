package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	catalogPath  string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
	threshold    float64
	logMode      string
)

// exitFunc is swapped out in tests.
var exitFunc = os.Exit

var rootCmd = &cobra.Command{
	Use:   "tmmi",
	Short: "TMMi maturity scoring and progression-readiness engine",
	Long: `tmmi scores TMMi-style maturity assessments against a question catalog.

It determines the achieved maturity level, rolls practices up into goals and
process areas, decides whether the organisation is ready for the next level,
and lists the gaps that block it.

The catalog is read from --catalog (default data/tmmi_questions.json) or from
a .tmmirc.json / .tmmirc.yaml file in the working directory.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitFunc(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "Question catalog (JSON or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format for reports (console|json)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file for reports (requires --format json)")
	rootCmd.PersistentFlags().Float64Var(&threshold, "threshold", 80, "Level attainment percentage required to achieve a level")
	rootCmd.PersistentFlags().StringVar(&logMode, "log-mode", "development", "Logger mode (development|production)")

	viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("levelThreshold", rootCmd.PersistentFlags().Lookup("threshold"))
	viper.BindPFlag("logMode", rootCmd.PersistentFlags().Lookup("log-mode"))
}

// fail reports err the way every subcommand does and exits non-zero.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exitFunc(1)
}
