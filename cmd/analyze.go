package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aqlanhadi/saham/analyzer"
	"github.com/aqlanhadi/saham/workbook"
)

var (
	outputDir  string
	jsonOutput bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyzes a share awaiting report",
	Long: `Analyzes a share awaiting report export.
This command parses the spreadsheet, classifies every pending
transaction against the settlement deadline rules and writes a
workbook with the action summary and the client messages.`,
	Run: handler,
}

func handler(cmd *cobra.Command, args []string) {
	// Access the configuration using Viper
	target := viper.GetString("target")
	if target == "" {
		fmt.Fprintln(os.Stderr, "error: no report file given")
		os.Exit(1)
	}
	fmt.Println("analyzing ", target)

	grid, err := workbook.ReadGrid(target)
	if err != nil {
		log.Printf("failed to read %s: %v", target, err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	source := filepath.Base(target)
	analysis, err := analyzer.Analyze(grid, source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		asJSON, _ := json.Marshal(analysis)
		fmt.Println(string(asJSON))
		return
	}

	fmt.Printf("%d transactions, %d need action (%d reminders, %d force selling)\n",
		analysis.TotalTransactions, analysis.ActionRequired, analysis.Reminders, analysis.ForceSelling)

	if analysis.ActionRequired == 0 {
		fmt.Println("all accounts settled, no actions required")
	}

	report, err := workbook.BuildReport(analysis)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer report.Close()

	outPath := filepath.Join(outputDir, workbook.ReportFileName(viper.GetString("report.output_prefix"), time.Now()))
	if err := report.SaveAs(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to write report: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("report written to ", outPath)
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("file", "f", "", "Share awaiting report to analyze")
	viper.BindPFlag("target", analyzeCmd.Flags().Lookup("file"))
	analyzeCmd.Flags().StringVarP(&outputDir, "out", "o", ".", "Directory for the generated workbook")
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the analysis as JSON instead of writing a workbook")
}
