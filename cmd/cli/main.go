package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL     string
	householdID string
	timeout     time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "homebudget-cli",
		Short: "HomeBudget CLI tool",
		Long:  `A command line interface for interacting with the HomeBudget API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the HomeBudget API")
	rootCmd.PersistentFlags().StringVar(&householdID, "household", "", "Household ID (required)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Report commands
	reportsCmd := &cobra.Command{
		Use:   "reports",
		Short: "Derived report views",
	}
	reportsCmd.AddCommand(summaryCmd(), trendCmd(), breakdownCmd(), monthsCmd())
	rootCmd.AddCommand(reportsCmd)

	// Transaction commands
	transactionsCmd := &cobra.Command{
		Use:   "transactions",
		Short: "Transaction operations",
	}
	transactionsCmd.AddCommand(listTransactionsCmd())
	rootCmd.AddCommand(transactionsCmd)

	// Savings commands
	savingsCmd := &cobra.Command{
		Use:   "savings",
		Short: "Savings account operations",
	}
	savingsCmd.AddCommand(listSavingsCmd())
	rootCmd.AddCommand(savingsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Current-month and all-time totals",
		Run: func(cmd *cobra.Command, args []string) {
			fetchAndPrint("/reports/summary")
		},
	}
}

func trendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Cumulative balance series",
		Run: func(cmd *cobra.Command, args []string) {
			fetchAndPrint("/reports/trend")
		},
	}
}

func breakdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "breakdown",
		Short: "Current-month per-category outflow shares",
		Run: func(cmd *cobra.Command, args []string) {
			fetchAndPrint("/reports/breakdown")
		},
	}
}

func monthsCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "months",
		Short: "Transactions grouped by calendar month",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/reports/monthly"
			if year != 0 {
				path = fmt.Sprintf("%s?year=%d", path, year)
			}
			fetchAndPrint(path)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Only show months of this year")
	return cmd
}

func listTransactionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the household's transactions",
		Run: func(cmd *cobra.Command, args []string) {
			fetchAndPrint("/transactions")
		},
	}
}

func listSavingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List savings accounts with profit stats",
		Run: func(cmd *cobra.Command, args []string) {
			fetchAndPrint("/savings")
		},
	}
}

func fetchAndPrint(path string) {
	if householdID == "" {
		fmt.Println("missing required --household flag")
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	url := fmt.Sprintf("%s/api/v1/households/%s%s", baseURL, householdID, path)

	resp, err := client.Get(url)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
