package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pennywise-cli",
		Short: "Pennywise CLI tool",
		Long:  `A command line interface for interacting with the Pennywise API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Pennywise API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(transactionsCmd())
	rootCmd.AddCommand(budgetsCmd())
	rootCmd.AddCommand(goalsCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Transaction operations",
	}

	var (
		txType   string
		search   string
		category string
		limit    int
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Run: func(cmd *cobra.Command, args []string) {
			query := url.Values{}
			if txType != "" {
				query.Set("type", txType)
			}
			if search != "" {
				query.Set("search", search)
			}
			if category != "" {
				query.Set("categories", category)
			}
			if limit > 0 {
				query.Set("limit", fmt.Sprintf("%d", limit))
			}
			getAndPrint("/api/v1/transactions/?" + query.Encode())
		},
	}
	listCmd.Flags().StringVar(&txType, "type", "", "Filter by type (income or expense)")
	listCmd.Flags().StringVar(&search, "search", "", "Search in descriptions")
	listCmd.Flags().StringVar(&category, "category", "", "Filter by category")
	listCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results")

	cmd.AddCommand(listCmd)

	return cmd
}

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Budget operations",
	}

	var month, year string

	overviewCmd := &cobra.Command{
		Use:   "overview",
		Short: "Show budget consumption for a month",
		Run: func(cmd *cobra.Command, args []string) {
			query := url.Values{}
			if month != "" {
				query.Set("month", month)
			}
			if year != "" {
				query.Set("year", year)
			}
			getAndPrint("/api/v1/budgets/overview?" + query.Encode())
		},
	}
	overviewCmd.Flags().StringVar(&month, "month", "", "Month (01-12, defaults to current)")
	overviewCmd.Flags().StringVar(&year, "year", "", "Year (defaults to current)")

	cmd.AddCommand(overviewCmd)

	return cmd
}

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Savings goal operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List savings goals",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/goals/")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show aggregate savings progress",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/goals/stats")
		},
	})

	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reporting operations",
	}

	var month, year string

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the monthly dashboard summary",
		Run: func(cmd *cobra.Command, args []string) {
			query := url.Values{}
			if month != "" {
				query.Set("month", month)
			}
			if year != "" {
				query.Set("year", year)
			}
			getAndPrint("/api/v1/reports/summary?" + query.Encode())
		},
	}
	summaryCmd.Flags().StringVar(&month, "month", "", "Month (1-12, defaults to current)")
	summaryCmd.Flags().StringVar(&year, "year", "", "Year (defaults to current)")

	cmd.AddCommand(summaryCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "trends",
		Short: "Show income and expense trends",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/reports/trends")
		},
	})

	return cmd
}

func getAndPrint(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
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
