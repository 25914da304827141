// File path: cmd/reqx/main.go
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nexaqa/testforge/internal/extract"
	"github.com/nexaqa/testforge/internal/llm"
	"github.com/nexaqa/testforge/internal/scenario"
)

var asJSON bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "reqx",
		Short: "Extract requirements, user stories and acceptance criteria from documents",
	}
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print the raw bundle as JSON")

	extractCmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract a requirements bundle from a document",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	rootCmd.AddCommand(extractCmd)

	jiraCmd := &cobra.Command{
		Use:   "jira <export.json>",
		Short: "Extract stories from a JIRA export payload",
		Args:  cobra.ExactArgs(1),
		RunE:  runJira,
	}
	rootCmd.AddCommand(jiraCmd)

	scenariosCmd := &cobra.Command{
		Use:   "scenarios <file>",
		Short: "Extract a document and generate test scenarios for it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenarios,
	}
	scenariosCmd.Flags().Bool("strict", false, "fail when the response yields no scenarios")
	rootCmd.AddCommand(scenariosCmd)

	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	bundle, err := extract.ProcessDocument(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printBundle(bundle)
}

func runJira(cmd *cobra.Command, args []string) error {
	payload, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	bundle, err := extract.ProcessJiraExport(payload)
	if err != nil {
		return err
	}
	return printBundle(bundle)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	bundle, err := extract.ProcessDocument(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	generator := scenario.NewGenerator(llm.NewProvider())
	records, err := generator.Generate(cmd.Context(), bundle, strict)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(records)
	}
	for _, record := range records {
		color.Cyan("%s %s", record.ID, record.Title)
		if record.Description != "" {
			fmt.Println("  " + record.Description)
		}
		if record.Priority != "" {
			fmt.Println("  priority: " + record.Priority)
		}
	}
	return nil
}

func printBundle(bundle *extract.Bundle) error {
	if asJSON {
		return printJSON(bundle)
	}
	color.Green("document type: %s", bundle.DocumentType)
	if len(bundle.Requirements) > 0 {
		color.Cyan("requirements (%d):", len(bundle.Requirements))
		for _, req := range bundle.Requirements {
			fmt.Printf("  %-8s [%s] %s\n", req.ID, req.Type, req.Text)
		}
	}
	if len(bundle.UserStories) > 0 {
		color.Cyan("user stories (%d):", len(bundle.UserStories))
		for _, story := range bundle.UserStories {
			fmt.Printf("  as a %s, I want %s, so that %s\n", story.Role, story.Goal, story.Benefit)
		}
	}
	if len(bundle.AcceptanceCriteria) > 0 {
		color.Cyan("acceptance criteria (%d):", len(bundle.AcceptanceCriteria))
		for _, ac := range bundle.AcceptanceCriteria {
			fmt.Println("  - " + ac)
		}
	}
	for name, sheet := range bundle.Sheets {
		if len(sheet.Requirements) > 0 {
			color.Cyan("sheet %q requirements (%d):", name, len(sheet.Requirements))
			for _, req := range sheet.Requirements {
				fmt.Printf("  %-8s [%s] %s\n", req.ID, req.Type, req.Text)
			}
		} else {
			color.Yellow("sheet %q: %d generic rows", name, len(sheet.Rows))
		}
	}
	if len(bundle.Stories) > 0 {
		color.Cyan("jira stories (%d):", len(bundle.Stories))
		for _, story := range bundle.Stories {
			fmt.Printf("  %s %s [%s]\n", story.Key, story.Summary, story.Status)
		}
	}
	return nil
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
