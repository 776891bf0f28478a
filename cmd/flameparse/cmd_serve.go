package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"flameparse/internal/analyzer"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the analysis as MCP tools over stdio",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// reportCache keeps one finished analysis per capture path for the lifetime
// of the server process.
var reportCache = make(map[string]*analyzer.Report)

func cachedReport(path string) (*analyzer.Report, error) {
	if report, ok := reportCache[path]; ok {
		return report, nil
	}
	report, err := analyzer.Analyze(path)
	if err != nil && !errors.Is(err, analyzer.ErrNoTarget) {
		return nil, err
	}
	reportCache[path] = report
	return report, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	s := server.NewMCPServer(
		"flameparse",
		"1.0.0",
		server.WithLogging(),
	)

	analyzeTool := mcp.NewTool("analyze_profile",
		mcp.WithDescription("Parse a py-spy raw capture and return the full performance report"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the py-spy raw output file"),
		),
	)
	s.AddTool(analyzeTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filePath, err := request.RequireString("file_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		report, err := cachedReport(filePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to analyze profile: %v", err)), nil
		}
		var sb strings.Builder
		analyzer.Render(&sb, report)
		return mcp.NewToolResultText(sb.String()), nil
	})

	hotspotsTool := mcp.NewTool("top_hotspots",
		mcp.WithDescription("Return the ranked optimization targets (function:line locations by sample count)"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the py-spy raw output file"),
		),
		mcp.WithNumber("top_n",
			mcp.Description("Number of targets to return (default: 10)"),
		),
	)
	s.AddTool(hotspotsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filePath, err := request.RequireString("file_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		topN := int(request.GetFloat("top_n", 10.0))

		report, err := cachedReport(filePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to analyze profile: %v", err)), nil
		}

		targets := report.OptimizationPriority
		if topN > 0 && topN < len(targets) {
			targets = targets[:topN]
		}

		var sb strings.Builder
		sb.WriteString("TOP OPTIMIZATION TARGETS\n\n")
		if len(targets) == 0 {
			sb.WriteString("No attributed samples.\n")
		}
		for i, t := range targets {
			sb.WriteString(fmt.Sprintf("%2d. %-25s %5d samples (%s)\n", i+1, t.Location, t.Samples, t.Percentage))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	modulesTool := mcp.NewTool("module_distribution",
		mcp.WithDescription("Return the per-module sample distribution with the code/overhead split"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the py-spy raw output file"),
		),
	)
	s.AddTool(modulesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filePath, err := request.RequireString("file_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		report, err := cachedReport(filePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to analyze profile: %v", err)), nil
		}

		var sb strings.Builder
		sb.WriteString("MODULE DISTRIBUTION\n\n")
		for _, m := range report.ModuleDistribution {
			sb.WriteString(fmt.Sprintf("  %-30s %5d samples (%s)\n", m.Module, m.Samples, m.Percentage))
		}
		sb.WriteString(fmt.Sprintf("\nCode execution: %d samples (%s)\n",
			report.Statistics.CodeSamples, report.Statistics.CodePercentage))
		sb.WriteString(fmt.Sprintf("Import/Initialization: %d samples (%s)\n",
			report.Statistics.ImportOverhead, report.Statistics.ImportPercentage))
		return mcp.NewToolResultText(sb.String()), nil
	})

	sourceTool := mcp.NewTool("hotspot_source",
		mcp.WithDescription("Return the source text of the single hottest function, decorators included"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the py-spy raw output file"),
		),
	)
	s.AddTool(sourceTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filePath, err := request.RequireString("file_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		report, err := cachedReport(filePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to analyze profile: %v", err)), nil
		}
		if report.SourceCode == "" {
			return mcp.NewToolResultError("No extractable hotspot function in this profile"), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Function: %s\n", report.FunctionTotals[0].Function))
		sb.WriteString(fmt.Sprintf("Module: %s\n\n", report.ModuleDistribution[0].Module))
		sb.WriteString(report.SourceCode)
		return mcp.NewToolResultText(sb.String()), nil
	})

	return server.ServeStdio(s)
}
