package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"go-trade-dashboard/internal/chart"
	"go-trade-dashboard/internal/config"
	"go-trade-dashboard/internal/logger"
	"go-trade-dashboard/internal/model"
	"go-trade-dashboard/internal/pipeline"
	"go-trade-dashboard/pkg/utils"
)

type cli struct {
	cfg        *config.Config
	dataFile   string
	outputDir  string
	indicators []string
	svc        *pipeline.Service
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	if err := newRootCmd(&cli{cfg: cfg}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "dashctl",
		Short:         "Inspect, chart and export a trade indicator file",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.svc = pipeline.NewService(c.dataFile, c.cfg.KeyIndicators)
		},
	}
	root.PersistentFlags().StringVar(&c.dataFile, "file", c.cfg.DataFile, "indicator CSV file")
	root.PersistentFlags().StringVar(&c.outputDir, "out", c.cfg.OutputDir, "output directory for rendered and exported files")

	root.AddCommand(c.indicatorsCmd(), c.statsCmd(), c.renderCmd(), c.exportCmd())
	return root
}

// indicator names contain commas, so the flag is repeated rather than comma separated
func (c *cli) addIndicatorFlag(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&c.indicators, "indicator", "i", nil, "indicator name (repeatable); defaults to the first indicator")
}

func (c *cli) selection() (model.Subset, error) {
	names := c.indicators
	if len(names) == 0 {
		all, err := c.svc.Indicators()
		if err != nil {
			return model.Subset{}, err
		}
		if len(all) == 0 {
			return model.Subset{}, pipeline.ErrNoData
		}
		names = all[:1]
	}
	subset, err := c.svc.Select(names...)
	if err != nil {
		return subset, err
	}
	if subset.Empty() {
		return subset, fmt.Errorf("%s: %w", subset.Label(), pipeline.ErrNoData)
	}
	return subset, nil
}

func (c *cli) indicatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indicators",
		Short: "List indicators with their row count and year span",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := c.svc.Dataset()
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetAutoWrapText(false)
			table.SetHeader([]string{"Indicator", "Rows", "Years"})
			for _, name := range pipeline.Indicators(ds) {
				subset := pipeline.SelectIndicator(ds, name)
				years := pipeline.Years(subset)
				table.Append([]string{
					name,
					fmt.Sprintf("%d", len(subset.Records)),
					fmt.Sprintf("%d-%d", years[0], years[len(years)-1]),
				})
			}
			table.Render()
			return nil
		},
	}
}

func (c *cli) statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print KPIs and descriptive statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			subset, err := c.selection()
			if err != nil {
				return err
			}
			kpi, err := pipeline.ComputeKPI(subset)
			if err != nil {
				return err
			}
			summary, err := pipeline.Describe(subset.Values())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "📊 %s\n", subset.Label())

			kpis := tablewriter.NewWriter(out)
			kpis.SetAutoWrapText(false)
			kpis.SetHeader([]string{"Max Value", "Min Value", "Average"})
			kpis.Append([]string{kpi.MaxText, kpi.MinText, kpi.AvgText})
			kpis.Render()

			stats := tablewriter.NewWriter(out)
			stats.SetAutoWrapText(false)
			stats.SetHeader([]string{"Statistic", "Value"})
			for _, row := range summary.Rows() {
				stats.Append([]string{row[0], row[1]})
			}
			stats.Render()
			return nil
		},
	}
	c.addIndicatorFlag(cmd)
	return cmd
}

func (c *cli) renderCmd() *cobra.Command {
	var kind, format string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a chart to png, svg or html",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := model.ParseChartKind(kind)
			if err != nil {
				return err
			}
			subset, err := c.selection()
			if err != nil {
				return err
			}
			artifact, err := chart.NewDispatcher(c.cfg.ChartKinds).Dispatch(subset, k)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			switch strings.ToLower(format) {
			case "html":
				kpi, _ := pipeline.ComputeKPI(subset)
				err = chart.WriteHTML(artifact, kpi, &buf)
			default:
				w, h := chart.FigureSize(k, c.cfg.ChartWidthIn, c.cfg.ChartHeightIn)
				err = chart.WriteImage(artifact, format, &buf, w, h)
			}
			if err != nil {
				return err
			}

			stem := strings.TrimSuffix(pipeline.ExportFileName(subset.Label()), "_data.csv")
			return c.writeOutput(cmd, fmt.Sprintf("%s_%s.%s", stem, k, strings.ToLower(format)), buf.Bytes())
		},
	}
	c.addIndicatorFlag(cmd)
	cmd.Flags().StringVarP(&kind, "chart", "c", string(model.ChartLine), "chart kind")
	cmd.Flags().StringVarP(&format, "format", "f", "png", "png, svg or html")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the selected rows as csv, xlsx or parquet",
		RunE: func(cmd *cobra.Command, args []string) error {
			subset, err := c.selection()
			if err != nil {
				return err
			}
			result, data, err := c.svc.Export(subset, format)
			if err != nil {
				return err
			}
			return c.writeOutput(cmd, result.FileName, data)
		},
	}
	c.addIndicatorFlag(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatCSV, strings.Join(pipeline.ExportFormats, ", "))
	return cmd
}

// writeOutput stores data under a fresh run directory and prints the path.
func (c *cli) writeOutput(cmd *cobra.Command, fileName string, data []byte) error {
	om := utils.NewOutputManager(c.outputDir)
	path, err := om.OutputFilePath(uuid.New().String(), fileName)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	size, _ := om.FileSize(path)
	fmt.Fprintf(cmd.OutOrStdout(), "✅ wrote %s (%s, %d bytes)\n", path, om.FileType(path), size)
	return nil
}
