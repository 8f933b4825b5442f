package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/shady2k/spruthub-mcp-server/internal/spruthub"
	"github.com/shady2k/spruthub-mcp-server/internal/tools/accessory"
	"github.com/shady2k/spruthub-mcp-server/internal/tools/output"
)

// accessoriesOptions holds the filter and paging flags of the accessories command.
type accessoriesOptions struct {
	roomID      int
	filters     accessory.FilterSpec
	page        int
	limit       int
	quiet       bool
	noColor     bool
	configPath  string
	serveConfig ServeConfig
}

// newAccessoriesCmd creates the command that lists accessories from a live hub.
func newAccessoriesCmd() *cobra.Command {
	opts := &accessoriesOptions{}

	cmd := &cobra.Command{
		Use:   "accessories",
		Short: "List Sprut.hub accessories in a table",
		Long: `Connects to the hub with the same configuration as 'serve', applies the
accessory filters and prints one page as a table. Useful for checking the
connection settings and for finding accessory, service and room IDs.`,
		Example: `  spruthub-mcp-server accessories --room 3 --type light
  spruthub-mcp-server accessories --offline --page 2 --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("room") {
				opts.filters.RoomID = &opts.roomID
			}
			return runAccessories(cmd, opts)
		},
	}

	bindHubFlags(cmd.Flags(), &opts.serveConfig, &opts.configPath)

	cmd.Flags().IntVar(&opts.roomID, "room", 0, "Only accessories in this room")
	cmd.Flags().BoolVar(&opts.filters.ControllableOnly, "controllable", false, "Only accessories with a writable characteristic")
	cmd.Flags().StringVar(&opts.filters.NameFilter, "name", "", "Name substring")
	cmd.Flags().StringVar(&opts.filters.DeviceTypeFilter, "type", "", "Service type substring or capability token (e.g. light, temperature)")
	cmd.Flags().StringVar(&opts.filters.ManufacturerFilter, "manufacturer", "", "Manufacturer substring")
	cmd.Flags().StringVar(&opts.filters.ModelFilter, "model", "", "Model substring")
	cmd.Flags().BoolVar(&opts.filters.OnlineOnly, "online", false, "Only online accessories")
	cmd.Flags().BoolVar(&opts.filters.OfflineOnly, "offline", false, "Only offline accessories")
	cmd.Flags().IntVar(&opts.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&opts.limit, "limit", output.DefaultPageSize, "Accessories per page")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not show the progress spinner")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func runAccessories(cmd *cobra.Command, opts *accessoriesOptions) error {
	config, err := resolveServeConfig(cmd.Flags(), opts.serveConfig, opts.configPath)
	if err != nil {
		return err
	}
	if err := config.Hub.Validate(); err != nil {
		return err
	}

	logger := newLogger(config.LogFormat, config.DebugMode)
	client, err := spruthub.NewWSClient(config.Hub, logger)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var s *spinner.Spinner
	if !opts.quiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " Fetching accessories from Sprut.hub..."
		s.Start()
	}

	page, err := fetchAccessoryPage(ctx, client, opts.filters, opts.page, opts.limit, config.Output.MaxDevicesPerPage)
	if s != nil {
		if err != nil {
			s.FinalMSG = text.FgRed.Sprint("Failed to fetch accessories") + "\n"
		}
		s.Stop()
	}
	if err != nil {
		return err
	}

	if opts.noColor {
		text.DisableColors()
	}
	renderAccessoryTable(cmd.OutOrStdout(), page, accessory.BuildFilterDescription(opts.filters))
	return nil
}

// fetchAccessoryPage fetches the inventory, filters it and returns one page.
func fetchAccessoryPage(ctx context.Context, client spruthub.Client, filters accessory.FilterSpec, page, limit, maxPerPage int) (output.Page[spruthub.Accessory], error) {
	accessories, err := client.ListAccessories(ctx)
	if err != nil {
		return output.Page[spruthub.Accessory]{}, fmt.Errorf("failed to list accessories: %w", err)
	}
	filtered := accessory.ApplyFilters(accessories, filters)
	return output.Paginate(filtered, page, limit, maxPerPage), nil
}

// renderAccessoryTable prints the page as a table followed by the count statement.
func renderAccessoryTable(w io.Writer, page output.Page[spruthub.Accessory], filterDesc string) {
	statement := output.CountStatement(page, "accessory", "accessories", filterDesc)

	if len(page.Items) == 0 {
		_, _ = fmt.Fprintf(w, "%s\n", text.FgYellow.Sprint(statement))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("ID"),
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("ROOM"),
		text.FgHiCyan.Sprint("MANUFACTURER"),
		text.FgHiCyan.Sprint("MODEL"),
		text.FgHiCyan.Sprint("ONLINE"),
		text.FgHiCyan.Sprint("CONTROLLABLE"),
	})

	for _, a := range page.Items {
		s := accessory.Summarize(a)
		online := text.FgGreen.Sprint("yes")
		if !s.Online {
			online = text.FgRed.Sprint("no")
		}
		controllable := "no"
		if s.Controllable {
			controllable = "yes"
		}
		t.AppendRow(table.Row{s.ID, s.Name, s.RoomID, s.Manufacturer, s.Model, online, controllable})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "\n%s\n", text.FgHiBlue.Sprint(statement))
}
