package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/five82/logdeck/internal/export"
	"github.com/five82/logdeck/internal/ingest"
	"github.com/five82/logdeck/internal/state"
	"github.com/five82/logdeck/internal/views"
)

func (c *cli) uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a log file for ingestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory", path)
			}

			client, _, logger, done, err := c.connect()
			if err != nil {
				return err
			}
			defer done()

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			logger.Info("uploading", "path", path, "size", info.Size())
			res, err := client.Upload(cmd.Context(), filepath.Base(path), f)
			if err != nil {
				return fmt.Errorf("upload %s: %w", filepath.Base(path), err)
			}
			fmt.Fprintf(c.stderr, "uploaded %s (%s)\n", filepath.Base(path), humanize.Bytes(uint64(info.Size())))
			fmt.Fprintln(c.stdout, res.Pretty())
			return nil
		},
	}
}

func (c *cli) ingestsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "ingests",
		Short: "List ingest records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, _, done, err := c.connect()
			if err != nil {
				return err
			}
			defer done()

			if asJSON {
				raw, err := client.Request(cmd.Context(), http.MethodGet, "/api/ingests", nil, "")
				if err != nil {
					return err
				}
				return c.printJSON(raw)
			}

			records, err := client.ListIngests(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.stdout, renderRecords(records))

			var inserted int64
			for _, rec := range records {
				inserted += int64(rec.InsertedRows)
			}
			fmt.Fprintf(c.stdout, "%s ingests, %s rows inserted\n",
				humanize.Comma(int64(len(records))), humanize.Comma(inserted))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON response")
	return cmd
}

func (c *cli) logsCmd() *cobra.Command {
	var (
		asJSON bool
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "logs <id>",
		Short: "Show the parsed log lines of one ingest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, _, done, err := c.connect()
			if err != nil {
				return err
			}
			defer done()

			if limit <= 0 {
				limit = cfg.LogLimit
			}
			id := ingest.ID(args[0])

			if asJSON {
				path := "/api/ingests/" + url.PathEscape(string(id)) + "/logs?limit=" + strconv.Itoa(limit)
				raw, err := client.Request(cmd.Context(), http.MethodGet, path, nil, "")
				if err != nil {
					return err
				}
				return c.printJSON(raw)
			}

			lines, err := client.FetchLogs(cmd.Context(), id, limit)
			if err != nil {
				return fmt.Errorf("fetch logs for %s: %w", id, err)
			}
			if len(lines) == 0 {
				fmt.Fprintln(c.stdout, views.LogsEmptyText)
				return nil
			}
			for _, line := range lines {
				fmt.Fprintln(c.stdout, views.FormatLogLine(line))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON response")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum lines to fetch (default log_limit)")
	return cmd
}

func (c *cli) probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check whether the backend and its database are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, logger, done, err := c.connect()
			if err != nil {
				return err
			}
			defer done()

			session := state.NewSession()
			res := state.NewMonitor(client, session, logger).Probe(cmd.Context())
			switch {
			case res.Err == nil:
				fmt.Fprintf(c.stdout, "%s: available\n", client.BaseURL())
				return nil
			case session.Degraded():
				fmt.Fprintf(c.stdout, "%s: degraded\n", client.BaseURL())
				return res.Err
			default:
				return fmt.Errorf("probe %s: %w", client.BaseURL(), res.Err)
			}
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <out.xlsx>",
		Short: "Export the ingest table to an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, _, done, err := c.connect()
			if err != nil {
				return err
			}
			defer done()

			var tbl views.TableState
			gen := tbl.Begin()
			records, err := client.ListIngests(cmd.Context())
			tbl.Finish(gen, records, err)
			if err != nil {
				return err
			}

			written, err := export.Save(args[0], views.RenderTable(tbl))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "wrote %s (%s rows)\n", written, humanize.Comma(int64(len(records))))
			return nil
		},
	}
}

func (c *cli) printJSON(raw json.RawMessage) error {
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(c.stdout)
	return err
}

// renderRecords lays the DB explorer columns out as a plain table.
func renderRecords(records []ingest.IngestRecord) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, views.RenderTableRow(rec).Cells)
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(views.TableColumns...).
		Rows(rows...).
		Render()
}
