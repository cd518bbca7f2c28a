package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	v1 "github.com/lumina-home/lumina-console/api/v1"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format %q: must be one of table, json, yaml", s)
	}
}

var statusColors = map[string]*color.Color{
	"green":  color.New(color.FgGreen),
	"yellow": color.New(color.FgYellow),
	"red":    color.New(color.FgRed),
}

// Indicator renders a display status as a colored dot followed by its reason.
func Indicator(ds v1.DisplayStatus) string {
	dot := "○"
	if c, ok := statusColors[ds.Color]; ok {
		dot = c.Sprint("●")
	}
	return dot + ds.Reason
}

// Write encodes v as json or yaml. The yaml form uses the json field names.
func Write(w io.Writer, format Format, v any) error {
	switch format {
	case FormatYAML:
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

func WriteHosts(w io.Writer, format Format, hosts []v1.Host) error {
	if format != FormatTable {
		return Write(w, format, v1.HostList{Hosts: hosts, Total: len(hosts)})
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HOSTID\tHOSTNAME\tNODE\tLIFECYCLE\tPLUGINS\tSTATUS")
	for _, h := range hosts {
		node := h.NodeName
		if h.Root {
			node = "(root)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", h.HostId, h.Hostname, node, h.Lifecycle, len(h.Plugins), Indicator(h.DisplayStatus))
	}
	return tw.Flush()
}

// WriteHost prints one host with its plugins and configuration.
func WriteHost(w io.Writer, format Format, h v1.Host) error {
	if format != FormatTable {
		return Write(w, format, h)
	}

	bold := color.New(color.Bold)
	fmt.Fprintf(w, "%s %s (%s)\n\n", bold.Sprint(h.Hostname), Indicator(h.DisplayStatus), h.HostId)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLUGIN\tMODULE\tSTATUS")
	for _, p := range h.Plugins {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Module, Indicator(p.DisplayStatus))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(h.Config) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tDEFAULT\tHELP")
	for _, c := range h.Config {
		fmt.Fprintf(tw, "%s\t%v\t%v\t%s\n", c.Key, c.Value, c.Default, c.Help)
	}
	return tw.Flush()
}
