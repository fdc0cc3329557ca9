package bruteforce

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// FormatOutput writes the search result in the requested format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable formats the result as a two-column table
func formatTable(w io.Writer, response *Response) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "FIELD\tVALUE\n")
	fmt.Fprintf(tw, "-----\t-----\n")
	fmt.Fprintf(tw, "Run\t%s\n", response.RunID)
	if response.PackPath != "" {
		fmt.Fprintf(tw, "Pack\t%s\n", response.PackPath)
	}
	fmt.Fprintf(tw, "Binary\t%s\n", response.BinaryPath)
	if response.Pack.Offset >= 0 {
		fmt.Fprintf(tw, "Pack offset\t%d\n", response.Pack.Offset)
	}
	fmt.Fprintf(tw, "Engine version\t%s\n", response.Pack.EngineVersion)
	fmt.Fprintf(tw, "Directory size\t%s\n", humanize.Bytes(response.Pack.DeclaredLength))
	fmt.Fprintf(tw, "Searched\t%s of %s offsets (%.2f%%)\n",
		humanize.Comma(int64(response.Iterations)),
		humanize.Comma(int64(response.SearchSize)),
		response.Percent)
	fmt.Fprintf(tw, "Workers\t%d\n", response.Workers)
	fmt.Fprintf(tw, "Time\t%v\n", response.SearchTime)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	_, err := fmt.Fprintln(w, FormatSummary(response))
	return err
}

// formatJSON formats the result as JSON
func formatJSON(w io.Writer, response *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// formatYAML formats the result as YAML
func formatYAML(w io.Writer, response *Response) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}

// FormatSummary provides a one-line summary of the result
func FormatSummary(response *Response) string {
	if !response.Found {
		return fmt.Sprintf("Key not found after %s iterations (%.2f%% of the binary)",
			humanize.Comma(int64(response.Iterations)), response.Percent)
	}
	return fmt.Sprintf("KEY FOUND: '%s' at offset 0x%X after %s iterations (%.2f%% of the binary)",
		response.Key, response.KeyOffset, humanize.Comma(int64(response.Iterations)), response.Percent)
}
