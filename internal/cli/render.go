package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"cvrank/config"
	"cvrank/internal/usecase"
)

const noValue = "No value"

func writeReport(w io.Writer, format string, result *usecase.RankResult) error {
	switch strings.ToLower(format) {
	case config.FormatJSON:
		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(output))
		return err
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatText, "":
		return writeText(w, result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeText(w io.Writer, result *usecase.RankResult) error {
	var b strings.Builder

	if len(result.Entries) == 0 {
		fmt.Fprintf(&b, "No documents ranked (%d scanned, %d excluded).\n", result.Scanned, result.Excluded)
	}
	for _, entry := range result.Entries {
		fmt.Fprintf(&b, "\n%s - Total Score: %d\n", entry.Name, entry.Score)
		for _, cm := range entry.Matches {
			value := noValue
			if len(cm.Matches) > 0 {
				value = strings.Join(cm.Matches, ", ")
			}
			fmt.Fprintf(&b, "  %s: %s\n", cm.Category, value)
		}
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(&b, "\nSkipped:\n")
		for _, s := range result.Skipped {
			fmt.Fprintf(&b, "  - %s: %s\n", s.Name, s.Reason)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
