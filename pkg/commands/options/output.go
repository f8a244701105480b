package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
	YAML bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

func AddStructuredOutputArgs(cmd *cobra.Command, po *OutputOptions) {
	AddOutputArg(cmd, po)
	cmd.Flags().BoolVar(&po.YAML, "yaml", false,
		"Output as YAML.")
}

// Format is "json", "yaml" or "" for text.
func (o *OutputOptions) Format() (string, error) {
	switch {
	case o.JSON && o.YAML:
		return "", errors.New("--json and --yaml are mutually exclusive")
	case o.JSON:
		return "json", nil
	case o.YAML:
		return "yaml", nil
	}
	return "", nil
}

func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
