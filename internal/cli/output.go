package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"rollcall/internal/common"

	"gopkg.in/yaml.v3"
)

// PrintOutput writes `data` to `w` in the `output` format, text output
// is produced by `text`
func PrintOutput(w io.Writer, output string, data any, text func() string) error {
	switch output {
	case common.OutputJson:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case common.OutputYaml:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return err
		}
		return encoder.Close()
	case common.OutputText, "":
		_, err := fmt.Fprint(w, text())
		return err
	}
	return fmt.Errorf("%w: unknown output[%s]", ErrorInvalidInput, output)
}
