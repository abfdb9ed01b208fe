package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

// TableRowDataInsertor adds the rows of a table when it is rendered
type TableRowDataInsertor func(*Table) error

type NewTableOpts struct {
	Headers     []string
	Rows        TableRowDataInsertor
	IsFullWidth bool
}

func NewTable(opts NewTableOpts) *Table {
	table := &Table{
		Rows:        opts.Rows,
		isFullWidth: opts.IsFullWidth,
	}
	return table.Init(opts.Headers)
}

type Table struct {
	data  bytes.Buffer
	table *tablewriter.Table

	Rows TableRowDataInsertor

	isFullWidth bool
}

func (t *Table) Init(headers []string) *Table {
	t.table = tablewriter.NewWriter(&t.data)
	t.table.Options(tablewriter.WithHeaderAlignment(tw.AlignLeft))
	t.table.Configure(func(cfg *tablewriter.Config) {
		width, _, _ := term.GetSize(int(os.Stdout.Fd()))
		if t.isFullWidth {
			cfg.Widths.Global = width
		} else {
			cfg.MaxWidth = width
		}
		cfg.Row.Padding.Global.Top = " "
		cfg.Row.Padding.Global.Bottom = " "
	})
	t.table.Header(headers)
	return t
}

func (t *Table) Render() (*Table, error) {
	if err := t.Rows(t); err != nil {
		return nil, err
	}
	return t, nil
}

// NewRow appends a row, times are shown as local HH:MM and nil
// pointers as a dash
func (t *Table) NewRow(values ...any) error {
	row := []string{}
	for _, value := range values {
		var valueAsString string
		switch v := value.(type) {
		case int, int8, int16, int32, int64, float32, float64:
			valueAsString = fmt.Sprintf("%v", v)
		case bool:
			valueAsString = "✅"
			if !v {
				valueAsString = "❌"
			}
		case string:
			valueAsString = v
		case []string:
			valueAsString = fmt.Sprintf(`["%s"]`, strings.Join(v, `", "`))
		case []byte:
			valueAsString = string(v)
		case time.Time:
			valueAsString = v.Local().Format("15:04")
		case *int:
			valueAsString = "-"
			if v != nil {
				valueAsString = fmt.Sprintf("%v", *v)
			}
		case *bool:
			valueAsString = "-"
			if v != nil {
				valueAsString = "✅"
				if !*v {
					valueAsString = "❌"
				}
			}
		}
		row = append(row, valueAsString)
	}
	return t.table.Append(row)
}

func (t *Table) GetString() string {
	t.table.Render()
	return t.data.String()
}
