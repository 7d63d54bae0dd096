package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/emaland/spotprice/internal/awsutil"
)

const timestampLayout = "2006-01-02 15:04:05-07:00"

// plainStyle draws no borders or rules, only columns two spaces apart.
func plainStyle() table.Style {
	style := table.StyleDefault
	style.Name = "plain"
	style.Box.PaddingLeft = ""
	style.Box.PaddingRight = ""
	style.Box.MiddleVertical = "  "
	style.Format.Header = text.FormatDefault
	style.Options = table.Options{
		SeparateColumns: true,
	}
	return style
}

func printPrices(w io.Writer, quotes awsutil.ResultSet) error {
	if _, err := fmt.Fprintln(w, "\nLatest Spot Price Per Unique Availability Zone:"); err != nil {
		return err
	}

	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Availability Zone", "Instance", "Price ($)", "Timestamp"})
	for _, q := range quotes {
		tw.AppendRow(table.Row{
			string(q.Zone),
			q.InstanceType,
			strconv.FormatFloat(q.Price, 'f', -1, 64),
			q.Timestamp.Format(timestampLayout),
		})
	}
	tw.SetStyle(plainStyle())
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	_, err := fmt.Fprintln(w, tw.Render())
	return err
}
