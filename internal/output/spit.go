// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/finsightlabs/finctl/internal/attrs"
	"github.com/finsightlabs/finctl/internal/config"
	"github.com/finsightlabs/finctl/internal/filters"
)

// PostProcess is an optional hook applied to the filtered dataset before it is
// transformed and sorted. Commands use it to inject derived columns.
type PostProcess func([]map[string]interface{}) []map[string]interface{}

// SliceDiceSpit orchestrates filtering, transforming, sorting and rendering
// of a dataset according to command flags and attribute specifications.
func SliceDiceSpit(raw bytes.Buffer,
	al attrs.AttrList,
	cmd *cli.Command,
	parent string,
	w io.Writer,
	postProcess PostProcess) {

	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump it and go home.
	output := cmd.String("output")
	if output == "raw" {
		_, _ = w.Write(raw.Bytes())
		return
	}

	// Some endpoints wrap the interesting rows under a single key (holdings,
	// portfolios, plans). Promote that key to the top level so the rest of the
	// pipeline always works on a plain array.
	var fullDataset gjson.Result
	if parent != "" {
		fullDataset = gjson.Parse(raw.String()).Get(parent)
	} else {
		fullDataset = gjson.Parse(raw.String())
	}

	// A single object (the profile endpoint) gets wrapped into a one row array
	// so the tabular machinery below doesn't need a special case.
	if fullDataset.IsObject() {
		fullDataset = gjson.Parse("[" + fullDataset.Raw + "]")
	}

	filter := cmd.String("filter")

	// Filter out the rows we don't want. Do it here so that the following
	// processes are slightly more efficient since they'll be working on a
	// smaller dataset.
	filteredDataset := filters.FilterDataset(fullDataset, al, filter)

	if postProcess != nil {
		filteredDataset = postProcess(filteredDataset)
	}

	// THINK This is inefficient. We're forcing a time transformation to occur
	// for all attributes, even though many will not be a timestamp.
	if cmd.Bool("local") {
		for a := range al {
			al[a].TransformSpec += "t"
		}
	}

	// Transform each value in each row.
	for _, row := range filteredDataset {
		for _, attr := range al {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	spec := cmd.String("sort")
	SortDataset(filteredDataset, spec)

	switch output {
	case "json":
		// Marshal the filtered dataset into a JSON document.
		// TODO Figure out how to maintain key order in the JSON document.
		jsonOutput, err := json.Marshal(filteredDataset)
		if err != nil {
			slog.Error("SliceDiceSpit()", "err", err)
		}
		_, _ = w.Write(jsonOutput)
	case "yaml":
		yamlOutput, err := yaml.Marshal(filteredDataset)
		if err != nil {
			slog.Error("SliceDiceSpit()", "err", err)
		}
		_, _ = w.Write(yamlOutput)
	default:
		TableWriter(filteredDataset, al, cmd, w)
	}
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(
	resultSet []map[string]interface{},
	al attrs.AttrList,
	cmd *cli.Command,
	w io.Writer) {

	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if cmd.Bool("color") {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(result))
		for _, attr := range al {
			if !attr.Include {
				continue
			}
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {

			pad, _ := config.GetInt("padding", 0)
			log.Debugf("padding: %v", pad)

			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if cmd.Bool("titles") {
		var headers []string
		for _, attr := range al {
			if attr.Include {
				headers = append(headers, attr.OutputKey)
			}
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// SortDataset sorts the result set in place per the comma delimited sort spec.
// A leading - on a key sorts that key descending. String comparison is case
// insensitive unless the key carries a leading !.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	if spec == "" || len(resultSet) < 2 {
		return
	}

	type sortKey struct {
		key           string
		descending    bool
		caseSensitive bool
	}

	//nolint:prealloc
	var keys []sortKey
	for _, k := range strings.Split(spec, ",") {
		k = strings.TrimSpace(k)
		sk := sortKey{}
		sk.descending = strings.HasPrefix(k, "-")
		k = strings.TrimPrefix(k, "-")
		sk.caseSensitive = strings.HasPrefix(k, "!")
		k = strings.TrimPrefix(k, "!")
		if k == "" {
			continue
		}
		sk.key = k
		keys = append(keys, sk)
	}

	sort.SliceStable(resultSet, func(i, j int) bool {
		for _, sk := range keys {
			a := resultSet[i][sk.key]
			b := resultSet[j][sk.key]

			cmp := compareValues(a, b, sk.caseSensitive)
			if cmp == 0 {
				continue
			}
			if sk.descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// compareValues orders two cell values. Numbers compare numerically, anything
// else falls back to string comparison.
func compareValues(a, b interface{}, caseSensitive bool) int {
	an, aok := a.(float64)
	bn, bok := b.(float64)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}

	as := InterfaceToString(a)
	bs := InterfaceToString(b)
	if !caseSensitive {
		as = strings.ToLower(as)
		bs = strings.ToLower(bs)
	}
	return strings.Compare(as, bs)
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		// Monetary and quantity values both land here. Comma grouping with up
		// to two decimals reads well for either.
		return humanize.CommafWithDigits(value, 2)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
