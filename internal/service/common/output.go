package common

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// Format は結果の出力形式
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// ParseFormat は json / yaml / table を受け付ける（空文字は json）
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatTable:
		return FormatTable, nil
	default:
		return "", fmt.Errorf("%s 不明な出力形式: %q (json|yaml|table)", ErrorIcon, s)
	}
}

// FormatEmptyMessage は該当リソースがない場合のメッセージを返す
func FormatEmptyMessage(resourceType string) string {
	return fmt.Sprintf("%sが見つかりませんでした", resourceType)
}

// Render は items を指定形式で w に出力する。toTableData は table 形式でのみ使用する。
func Render[T any](
	w io.Writer,
	format Format,
	items []T,
	toTableData func([]T) ([]TableColumn, [][]string),
	opts *DisplayOptions,
) error {
	if items == nil {
		items = []T{}
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable:
		return DisplayList(w, items, toTableData, opts)
	default:
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}

// DisplayList は汎用的なリスト表示関数
func DisplayList[T any](
	w io.Writer,
	items []T,
	toTableData func([]T) ([]TableColumn, [][]string),
	opts *DisplayOptions,
) error {
	// デフォルトオプション
	if opts == nil {
		opts = &DisplayOptions{}
	}
	if opts.EmptyMessage == "" {
		opts.EmptyMessage = FormatEmptyMessage("リソース")
	}

	if len(items) == 0 {
		_, err := fmt.Fprintln(w, opts.EmptyMessage)
		return err
	}

	columns, data := toTableData(items)
	PrintTable(w, opts.Title, columns, data)

	if opts.ShowCount {
		_, err := fmt.Fprintf(w, "\n合計: %d件\n", len(items))
		return err
	}
	return nil
}

// PrintTable はテーブル形式でデータを表示する。
// 列幅は表示幅（全角文字は2）で揃える。
func PrintTable(w io.Writer, title string, columns []TableColumn, data [][]string) {
	if title != "" {
		fmt.Fprintf(w, "%s:\n", title)
	}

	colWidths := make([]int, len(columns))
	for i, col := range columns {
		colWidths[i] = runewidth.StringWidth(col.Header)
	}
	for _, row := range data {
		for i, cell := range row {
			if i < len(colWidths) {
				colWidths[i] = max(colWidths[i], runewidth.StringWidth(cell))
			}
		}
	}

	headers := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
		rules[i] = strings.Repeat("-", colWidths[i])
	}
	printRow(w, colWidths, headers)
	printRow(w, colWidths, rules)
	for _, row := range data {
		printRow(w, colWidths, row)
	}
}

func printRow(w io.Writer, widths []int, cells []string) {
	var b strings.Builder
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		b.WriteString(runewidth.FillRight(cell, widths[i]))
		b.WriteString(" ")
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
}
