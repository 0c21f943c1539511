package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/omeyang/xpathconf/pkg/util/xpathconf"
)

// undefinedValue 是 NoLimit 的文本输出，与 getconf 一致。
const undefinedValue = "undefined"

// queryResult 是单个 (path, name) 查询结果。
type queryResult struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Value     int64  `json:"value"`
	Undefined bool   `json:"undefined,omitempty"`
	Error     string `json:"error,omitempty"`

	err error
}

func newQueryResult(path string, name xpathconf.Name, value int64, err error) queryResult {
	r := queryResult{Path: path, Name: name.String(), err: err}
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Value = value
	r.Undefined = value == xpathconf.NoLimit
	return r
}

// writeResults 输出查询结果。text 格式只输出成功项，json 格式输出全部。
func writeResults(w io.Writer, format string, results []queryResult) error {
	if format == outputJSON {
		return writeJSON(w, results)
	}
	for _, r := range results {
		if r.err != nil {
			continue
		}
		value := strconv.FormatInt(r.Value, 10)
		if r.Undefined {
			value = undefinedValue
		}
		if _, err := fmt.Fprintf(w, "%s %s %s\n", r.Path, r.Name, value); err != nil {
			return err
		}
	}
	return nil
}

// writeNames 输出标准配置名编码。
func writeNames(w io.Writer, format string, names xpathconf.Names) error {
	if format == outputJSON {
		return writeJSON(w, names)
	}
	for _, n := range names.All() {
		if _, err := fmt.Fprintf(w, "%s %d\n", n, int(n)); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
