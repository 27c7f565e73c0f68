// Package assets holds the embedded demo dataset served at /sample.csv.
package assets

import _ "embed"

//go:embed sample_sales.csv
var SampleSalesCSV []byte
