package delfos

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// This file imports an instrument's history from a previously downloaded
// chart payload (the JSON shape served by the usual quote endpoints). The
// payload is deeply nested and only partially interesting, so it is walked
// with jsonpath rather than mirrored as structs.

// chartResult is the jsonpath root of the first chart result.
const chartResult = "$.chart.result[0]"

// ImportChart parses one chart payload into an Instrument. Null price cells
// (days the exchange reported no close) are skipped. A split event list, when
// present, is imported too.
func ImportChart(r io.Reader) (*Instrument, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot parse chart payload: %w", err)
	}

	if jerr, err := jsonpath.Get("$.chart.error.description", jobj); err == nil && jerr != nil {
		return nil, fmt.Errorf("chart payload carries an error: %v", jerr)
	}

	symbol, err := chartString(jobj, chartResult+".meta.symbol")
	if err != nil {
		return nil, err
	}
	// Exchange suffixes (PETR4.SA) are provider detail, the ledger uses the
	// bare ticker.
	ticker, _, _ := strings.Cut(symbol, ".")

	name, _ := chartString(jobj, chartResult+".meta.longName")
	inst := NewInstrument(ticker, name, "", "")

	stamps, err := chartFloats(jobj, chartResult+".timestamp")
	if err != nil {
		return nil, err
	}
	closes, err := chartFloats(jobj, chartResult+".indicators.quote[0].close")
	if err != nil {
		return nil, err
	}
	if len(closes) != len(stamps) {
		return nil, fmt.Errorf("chart payload for %q has %d timestamps but %d closes", ticker, len(stamps), len(closes))
	}
	// Volumes are optional in some payloads.
	volumes, _ := chartFloats(jobj, chartResult+".indicators.quote[0].volume")

	for i, stamp := range stamps {
		on := unixDate(int64(stamp))
		if math.IsNaN(closes[i]) {
			continue
		}
		inst.Prices().Append(on, closes[i])
		if i < len(volumes) && !math.IsNaN(volumes[i]) {
			inst.Volumes().Append(on, volumes[i])
		}
	}

	importChartSplits(inst, jobj)
	return inst, nil
}

// importChartSplits reads the optional split event map of a chart payload.
func importChartSplits(inst *Instrument, jobj any) {
	jval, err := jsonpath.Get(chartResult+".events.splits", jobj)
	if err != nil {
		return
	}
	events, ok := jval.(map[string]any)
	if !ok {
		return
	}
	for _, jevent := range events {
		event, ok := jevent.(map[string]any)
		if !ok {
			continue
		}
		stamp, sok := event["date"].(float64)
		num, nok := event["numerator"].(float64)
		den, dok := event["denominator"].(float64)
		if !sok || !nok || !dok || num <= 0 || den <= 0 {
			log.Printf("skipping malformed split event for %q: %v", inst.Ticker(), jevent)
			continue
		}
		inst.AddSplit(Split{
			Date:        unixDate(int64(stamp)),
			Numerator:   int64(num),
			Denominator: int64(den),
		})
	}
}

func chartString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("chart payload is missing %q: %w", path, err)
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("chart payload value at %q is not a string: %v", path, jval)
	}
	return s, nil
}

// chartFloats reads a numeric array, turning null cells into NaN so the
// caller can keep positions aligned with the timestamp array.
func chartFloats(jobj any, path string) ([]float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("chart payload is missing %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("chart payload value at %q is not an array: %v", path, jval)
	}
	out := make([]float64, len(jlist))
	for i, jcell := range jlist {
		switch cell := jcell.(type) {
		case float64:
			out[i] = cell
		case nil:
			out[i] = math.NaN()
		default:
			return nil, fmt.Errorf("chart payload cell %q[%d] is not a number: %v", path, i, jcell)
		}
	}
	return out, nil
}

// unixDate converts a unix timestamp to its calendar day, in the exchange's
// local time.
func unixDate(stamp int64) Date {
	t := time.Unix(stamp, 0)
	return NewDate(t.Year(), t.Month(), t.Day())
}
