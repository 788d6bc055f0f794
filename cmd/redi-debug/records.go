package main

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/rediwo/redi-debug/logger"
)

const maxLineSize = 1 << 20

// loadRecords reads every record from the log file at path
func loadRecords(path string) ([]logger.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open log file")
	}
	defer f.Close()

	return readRecords(f)
}

// readRecords parses log lines. Lines that are not records continue the
// message of the previous record; any before the first record are dropped.
func readRecords(r io.Reader) ([]logger.Record, error) {
	var records []logger.Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		record, err := logger.ParseRecord(line)
		if err != nil {
			if n := len(records); n > 0 {
				records[n-1].Message += "\n" + line
			}
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "cannot read log file")
	}
	return records, nil
}

// writeView prints records at or above threshold
func writeView(w io.Writer, records []logger.Record, threshold logger.LogLevel, color bool) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if r.Level < threshold {
			continue
		}
		if _, err := bw.WriteString(renderRecord(r, color)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// renderRecord formats r, optionally coloring the level name
func renderRecord(r logger.Record, color bool) string {
	line := logger.FormatRecord(r)
	if !color {
		return line
	}
	name := r.Level.String()
	return strings.Replace(line, "["+name+"]", "["+logger.Colorize(r.Level, name)+"]", 1)
}

type sourceStats struct {
	file   string
	total  int
	errors int
}

// writeStats renders record counts per level and per source file
func writeStats(w io.Writer, records []logger.Record) {
	byLevel := make(map[logger.LogLevel]int)
	byFile := make(map[string]*sourceStats)
	for _, r := range records {
		byLevel[r.Level]++
		s, ok := byFile[r.File]
		if !ok {
			s = &sourceStats{file: r.File}
			byFile[r.File] = s
		}
		s.total++
		if r.Level == logger.LogLevelError {
			s.errors++
		}
	}

	levels := tablewriter.NewWriter(w)
	levels.SetHeader([]string{"Level", "Records"})
	for _, level := range logger.Levels() {
		levels.Append([]string{level.String(), strconv.Itoa(byLevel[level])})
	}
	levels.SetFooter([]string{"Total", strconv.Itoa(len(records))})
	levels.Render()

	sources := make([]*sourceStats, 0, len(byFile))
	for _, s := range byFile {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool {
		if sources[i].total != sources[j].total {
			return sources[i].total > sources[j].total
		}
		return sources[i].file < sources[j].file
	})

	files := tablewriter.NewWriter(w)
	files.SetHeader([]string{"Source", "Records", "Errors"})
	for _, s := range sources {
		files.Append([]string{s.file, strconv.Itoa(s.total), strconv.Itoa(s.errors)})
	}
	files.Render()
}

// csvRecord is the CSV row layout of export
type csvRecord struct {
	Time    string `csv:"time"`
	Level   string `csv:"level"`
	File    string `csv:"file"`
	Line    int    `csv:"line"`
	Message string `csv:"message"`
}

// exportCSV writes records as CSV with a header row
func exportCSV(w io.Writer, records []logger.Record) error {
	rows := make([]*csvRecord, 0, len(records))
	for _, r := range records {
		rows = append(rows, &csvRecord{
			Time:    r.Time.Format(logger.TimeLayout),
			Level:   r.Level.String(),
			File:    r.File,
			Line:    r.Line,
			Message: r.Message,
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return errors.Wrap(err, "cannot write CSV")
	}
	return nil
}
