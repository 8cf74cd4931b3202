package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/parsly"
	"github.com/viant/schedsim/model"
)

const fieldCount = 6

var fieldNames = [fieldCount]string{"name", "arrival_time", "priority", "burst_time", "ram", "cpu_rate"}

// Parse decodes one process per line: name,arrival_time,priority,burst_time,ram,cpu_rate.
// Blank lines and lines starting with '#' are skipped. Priority range is not
// checked here.
func Parse(data []byte) ([]*model.Process, error) {
	var processes []*model.Process
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(data)+1)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		process, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, lineNo, err)
		}
		processes = append(processes, process)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, lineNo+1, err)
	}
	return processes, nil
}

func parseLine(line []byte) (*model.Process, error) {
	fields, err := splitFields(line)
	if err != nil {
		return nil, err
	}
	if len(fields) != fieldCount {
		return nil, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}
	var values [fieldCount]int
	for i := 1; i < fieldCount; i++ {
		if values[i], err = strconv.Atoi(fields[i]); err != nil {
			return nil, fmt.Errorf("invalid %s %q", fieldNames[i], fields[i])
		}
	}
	return &model.Process{
		Name:        fields[0],
		ArrivalTime: values[1],
		Priority:    values[2],
		BurstTime:   values[3],
		RAM:         values[4],
		CPURate:     values[5],
	}, nil
}

func splitFields(line []byte) ([]string, error) {
	cursor := parsly.NewCursor("", line, 0)
	var fields []string
	for {
		matched := cursor.MatchAfterOptional(whitespaceToken, fieldToken)
		if matched.Code != fieldToken.Code {
			return nil, cursor.NewError(fieldToken)
		}
		field := strings.TrimSpace(matched.Text(cursor))
		if field == "" {
			return nil, fmt.Errorf("empty %s at position %d", fieldName(len(fields)), cursor.Pos)
		}
		fields = append(fields, field)
		if cursor.Pos >= cursor.InputSize {
			return fields, nil
		}
		matched = cursor.MatchOne(commaToken)
		if matched.Code != commaToken.Code {
			return nil, cursor.NewError(commaToken)
		}
	}
}

func fieldName(index int) string {
	if index < fieldCount {
		return fieldNames[index]
	}
	return "field " + strconv.Itoa(index+1)
}
