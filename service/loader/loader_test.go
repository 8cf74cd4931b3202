package loader

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/schedsim/model"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    []*model.Process
		expectErr bool
	}{
		{
			name:   "single record",
			input:  "P1,0,0,5,100,1\n",
			expect: []*model.Process{{Name: "P1", Priority: 0, BurstTime: 5, RAM: 100, CPURate: 1}},
		},
		{
			name:  "whitespace, comments and crlf",
			input: "# name,arrival,priority,burst,ram,rate\r\n\r\n P2 , 1, 1 ,10, 50 ,2\r\nP3,0,1,3,50,1",
			expect: []*model.Process{
				{Name: "P2", ArrivalTime: 1, Priority: 1, BurstTime: 10, RAM: 50, CPURate: 2},
				{Name: "P3", Priority: 1, BurstTime: 3, RAM: 50, CPURate: 1},
			},
		},
		{
			name:   "priority range is left to admission",
			input:  "PX,0,9,1,1,1",
			expect: []*model.Process{{Name: "PX", Priority: 9, BurstTime: 1, RAM: 1, CPURate: 1}},
		},
		{name: "empty input", input: "\n\n"},
		{name: "too few fields", input: "P1,0,0,5,100", expectErr: true},
		{name: "too many fields", input: "P1,0,0,5,100,1,7", expectErr: true},
		{name: "non numeric", input: "P1,0,zero,5,100,1", expectErr: true},
		{name: "empty field", input: "P1,0,,5,100,1", expectErr: true},
		{name: "trailing comma", input: "P1,0,0,5,100,1,", expectErr: true},
		{name: "blank name", input: " ,0,0,5,100,1", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Parse([]byte(tc.input))
			if tc.expectErr {
				assert.ErrorIs(t, err, ErrMalformedRecord)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestParse_ReportsLineNumber(t *testing.T) {
	_, err := Parse([]byte("P1,0,0,5,100,1\n\nP2,0,1,x,50,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "burst_time")
}

func TestParse_LongLine(t *testing.T) {
	name := strings.Repeat("x", 100*1024)
	processes, err := Parse([]byte("P1,0,0,5,100,1\n" + name + ",0,2,9,10,1\n"))
	require.NoError(t, err)
	require.Len(t, processes, 2)
	assert.Equal(t, name, processes[1].Name)
	assert.Equal(t, 9, processes[1].BurstTime)
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    []string
		expectErr bool
	}{
		{name: "yaml list", input: "- name: A\n  priority: 1\n  burstTime: 2\n  ram: 3\n", expect: []string{"A"}},
		{name: "json list", input: `[{"name":"A","priority":0,"burstTime":1,"ram":1},{"name":"B","priority":3,"burstTime":1,"ram":1}]`, expect: []string{"A", "B"}},
		{name: "processes key", input: "processes:\n  - name: C\n    burstTime: 1\n    ram: 1\n", expect: []string{"C"}},
		{name: "scalar", input: "hello", expectErr: true},
		{name: "missing name", input: "- priority: 1\n", expectErr: true},
		{name: "wrong type", input: "- name: A\n  priority: high\n", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Decode([]byte(tc.input))
			if tc.expectErr {
				assert.ErrorIs(t, err, ErrMalformedRecord)
				return
			}
			require.NoError(t, err)
			var names []string
			for _, p := range actual {
				names = append(names, p.Name)
			}
			assert.Equal(t, tc.expect, names)
		})
	}
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	srv := New(fs)

	processes, err := srv.Load(ctx, "testdata/processes.txt")
	require.NoError(t, err)
	require.Len(t, processes, 5)
	assert.Equal(t, &model.Process{Name: "P5", ArrivalTime: 2, Priority: 3, BurstTime: 40, RAM: 200, CPURate: 3}, processes[4])

	processes, err = srv.Load(ctx, "testdata/processes.yaml")
	require.NoError(t, err)
	require.Len(t, processes, 2)
	assert.Equal(t, 20, processes[1].BurstTime)

	URL := "mem://localhost/schedsim/input.txt"
	require.NoError(t, fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader([]byte("M1,0,2,9,10,1\n"))))
	processes, err = srv.Load(ctx, URL)
	require.NoError(t, err)
	assert.Equal(t, "M1", processes[0].Name)

	_, err = srv.Load(ctx, "mem://localhost/schedsim/missing.txt")
	assert.Error(t, err)
}
