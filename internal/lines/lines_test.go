package lines

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/kolkov/ubasic/internal/parser"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Line
	}{
		{
			name: "unix",
			text: "10 LET a = 1\n20 PRINT a\n",
			want: []Line{{10, "LET a = 1"}, {20, "PRINT a"}},
		},
		{
			name: "crlf mixed",
			text: "10 LET count = 0\n20 PRINT count\r\n30 END\r\n",
			want: []Line{{10, "LET count = 0"}, {20, "PRINT count"}, {30, "END"}},
		},
		{
			name: "blank runs",
			text: "\n\n10 PRINT 1\r\n\r\n\n20 PRINT 2",
			want: []Line{{10, "PRINT 1"}, {20, "PRINT 2"}},
		},
		{
			name: "single line with newline",
			text: "10 PRINT 1\n",
			want: []Line{{10, "PRINT 1"}},
		},
		{
			name: "every line kept",
			text: "10 PRINT 1\r\n20 PRINT 2\n\n30 END",
			want: []Line{{10, "PRINT 1"}, {20, "PRINT 2"}, {30, "END"}},
		},
		{
			name: "whitespace-only line",
			text: "10 PRINT 1\n  \t\n20 END\n",
			want: []Line{{10, "PRINT 1"}, {20, "END"}},
		},
		{
			name: "arrival order kept",
			text: "30 END\n10 PRINT 1",
			want: []Line{{30, "END"}, {10, "PRINT 1"}},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Scan(tt.text)
			if err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scan() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanErrors(t *testing.T) {
	tests := []string{
		"PRINT 1",
		"10",
		"10 ",
		"10PRINT 1",
		"-10 PRINT 1",
		"x10 PRINT 1",
		"99999999999999999999999 PRINT 1",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			_, err := Scan("5 END\n" + text + "\n")
			var se *parser.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Scan() error = %v, want *parser.SyntaxError", err)
			}
			if se.Text != text {
				t.Errorf("Text = %q, want %q", se.Text, text)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	tab, err := Parse("30 IF count < 10 GOTO 20\n10 LET count = 0\n25 LET count = count + 1\n20 PRINT count\n")
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", tab.Len())
	}

	wantNumbers := []int{10, 20, 25, 30}
	for i, n := range wantNumbers {
		if got := tab.Number(i); got != n {
			t.Errorf("Number(%d) = %d, want %d", i, got, n)
		}
		idx, ok := tab.Lookup(n)
		if !ok || idx != i {
			t.Errorf("Lookup(%d) = %d, %v; want %d", n, idx, ok, i)
		}
	}
	if tab.Text(1) != "PRINT count" {
		t.Errorf("Text(1) = %q", tab.Text(1))
	}
	for _, n := range []int{0, 15, 31, -1} {
		if _, ok := tab.Lookup(n); ok {
			t.Errorf("Lookup(%d) found an undeclared line", n)
		}
	}
}

func TestBuildDuplicate(t *testing.T) {
	orders := []string{
		"10 PRINT 1\n20 PRINT 2\n10 PRINT 3\n",
		"10 PRINT 3\n10 PRINT 1\n20 PRINT 2\n",
		"20 PRINT 2\n10 PRINT 1\n10 PRINT 3\n",
	}
	for _, text := range orders {
		for _, workers := range []int{1, 2, 4} {
			_, err := Ingest(context.Background(), text, workers)
			var de *DuplicateLineError
			if !errors.As(err, &de) {
				t.Fatalf("Ingest(%q, %d) error = %v, want *DuplicateLineError", text, workers, err)
			}
			if de.Number != 10 {
				t.Errorf("Number = %d, want 10", de.Number)
			}
		}
	}
}

func TestBuildLowestDuplicate(t *testing.T) {
	b := NewBuilder()
	for _, n := range []int{50, 50, 20, 20, 30} {
		b.Add(Line{Number: n, Text: "END"})
	}
	_, err := b.Build()
	var de *DuplicateLineError
	if !errors.As(err, &de) || de.Number != 20 {
		t.Fatalf("Build() error = %v, want duplicate 20", err)
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
}

// TestConcurrentAdd checks that concurrent producers build the same
// table as a sequential one.
func TestConcurrentAdd(t *testing.T) {
	const n = 1000

	b := NewBuilder()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := w; i < n; i += 8 {
				b.Add(Line{Number: (n - i) * 10, Text: "END"})
			}
		}()
	}
	wg.Wait()

	tab, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != n {
		t.Fatalf("Len() = %d, want %d", tab.Len(), n)
	}
	for i := 0; i < n; i++ {
		if tab.Number(i) != (i+1)*10 {
			t.Fatalf("Number(%d) = %d, want %d", i, tab.Number(i), (i+1)*10)
		}
	}
}

func TestIngestWorkersAgree(t *testing.T) {
	text := "40 END\n10 LET a = 1\n30 GOSUB 10\n20 PRINT a\n"
	want, err := Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	for _, workers := range []int{0, 1, 3, 16} {
		got, err := Ingest(context.Background(), text, workers)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if !reflect.DeepEqual(got.Lines(), want.Lines()) {
			t.Errorf("workers=%d: %v, want %v", workers, got.Lines(), want.Lines())
		}
	}
}

func TestIngestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Ingest(ctx, "10 END\n", 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Ingest() error = %v, want context.Canceled", err)
	}
}
