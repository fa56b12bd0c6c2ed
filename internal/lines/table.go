package lines

import (
	"context"
	"slices"
	"sync"

	"github.com/google/btree"
	"golang.org/x/sync/errgroup"
)

// btreeDegree is the node degree of the line store.
const btreeDegree = 8

// Builder collects program lines. Add is safe for concurrent use.
type Builder struct {
	mu    sync.Mutex
	tree  *btree.BTreeG[Line]
	dupes []int // Line numbers added more than once
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		tree: btree.NewG(btreeDegree, func(a, b Line) bool {
			return a.Number < b.Number
		}),
	}
}

// Add records one line. A repeated number is remembered and reported by
// Build, whatever order the lines arrived in.
func (b *Builder) Add(ln Line) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, replaced := b.tree.ReplaceOrInsert(ln); replaced {
		b.dupes = append(b.dupes, ln.Number)
	}
}

// Len returns the number of distinct line numbers added so far.
func (b *Builder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tree.Len()
}

// Build assigns dense indices in ascending line-number order.
// It fails with *DuplicateLineError naming the lowest repeated number.
func (b *Builder) Build() (*Table, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.dupes) > 0 {
		return nil, &DuplicateLineError{Number: slices.Min(b.dupes)}
	}

	t := &Table{
		numbers: make([]int, 0, b.tree.Len()),
		texts:   make([]string, 0, b.tree.Len()),
	}
	b.tree.Ascend(func(ln Line) bool {
		t.numbers = append(t.numbers, ln.Number)
		t.texts = append(t.texts, ln.Text)
		return true
	})
	return t, nil
}

// Table maps declared line numbers to dense indices 0..N-1.
// A Table is immutable and safe for concurrent reads.
type Table struct {
	numbers []int    // Declared numbers, strictly increasing
	texts   []string // Raw instruction text per dense index
}

// Len returns the number of lines.
func (t *Table) Len() int {
	return len(t.numbers)
}

// Lookup returns the dense index of a declared line number.
func (t *Table) Lookup(number int) (int, bool) {
	return slices.BinarySearch(t.numbers, number)
}

// Number returns the declared line number at dense index i.
func (t *Table) Number(i int) int {
	return t.numbers[i]
}

// Text returns the raw instruction text at dense index i.
func (t *Table) Text(i int) string {
	return t.texts[i]
}

// Lines returns all lines in execution order.
func (t *Table) Lines() []Line {
	out := make([]Line, len(t.numbers))
	for i := range t.numbers {
		out[i] = Line{Number: t.numbers[i], Text: t.texts[i]}
	}
	return out
}

// Parse scans text and builds its table on the calling goroutine.
func Parse(text string) (*Table, error) {
	return Ingest(context.Background(), text, 1)
}

// Ingest scans text and feeds the lines into a Builder from workers
// goroutines before building the table. The result does not depend on
// the number of workers.
func Ingest(ctx context.Context, text string, workers int) (*Table, error) {
	scanned, err := Scan(text)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	b := NewBuilder()
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := w; i < len(scanned); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				b.Add(scanned[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b.Build()
}
