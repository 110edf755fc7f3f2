package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	pool "github.com/jolestar/go-commons-pool"
	"github.com/npillmayer/unistring"
	"github.com/npillmayer/unistring/uax11"
)

const (
	lineBufferSize = 64 * 1024
	maxLineSize    = 16 * lineBufferSize
)

// counts holds the measures of a line or of a complete input.
type counts struct {
	bytes, runes, columns int
}

func (c *counts) add(o counts) {
	c.bytes += o.bytes
	c.runes += o.runes
	c.columns += o.columns
}

func (c counts) String() string {
	return fmt.Sprintf("%7d %7d %7d", c.bytes, c.runes, c.columns)
}

// measurer measures lines of text within a typesetting context. Line buffers
// are borrowed from a pool bounded by the number of concurrent workers.
type measurer struct {
	wctx    *uax11.Context
	buffers *pool.ObjectPool
	ctx     context.Context
}

func newMeasurer(wctx *uax11.Context, workers int) *measurer {
	if workers < 1 {
		workers = 1
	}
	m := &measurer{wctx: wctx, ctx: context.Background()}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			buf := make([]byte, lineBufferSize)
			return &buf, nil
		})
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = workers
	config.MaxIdle = workers
	config.BlockWhenExhausted = true
	m.buffers = pool.NewObjectPool(m.ctx, factory, config)
	return m
}

func (m *measurer) close() {
	m.buffers.Close(m.ctx)
}

func (m *measurer) line(s []byte) counts {
	return counts{
		bytes:   len(s),
		runes:   unistring.RuneCountN(s, len(s)),
		columns: unistring.WidthIn(m.wctx, s, len(s)),
	}
}

// measure writes the measures of every line of r to w, followed by a total.
func (m *measurer) measure(ctx context.Context, name string, r io.Reader, w io.Writer) (counts, error) {
	var total counts
	o, err := m.buffers.BorrowObject(ctx)
	if err != nil {
		return total, fmt.Errorf("%s: no line buffer available: %w", name, err)
	}
	buf := o.(*[]byte)
	defer func() {
		if err := m.buffers.ReturnObject(m.ctx, buf); err != nil {
			tracer().Errorf("cannot return line buffer: %v", err)
		}
	}()
	sc := bufio.NewScanner(r)
	sc.Buffer(*buf, maxLineSize)
	lines := 0
	for sc.Scan() {
		line := sc.Bytes()
		c := m.line(line)
		fmt.Fprintf(w, "%s  %s\n", c, line)
		total.add(c)
		lines++
	}
	fmt.Fprintf(w, "%s  total %s\n", total, name)
	tracer().Debugf("%s: %d lines, %d bytes", name, lines, total.bytes)
	if err := sc.Err(); err != nil {
		return total, fmt.Errorf("%s: %w", name, err)
	}
	return total, nil
}

func (m *measurer) measureFile(ctx context.Context, name string, w io.Writer) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = m.measure(ctx, name, f, w)
	return err
}

// run measures the given files with up to jobs workers, or standard input if
// files is empty. Output of each file is collected and written to w in
// command-line order. Files which cannot be read are skipped; their errors
// are joined into the returned error.
func run(ctx context.Context, files []string, jobs int, m *measurer, w io.Writer) error {
	if len(files) == 0 {
		_, err := m.measure(ctx, "-", os.Stdin, w)
		return err
	}
	if jobs < 1 {
		jobs = 1
	}
	reports := make([]bytes.Buffer, len(files))
	errs := make([]error, len(files))
	sem := make(chan struct{}, jobs)
	var wg sync.WaitGroup
	for i, name := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			errs[i] = m.measureFile(ctx, name, &reports[i])
		}()
	}
	wg.Wait()
	for i := range files {
		if errs[i] != nil {
			continue
		}
		if _, err := reports[i].WriteTo(w); err != nil {
			return err
		}
	}
	return errors.Join(errs...)
}
