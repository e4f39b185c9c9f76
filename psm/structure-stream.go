package psm

import (
	"fmt"
	"io"
	"strings"
)

// StructureStream is a stage in a pipeline of parsed structures.  Each stage closes its Outlet when its input is exhausted.
type StructureStream struct {
	Outlet chan Structure
}

func NewStructureStream() *StructureStream {
	stream := &StructureStream{
		Outlet: make(chan Structure),
	}
	return stream
}

func StreamStructure(X Structure) *StructureStream {
	next := NewStructureStream()

	go func() {
		next.Outlet <- X
		next.Close()
	}()

	return next
}

func (stream *StructureStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

func (stream *StructureStream) PushStructure(X Structure) {
	stream.Outlet <- X
}

func (stream *StructureStream) PullStructure() Structure {
	X := <-stream.Outlet
	return X
}

// PullAll drains the stream and returns how many structures arrived.
func (stream *StructureStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

// Collect drains the stream into a slice.
func (stream *StructureStream) Collect() []Structure {
	var all []Structure
	for X := range stream.Outlet {
		all = append(all, X)
	}
	return all
}

func (stream *StructureStream) Print(
	out io.WriteCloser,
	opts PrintOpts) *StructureStream {

	next := &StructureStream{
		Outlet: make(chan Structure, 1),
	}

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for X := range stream.Outlet {
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
				buf.WriteByte(',')
			}

			count++
			fmt.Fprintf(&buf, "%06d,", count)
			X.WriteAsString(&buf, opts)
			buf.WriteByte('\n')
			out.Write([]byte(buf.String()))
			buf.Reset()
			next.Outlet <- X
		}
		out.Close()
		next.Close()
	}()

	return next
}

// Validate passes on only valid structures.
func (stream *StructureStream) Validate() *StructureStream {
	next := &StructureStream{
		Outlet: make(chan Structure, 1),
	}

	go func() {
		for X := range stream.Outlet {
			if X.IsValid() {
				next.Outlet <- X
			}
		}
		next.Close()
	}()

	return next
}

// AddTo passes on only structures that target accepts as new.
func (stream *StructureStream) AddTo(target StructureAdder) *StructureStream {
	next := &StructureStream{
		Outlet: make(chan Structure, 1),
	}

	go func() {
		for X := range stream.Outlet {
			if target.TryAdd(X) {
				next.Outlet <- X
			}
		}
		next.Close()
	}()

	return next
}

// Select passes on structures for which keep returns true.
func (stream *StructureStream) Select(keep func(X Structure) bool) *StructureStream {
	next := &StructureStream{
		Outlet: make(chan Structure, 1),
	}

	go func() {
		for X := range stream.Outlet {
			if keep(X) {
				next.Outlet <- X
			}
		}
		next.Close()
	}()

	return next
}
