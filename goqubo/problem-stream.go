package goqubo

import (
	"fmt"
	"io"
	"strings"
)

// PrintOpts specifies what is printed for each problem in a ProblemStream
type PrintOpts struct {
	Label string // Prefix label
	Edges bool   // If set, prints the edge list
	MIS   bool   // If set, solves and prints the exact maximum independent set
}

// ProblemStream is a pipeline stage that carries problems over its Outlet.
// Ownership of a Problem travels through the channel.
type ProblemStream struct {
	Outlet chan Problem
}

func NewProblemStream() *ProblemStream {
	stream := &ProblemStream{
		Outlet: make(chan Problem, 1),
	}
	return stream
}

// StreamProblem returns a stream that emits the given problem and then closes.
func StreamProblem(p Problem) *ProblemStream {
	next := NewProblemStream()

	go func() {
		next.Outlet <- p
		next.Close()
	}()

	return next
}

func (stream *ProblemStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

func (stream *ProblemStream) PushProblem(p Problem) {
	stream.Outlet <- p
}

func (stream *ProblemStream) PullProblem() Problem {
	p := <-stream.Outlet
	return p
}

// PullAll drains the stream and returns how many problems it carried.
func (stream *ProblemStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

// Print writes one line per problem to out (closed when the stream ends) and forwards each problem.
func (stream *ProblemStream) Print(
	out io.WriteCloser,
	opts PrintOpts) *ProblemStream {

	next := NewProblemStream()

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		var edgeEnds []uint32
		count := 0
		for p := range stream.Outlet {
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
				buf.WriteByte(',')
			}

			count++
			spec := p.Spec()
			edgeEnds = p.AppendEdgeEnds(edgeEnds[:0])
			fmt.Fprintf(&buf, "%06d,%d,%g,%d,%d", count, spec.NumVertices, spec.ConnectionProb, spec.Seed, len(edgeEnds)/2)
			if opts.MIS {
				buf.WriteByte(',')
				buf.WriteString(p.FindMaximumIndependentSet().String())
			}
			if opts.Edges {
				for i := 0; i < len(edgeEnds); i += 2 {
					if i == 0 {
						buf.WriteByte(',')
					} else {
						buf.WriteByte(' ')
					}
					fmt.Fprintf(&buf, "%d-%d", edgeEnds[i], edgeEnds[i+1])
				}
			}
			buf.WriteByte('\n')
			out.Write([]byte(buf.String()))
			buf.Reset()
			next.Outlet <- p
		}
		out.Close()
		next.Close()
	}()

	return next
}

// AddTo offers each problem to target and forwards only those that were newly added.
func (stream *ProblemStream) AddTo(target ProblemAdder) *ProblemStream {
	next := NewProblemStream()

	go func() {
		for p := range stream.Outlet {
			if target.TryAddProblem(p) {
				next.Outlet <- p
			}
		}
		next.Close()
	}()

	return next
}

// SelectFromCatalog streams the definitions of a catalog that meet the given selector.
func SelectFromCatalog(cat Catalog, sel ProblemSelector) <-chan *ProblemDef {
	next := make(chan *ProblemDef, 1)
	onHit := make(chan *ProblemDef, 4)

	go func() {
		cat.Select(sel, onHit)
		close(onHit)
	}()

	go func() {
		for def := range onHit {
			if sel.SelectsDef(def) {
				next <- def
			}
		}
		close(next)
	}()

	return next
}
